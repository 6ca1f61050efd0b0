// Package telemetry provides observability for Mercator Saturn.
//
// # Overview
//
// The telemetry package implements structured logging for retention runs.
// Run metrics live in the top-level metrics package, since they are pushed
// per run rather than scraped from a long-lived process.
//
// # Components
//
//   - logging: Structured logging built on log/slog
//
// # Usage
//
//	// Initialize logging from configuration
//	cfg := config.GetConfig()
//	if err := logging.Init(&cfg.Telemetry.Logging); err != nil {
//	    return err
//	}
//
//	// Component loggers hang off the default logger
//	logger := slog.Default().With("component", "retention")
//	logger.Info("retention run started", "environment", "production")
//
// # Secret Handling
//
// The deployment API token never appears in log output. Components log
// request metadata (method, path, status, duration) and never the
// Authorization header.
package telemetry
