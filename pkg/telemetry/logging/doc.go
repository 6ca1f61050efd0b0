// Package logging configures structured logging for Mercator Saturn.
//
// Saturn logs with log/slog. This package turns the telemetry.logging
// configuration section into a slog handler (JSON or text) and installs it
// as the process default, from which components derive their own loggers:
//
//	logger, err := logging.Init(logging.Config{Level: "info", Format: "text"})
//	if err != nil {
//	    return err
//	}
//
//	// elsewhere
//	log := slog.Default().With("component", "retention.pruner")
//
// Logs go to stderr by default so that stdout stays reserved for run reports.
// The API access token never appears in log output; components log deployment
// IDs, counts, and durations only.
package logging
