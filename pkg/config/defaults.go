package config

import "time"

// Default values for configuration fields.
const (
	// API defaults
	DefaultAPITimeout  = 30 * time.Second
	DefaultAPIPageSize = 100

	// Prune defaults
	DefaultKeepCount   = 10
	DefaultConcurrency = 1

	// Audit defaults
	DefaultAuditSQLitePath   = "data/saturn-audit.db"
	DefaultAuditMaxOpenConns = 10
	DefaultAuditMaxIdleConns = 5
	DefaultAuditBusyTimeout  = 5 * time.Second

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "text"
	DefaultMetricsJobName = "saturn_prune"
)

// ApplyDefaults applies default values to a Config struct.
// It sets defaults for any fields that have zero values.
// This function is idempotent and safe to call multiple times.
//
// KeepCount is a pointer so that an explicit zero in the file survives
// defaulting; only a missing value becomes DefaultKeepCount.
func ApplyDefaults(cfg *Config) {
	// API defaults
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = DefaultAPITimeout
	}
	if cfg.API.PageSize == 0 {
		cfg.API.PageSize = DefaultAPIPageSize
	}

	// Prune defaults
	if cfg.Prune.KeepCount == nil {
		keep := DefaultKeepCount
		cfg.Prune.KeepCount = &keep
	}
	if cfg.Prune.Concurrency == 0 {
		cfg.Prune.Concurrency = DefaultConcurrency
	}

	// Audit defaults. Enabled and DisableWAL default to false (zero values).
	if cfg.Audit.SQLitePath == "" {
		cfg.Audit.SQLitePath = DefaultAuditSQLitePath
	}
	if cfg.Audit.MaxOpenConns == 0 {
		cfg.Audit.MaxOpenConns = DefaultAuditMaxOpenConns
	}
	if cfg.Audit.MaxIdleConns == 0 {
		cfg.Audit.MaxIdleConns = DefaultAuditMaxIdleConns
	}
	if cfg.Audit.BusyTimeout == 0 {
		cfg.Audit.BusyTimeout = DefaultAuditBusyTimeout
	}

	// Telemetry defaults. Metrics enabled defaults to false (zero value).
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.JobName == "" {
		cfg.Telemetry.Metrics.JobName = DefaultMetricsJobName
	}
}
