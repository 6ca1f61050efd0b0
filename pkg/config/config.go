package config

import "time"

// Config is the root configuration structure for Mercator Saturn.
// It contains all configuration sections for the deployment API client,
// the prune job, the audit trail, and telemetry settings.
type Config struct {
	// API contains deployment API client configuration including the base
	// URL, access token, and request timeout.
	API APIConfig `yaml:"api"`

	// Prune contains retention parameters for the prune job including the
	// target environment, keep count, and exclusion rules.
	Prune PruneConfig `yaml:"prune"`

	// Audit contains configuration for the local audit trail that records
	// completed prune runs.
	Audit AuditConfig `yaml:"audit"`

	// Telemetry contains configuration for observability including logging
	// and metrics push.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig contains configuration for the deployment API client.
type APIConfig struct {
	// BaseURL is the base URL of the deployment API.
	// Example: "https://deploy.example.com"
	// Required.
	BaseURL string `yaml:"base_url"`

	// Token is the opaque access token presented to the deployment API.
	// It is passed through verbatim as a bearer credential and never logged.
	// This should typically be loaded from an environment variable.
	// Required.
	Token string `yaml:"token"`

	// Timeout is the maximum duration for a single API request.
	// Default: 30s
	Timeout time.Duration `yaml:"timeout"`

	// PageSize is the number of deployments requested per listing page.
	// The client follows pagination cursors until the listing is complete
	// regardless of page size; this only tunes request granularity.
	// Default: 100
	PageSize int `yaml:"page_size"`
}

// PruneConfig contains retention parameters for the prune job.
type PruneConfig struct {
	// Environment is the deployment environment to prune.
	// Required, must be non-empty.
	Environment string `yaml:"environment"`

	// KeepCount is the number of most recent deployments to retain.
	// Zero is legal and retains nothing beyond the exclusion.
	// Default: 10
	KeepCount *int `yaml:"keep_count"`

	// ExcludeID identifies a single deployment to set aside before the keep
	// window is applied. If the identified deployment is not present in the
	// listing the exclusion is skipped entirely.
	// Takes precedence over ExcludeMostRecent when both are set.
	// Optional.
	ExcludeID *int64 `yaml:"exclude_id"`

	// ExcludeMostRecent sets aside the most recent deployment before the
	// keep window is applied.
	// Default: false
	ExcludeMostRecent bool `yaml:"exclude_most_recent"`

	// Concurrency is the number of deletions attempted in parallel.
	// A value of 1 deletes sequentially in newest-first order.
	// Default: 1
	Concurrency int `yaml:"concurrency"`

	// DryRun computes and reports the retention partition without deleting
	// anything.
	// Default: false
	DryRun bool `yaml:"dry_run"`
}

// AuditConfig contains configuration for the local audit trail.
type AuditConfig struct {
	// Enabled controls whether prune runs are recorded to the audit trail.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// SQLitePath is the path to the SQLite database file.
	// Default: "data/saturn-audit.db"
	SQLitePath string `yaml:"sqlite_path"`

	// MaxOpenConns is the maximum number of open database connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle database connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// DisableWAL turns off write-ahead logging. WAL is enabled by default
	// for better concurrent access.
	// Default: false
	DisableWAL bool `yaml:"disable_wal"`

	// BusyTimeout is how long SQLite waits on a locked database before
	// giving up.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains metrics push configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum level at which log records are emitted.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the log output format.
	// Options: "json", "text"
	// Default: "text"
	Format string `yaml:"format"`
}

// MetricsConfig contains metrics push configuration.
type MetricsConfig struct {
	// Enabled controls whether run metrics are pushed to a Prometheus
	// Pushgateway after each prune run.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// PushgatewayURL is the base URL of the Prometheus Pushgateway.
	// Required when metrics are enabled.
	PushgatewayURL string `yaml:"pushgateway_url"`

	// JobName is the Pushgateway job label under which metrics are grouped.
	// Default: "saturn_prune"
	JobName string `yaml:"job_name"`
}
