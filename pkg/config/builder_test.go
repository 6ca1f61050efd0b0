package config

import "time"

// ConfigBuilder provides a fluent API for building Config instances in tests.
// It starts with default values and allows selective overrides.
type ConfigBuilder struct {
	cfg Config
}

// NewTestConfig creates a new ConfigBuilder with sensible defaults for testing.
// The resulting configuration is valid and can be used immediately.
func NewTestConfig() *ConfigBuilder {
	var cfg Config
	ApplyDefaults(&cfg)

	// Fill the required fields so the result validates
	cfg.API.BaseURL = "https://deploy.example.com"
	cfg.API.Token = "test-token"
	cfg.Prune.Environment = "staging"

	return &ConfigBuilder{cfg: cfg}
}

// Build returns the built Config instance.
func (b *ConfigBuilder) Build() *Config {
	return &b.cfg
}

// WithBaseURL sets the deployment API base URL.
func (b *ConfigBuilder) WithBaseURL(baseURL string) *ConfigBuilder {
	b.cfg.API.BaseURL = baseURL
	return b
}

// WithToken sets the deployment API access token.
func (b *ConfigBuilder) WithToken(token string) *ConfigBuilder {
	b.cfg.API.Token = token
	return b
}

// WithAPITimeout sets the API request timeout.
func (b *ConfigBuilder) WithAPITimeout(d time.Duration) *ConfigBuilder {
	b.cfg.API.Timeout = d
	return b
}

// WithEnvironment sets the environment to prune.
func (b *ConfigBuilder) WithEnvironment(environment string) *ConfigBuilder {
	b.cfg.Prune.Environment = environment
	return b
}

// WithKeepCount sets the number of deployments to retain.
func (b *ConfigBuilder) WithKeepCount(keep int) *ConfigBuilder {
	b.cfg.Prune.KeepCount = &keep
	return b
}

// WithExcludeID sets the deployment ID excluded from retention counting.
func (b *ConfigBuilder) WithExcludeID(id int64) *ConfigBuilder {
	b.cfg.Prune.ExcludeID = &id
	return b
}

// WithExcludeMostRecent sets whether the most recent deployment is excluded.
func (b *ConfigBuilder) WithExcludeMostRecent(exclude bool) *ConfigBuilder {
	b.cfg.Prune.ExcludeMostRecent = exclude
	return b
}

// WithConcurrency sets the deletion concurrency.
func (b *ConfigBuilder) WithConcurrency(n int) *ConfigBuilder {
	b.cfg.Prune.Concurrency = n
	return b
}

// WithDryRun sets dry-run mode.
func (b *ConfigBuilder) WithDryRun(dryRun bool) *ConfigBuilder {
	b.cfg.Prune.DryRun = dryRun
	return b
}

// WithAuditPath enables the audit trail with the given SQLite path.
func (b *ConfigBuilder) WithAuditPath(path string) *ConfigBuilder {
	b.cfg.Audit.Enabled = true
	b.cfg.Audit.SQLitePath = path
	return b
}

// WithLoggingLevel sets the logging level.
func (b *ConfigBuilder) WithLoggingLevel(level string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Level = level
	return b
}

// WithLoggingFormat sets the logging format.
func (b *ConfigBuilder) WithLoggingFormat(format string) *ConfigBuilder {
	b.cfg.Telemetry.Logging.Format = format
	return b
}

// WithPushgateway enables metrics push to the given Pushgateway URL.
func (b *ConfigBuilder) WithPushgateway(url string) *ConfigBuilder {
	b.cfg.Telemetry.Metrics.Enabled = true
	b.cfg.Telemetry.Metrics.PushgatewayURL = url
	return b
}

// MinimalConfig returns a minimal valid configuration for testing.
// This is useful for tests that don't care about most configuration values.
func MinimalConfig() *Config {
	return NewTestConfig().Build()
}
