package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any errors.
// The configuration is not modified by environment variables; use LoadConfigWithEnvOverrides
// for that functionality.
func LoadConfig(path string) (*Config, error) {
	// Read the file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	// Apply defaults
	ApplyDefaults(&cfg)

	// Validate
	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention SATURN_SECTION_FIELD (e.g., SATURN_PRUNE_ENVIRONMENT).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := ReadConfig(path)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// ReadConfig loads configuration from a YAML file, applies defaults and
// environment variable overrides, and returns the result without validating
// it. Commands that overlay flag values on top of the file and environment
// call Validate themselves once every source has been merged. A required
// field may therefore be absent from the file as long as a later source
// supplies it.
func ReadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables use the format SATURN_SECTION_FIELD. Malformed numeric
// or boolean values are ignored and the existing value stands.
func applyEnvOverrides(cfg *Config) {
	// API overrides
	if val := os.Getenv("SATURN_API_BASE_URL"); val != "" {
		cfg.API.BaseURL = val
	}
	if val := os.Getenv("SATURN_API_TOKEN"); val != "" {
		cfg.API.Token = val
	}
	if val := os.Getenv("SATURN_API_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.API.Timeout = d
		}
	}
	if val := os.Getenv("SATURN_API_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.API.PageSize = i
		}
	}

	// Prune overrides
	if val := os.Getenv("SATURN_PRUNE_ENVIRONMENT"); val != "" {
		cfg.Prune.Environment = val
	}
	if val := os.Getenv("SATURN_PRUNE_KEEP_COUNT"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Prune.KeepCount = &i
		}
	}
	if val := os.Getenv("SATURN_PRUNE_EXCLUDE_ID"); val != "" {
		if id, err := strconv.ParseInt(val, 10, 64); err == nil {
			cfg.Prune.ExcludeID = &id
		}
	}
	if val := os.Getenv("SATURN_PRUNE_EXCLUDE_MOST_RECENT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Prune.ExcludeMostRecent = b
		}
	}
	if val := os.Getenv("SATURN_PRUNE_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Prune.Concurrency = i
		}
	}
	if val := os.Getenv("SATURN_PRUNE_DRY_RUN"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Prune.DryRun = b
		}
	}

	// Audit overrides
	if val := os.Getenv("SATURN_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("SATURN_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLitePath = val
	}
	if val := os.Getenv("SATURN_AUDIT_MAX_OPEN_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.MaxOpenConns = i
		}
	}
	if val := os.Getenv("SATURN_AUDIT_MAX_IDLE_CONNS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Audit.MaxIdleConns = i
		}
	}
	if val := os.Getenv("SATURN_AUDIT_DISABLE_WAL"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.DisableWAL = b
		}
	}
	if val := os.Getenv("SATURN_AUDIT_BUSY_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Audit.BusyTimeout = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("SATURN_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("SATURN_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("SATURN_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("SATURN_TELEMETRY_METRICS_PUSHGATEWAY_URL"); val != "" {
		cfg.Telemetry.Metrics.PushgatewayURL = val
	}
	if val := os.Getenv("SATURN_TELEMETRY_METRICS_JOB_NAME"); val != "" {
		cfg.Telemetry.Metrics.JobName = val
	}
}
