// Package config provides configuration management for Mercator Saturn.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with field-level validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention SATURN_SECTION_FIELD.
// For example:
//
//   - SATURN_API_TOKEN overrides api.token
//   - SATURN_PRUNE_ENVIRONMENT overrides prune.environment
//   - SATURN_PRUNE_KEEP_COUNT overrides prune.keep_count
//   - SATURN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
// The access token in particular is usually supplied via SATURN_API_TOKEN so
// that it never has to appear in a file.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Command-line flags (applied by the CLI layer before validation)
//
// # Validation
//
// All configuration is validated automatically during loading. Validation
// collects every violation instead of stopping at the first one, and errors
// include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - prune.environment: environment is required
//	  - api.token: access token is required
//
// Validation happens before any side effect; a prune run never starts with an
// invalid configuration.
//
// # Example Configuration
//
// Here is a minimal configuration file:
//
//	api:
//	  base_url: "https://deploy.example.com"
//	  token: "${SATURN_API_TOKEN}"
//
//	prune:
//	  environment: "staging"
//	  keep_count: 10
//
//	audit:
//	  enabled: true
//	  sqlite_path: "data/saturn-audit.db"
//
//	telemetry:
//	  logging:
//	    level: "info"
//	    format: "text"
//
// # Zero Values
//
// prune.keep_count is a pointer field so that an explicit zero survives
// defaulting: keep_count: 0 means "retain nothing beyond the exclusion" and is
// distinct from leaving the key out, which yields the default of 10. The same
// applies to prune.exclude_id, where absence means no ID-based exclusion.
package config
