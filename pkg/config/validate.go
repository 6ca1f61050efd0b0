package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "prune.environment").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// It implements the error interface and provides access to all field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	// Validate API client configuration
	errs = append(errs, validateAPI(&cfg.API)...)

	// Validate prune configuration
	errs = append(errs, validatePrune(&cfg.Prune)...)

	// Validate audit configuration
	errs = append(errs, validateAudit(&cfg.Audit)...)

	// Validate telemetry configuration
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

// validateAPI validates deployment API client configuration.
func validateAPI(cfg *APIConfig) []FieldError {
	var errs []FieldError

	// Validate base URL
	if cfg.BaseURL == "" {
		errs = append(errs, FieldError{
			Field:   "api.base_url",
			Message: "base URL is required",
		})
	} else {
		u, err := url.Parse(cfg.BaseURL)
		switch {
		case err != nil:
			errs = append(errs, FieldError{
				Field:   "api.base_url",
				Message: fmt.Sprintf("invalid URL format: %v", err),
			})
		case u.Scheme != "http" && u.Scheme != "https":
			errs = append(errs, FieldError{
				Field:   "api.base_url",
				Message: fmt.Sprintf("unsupported URL scheme %q: must be 'http' or 'https'", u.Scheme),
			})
		case u.Host == "":
			errs = append(errs, FieldError{
				Field:   "api.base_url",
				Message: "URL host is required",
			})
		}
	}

	// Validate access token is present. The token is opaque; no format
	// checks beyond non-emptiness.
	if cfg.Token == "" {
		errs = append(errs, FieldError{
			Field:   "api.token",
			Message: "access token is required",
		})
	}

	// Validate timeout
	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "api.timeout",
			Message: "timeout must be positive",
		})
	}
	if cfg.Timeout > 10*time.Minute {
		errs = append(errs, FieldError{
			Field:   "api.timeout",
			Message: "timeout exceeds reasonable limit (10m)",
		})
	}

	// Validate page size
	if cfg.PageSize < 0 {
		errs = append(errs, FieldError{
			Field:   "api.page_size",
			Message: "page size must be non-negative",
		})
	}
	if cfg.PageSize > 1000 {
		errs = append(errs, FieldError{
			Field:   "api.page_size",
			Message: "page size exceeds reasonable limit (1000)",
		})
	}

	return errs
}

// validatePrune validates prune job configuration.
func validatePrune(cfg *PruneConfig) []FieldError {
	var errs []FieldError

	// Validate environment is not empty
	if cfg.Environment == "" {
		errs = append(errs, FieldError{
			Field:   "prune.environment",
			Message: "environment is required",
		})
	}

	// Validate keep count. Zero is legal; negative is not.
	if cfg.KeepCount != nil && *cfg.KeepCount < 0 {
		errs = append(errs, FieldError{
			Field:   "prune.keep_count",
			Message: "keep count must be non-negative",
		})
	}

	// Validate exclude ID when set
	if cfg.ExcludeID != nil && *cfg.ExcludeID < 1 {
		errs = append(errs, FieldError{
			Field:   "prune.exclude_id",
			Message: "exclude ID must be a positive integer",
		})
	}

	// Validate concurrency
	if cfg.Concurrency < 1 {
		errs = append(errs, FieldError{
			Field:   "prune.concurrency",
			Message: "concurrency must be at least 1",
		})
	}
	if cfg.Concurrency > 64 {
		errs = append(errs, FieldError{
			Field:   "prune.concurrency",
			Message: "concurrency exceeds reasonable limit (64)",
		})
	}

	return errs
}

// validateAudit validates audit trail configuration.
func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	// If the audit trail is disabled, skip validation
	if !cfg.Enabled {
		return errs
	}

	// Validate SQLite path
	if cfg.SQLitePath == "" {
		errs = append(errs, FieldError{
			Field:   "audit.sqlite_path",
			Message: "SQLite path is required when the audit trail is enabled",
		})
	}

	// Validate connection pool settings
	if cfg.MaxOpenConns < 1 {
		errs = append(errs, FieldError{
			Field:   "audit.max_open_conns",
			Message: "max open connections must be at least 1",
		})
	}
	if cfg.MaxIdleConns < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.max_idle_conns",
			Message: "max idle connections must be non-negative",
		})
	}
	if cfg.MaxOpenConns >= 1 && cfg.MaxIdleConns > cfg.MaxOpenConns {
		errs = append(errs, FieldError{
			Field:   "audit.max_idle_conns",
			Message: "max idle connections cannot exceed max open connections",
		})
	}

	// Validate busy timeout
	if cfg.BusyTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "audit.busy_timeout",
			Message: "busy timeout must be positive",
		})
	}

	return errs
}

// validateTelemetry validates telemetry configuration.
func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	// Validate logging level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if cfg.Logging.Level == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: "logging level is required",
		})
	} else if !validLevels[cfg.Logging.Level] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("invalid logging level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.Logging.Level),
		})
	}

	// Validate logging format
	validFormats := map[string]bool{"json": true, "text": true}
	if cfg.Logging.Format == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: "logging format is required",
		})
	} else if !validFormats[cfg.Logging.Format] {
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("invalid logging format %q: must be 'json' or 'text'", cfg.Logging.Format),
		})
	}

	// Validate metrics push configuration
	if cfg.Metrics.Enabled && cfg.Metrics.PushgatewayURL == "" {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.pushgateway_url",
			Message: "pushgateway URL is required when metrics are enabled",
		})
	}
	if cfg.Metrics.PushgatewayURL != "" {
		if _, err := url.Parse(cfg.Metrics.PushgatewayURL); err != nil {
			errs = append(errs, FieldError{
				Field:   "telemetry.metrics.pushgateway_url",
				Message: fmt.Sprintf("invalid URL format: %v", err),
			})
		}
	}

	return errs
}
