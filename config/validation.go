package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a Config
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// ValidateConfig checks that the configuration is usable
func ValidateConfig(cfg *Config) error {
	var errs ValidationErrors

	if port, err := strconv.Atoi(cfg.ServerPort); err != nil || port <= 0 || port > 65535 {
		errs = append(errs, ValidationError{Field: "SERVER_PORT", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)})
	}
	if cfg.MaxUploadBytes <= 0 {
		errs = append(errs, ValidationError{Field: "MAX_UPLOAD_BYTES", Message: "must be positive"})
	}
	if cfg.InlineThresholdBytes <= 0 || cfg.InlineThresholdBytes > cfg.MaxUploadBytes {
		errs = append(errs, ValidationError{Field: "INLINE_THRESHOLD_BYTES", Message: "must be positive and not exceed MAX_UPLOAD_BYTES"})
	}
	if cfg.GeminiEnabled() && cfg.GeminiModel == "" {
		errs = append(errs, ValidationError{Field: "GEMINI_MODEL", Message: "required when GEMINI_API_KEY is set"})
	}
	if cfg.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT", Message: "must not be negative"})
	}
	if cfg.RateLimitWindow <= 0 {
		errs = append(errs, ValidationError{Field: "RATE_LIMIT_WINDOW", Message: "must be positive"})
	}
	if cfg.DatabaseURL != "" && cfg.SQLitePath != "" {
		errs = append(errs, ValidationError{Field: "DATABASE_URL", Message: "DATABASE_URL and SQLITE_PATH are mutually exclusive"})
	}
	if cfg.ArchiveEnabled() && cfg.AWSRegion == "" {
		errs = append(errs, ValidationError{Field: "AWS_REGION", Message: "required when S3_BUCKET_NAME is set"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
