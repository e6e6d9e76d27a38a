package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultMaxUploadBytes is the largest accepted video (exclusive), 50 MiB.
	DefaultMaxUploadBytes int64 = 50 * 1024 * 1024
	// DefaultInlineThresholdBytes is the size below which videos are sent inline to Gemini.
	DefaultInlineThresholdBytes int64 = 20 * 1024 * 1024
	// DefaultGeminiModel is used when GEMINI_MODEL is not set.
	DefaultGeminiModel = "gemini-2.5-flash"
)

// DefaultAllowedOrigins mirrors the origins the browser UI is deployed on.
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"https://your-vercel-app.vercel.app",
	"https://*.vercel.app",
}

// Config holds all configuration for the analysis API
type Config struct {
	Environment Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Upload limits
	MaxUploadBytes       int64
	InlineThresholdBytes int64

	// Gemini configuration. An empty key keeps the endpoint in stub mode.
	GeminiAPIKey string
	GeminiModel  string

	// Redis configuration (optional)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
	CacheTTL      time.Duration

	// Database configuration (optional)
	DatabaseURL string
	SQLitePath  string

	// S3 archive configuration (optional)
	S3BucketName string
	AWSRegion    string

	// HTTP policy
	AllowedOrigins  []string
	RateLimit       int
	RateLimitWindow time.Duration
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether a Redis connection was configured
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// DatabaseEnabled reports whether an analysis record store was configured
func (c *Config) DatabaseEnabled() bool {
	return c.DatabaseURL != "" || c.SQLitePath != ""
}

// ArchiveEnabled reports whether uploads should be archived to S3
func (c *Config) ArchiveEnabled() bool {
	return c.S3BucketName != ""
}

// GeminiEnabled reports whether the Gemini analyzer replaces the stub
func (c *Config) GeminiEnabled() bool {
	return c.GeminiAPIKey != ""
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := defaults(env)

	switch env {
	case CI:
		loadFromEnv(cfg)
	case Development, Test, Production:
		loadFromEnv(cfg)
		loadSecrets(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func defaults(env Environment) *Config {
	return &Config{
		Environment:          env,
		ServerPort:           "8000",
		ServerHost:           "0.0.0.0",
		MaxUploadBytes:       DefaultMaxUploadBytes,
		InlineThresholdBytes: DefaultInlineThresholdBytes,
		GeminiModel:          DefaultGeminiModel,
		CacheTTL:             24 * time.Hour,
		AllowedOrigins:       append([]string(nil), DefaultAllowedOrigins...),
		RateLimit:            30,
		RateLimitWindow:      time.Minute,
	}
}

// loadFromEnv overlays environment variables onto cfg
func loadFromEnv(cfg *Config) {
	setString(&cfg.ServerPort, "SERVER_PORT")
	setString(&cfg.ServerHost, "SERVER_HOST")
	setString(&cfg.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&cfg.GeminiModel, "GEMINI_MODEL")
	setString(&cfg.RedisHost, "REDIS_HOST")
	setString(&cfg.RedisPort, "REDIS_PORT")
	setString(&cfg.RedisPassword, "REDIS_PASSWORD")
	setString(&cfg.RedisURL, "REDIS_URL")
	setString(&cfg.DatabaseURL, "DATABASE_URL")
	setString(&cfg.SQLitePath, "SQLITE_PATH")
	setString(&cfg.S3BucketName, "S3_BUCKET_NAME")
	setString(&cfg.AWSRegion, "AWS_REGION")

	if cfg.RedisHost != "" && cfg.RedisPort == "" {
		cfg.RedisPort = "6379"
	}
	if v := os.Getenv("REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			cfg.RedisDB = db
		}
	}
	if v := os.Getenv("MAX_UPLOAD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.MaxUploadBytes = n
		}
	}
	if v := os.Getenv("INLINE_THRESHOLD_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.InlineThresholdBytes = n
		}
	}
	if v := os.Getenv("RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit = n
		}
	}
	cfg.RateLimitWindow = parseDurationOrDefault(os.Getenv("RATE_LIMIT_WINDOW"), cfg.RateLimitWindow)
	cfg.CacheTTL = parseDurationOrDefault(os.Getenv("CACHE_TTL"), cfg.CacheTTL)
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = splitList(v)
	}
}

// loadSecrets fills sensitive values from Docker secrets when the environment left them empty
func loadSecrets(cfg *Config) {
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = readSecret("gemini_api_key")
	}
	if cfg.RedisPassword == "" {
		cfg.RedisPassword = readSecret("redis_password")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = readSecret("database_url")
	}
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func parseDurationOrDefault(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		if num, errNum := strconv.Atoi(value); errNum == nil {
			return time.Duration(num) * time.Second
		}
		return def
	}
	return d
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
