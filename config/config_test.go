package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"CI", "ENV", "SERVER_PORT", "SERVER_HOST", "GEMINI_API_KEY", "GEMINI_MODEL",
		"REDIS_HOST", "REDIS_PORT", "REDIS_PASSWORD", "REDIS_URL", "REDIS_DB",
		"DATABASE_URL", "SQLITE_PATH", "S3_BUCKET_NAME", "AWS_REGION",
		"MAX_UPLOAD_BYTES", "INLINE_THRESHOLD_BYTES", "RATE_LIMIT", "RATE_LIMIT_WINDOW",
		"CACHE_TTL", "ALLOWED_ORIGINS", "API_URL", "CLIENT_TIMEOUT",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("SECRETS_DIR", t.TempDir())
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, Development, cfg.Environment)
	assert.Equal(t, "0.0.0.0:8000", cfg.Address())
	assert.Equal(t, int64(52428800), cfg.MaxUploadBytes)
	assert.Equal(t, int64(20*1024*1024), cfg.InlineThresholdBytes)
	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	assert.Equal(t, DefaultAllowedOrigins, cfg.AllowedOrigins)
	assert.False(t, cfg.GeminiEnabled())
	assert.False(t, cfg.RedisEnabled())
	assert.False(t, cfg.DatabaseEnabled())
	assert.False(t, cfg.ArchiveEnabled())
}

func TestLoadConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SQLITE_PATH", "records.db")
	t.Setenv("RATE_LIMIT", "5")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("CACHE_TTL", "3600")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.ServerPort)
	assert.True(t, cfg.GeminiEnabled())
	assert.Equal(t, "cache", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.True(t, cfg.DatabaseEnabled())
	assert.Equal(t, 5, cfg.RateLimit)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestLoadConfigReadsSecrets(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gemini_api_key"), []byte("  secret-key\n"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret-key", cfg.GeminiAPIKey)
}

func TestLoadConfigSkipsSecretsInCI(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("CI", "true")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gemini_api_key"), []byte("secret-key"), 0o600))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, CI, cfg.Environment)
	assert.Empty(t, cfg.GeminiAPIKey)
}

func TestValidateConfig(t *testing.T) {
	cfg := defaults(Development)
	cfg.ServerPort = "not-a-port"
	cfg.InlineThresholdBytes = cfg.MaxUploadBytes + 1
	cfg.DatabaseURL = "postgres://x"
	cfg.SQLitePath = "x.db"
	cfg.S3BucketName = "bucket"

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, v.Field)
	}
	assert.ElementsMatch(t, []string{"SERVER_PORT", "INLINE_THRESHOLD_BYTES", "DATABASE_URL", "AWS_REGION"}, fields)
}

func TestAPIURLFor(t *testing.T) {
	assert.Equal(t, DevelopmentAPIURL, APIURLFor(Development, ""))
	assert.Equal(t, DevelopmentAPIURL, APIURLFor(Test, ""))
	assert.Equal(t, PlaceholderAPIURL, APIURLFor(Production, ""))
	assert.Equal(t, "https://api.example.com", APIURLFor(Production, "https://api.example.com"))
}

func TestLoadClientConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_URL", "https://api.example.com")

	// API_URL only applies in production
	assert.Equal(t, DevelopmentAPIURL, LoadClientConfig().APIURL)

	t.Setenv("ENV", "production")
	cc := LoadClientConfig()
	assert.Equal(t, "https://api.example.com", cc.APIURL)
	assert.Equal(t, 10*time.Minute, cc.Timeout)
}
