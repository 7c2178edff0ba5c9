package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testKey is a valid base64 AES-256 key.
const testKey = "MDEyMzQ1Njc4OWFiY2RlZjAxMjM0NTY3ODlhYmNkZWY="

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sfsweb.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
base_url: http://localhost:9000
health_url: http://backend:9191/
poll_interval: "@every 10s"
timeout: 5s
store: redis
redis_addr: localhost:6379
`)
	t.Setenv("SFSWEB_BASE_URL", "http://127.0.0.1:9001")
	t.Setenv("SFSWEB_REDIS_DB", "2")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:9001", cfg.BaseURL, "env wins over file")
	assert.Equal(t, "http://backend:9191/", cfg.HealthURL)
	assert.Equal(t, "@every 10s", cfg.PollInterval)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, StoreRedis, cfg.Store)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "default", cfg.BoardKey, "unset keys keep defaults")
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_MissingDefaultFileIsFine(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().BaseURL, cfg.BaseURL)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"empty base url", func(c *Config) { c.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.BaseURL = "/upload" }},
		{"bad health scheme", func(c *Config) { c.HealthURL = "ftp://backend" }},
		{"bad interval", func(c *Config) { c.PollInterval = "sometimes" }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }},
		{"unknown store", func(c *Config) { c.Store = "disk" }},
		{"redis without addr", func(c *Config) { c.Store = StoreRedis }},
		{"empty board key", func(c *Config) { c.BoardKey = "" }},
		{"short encryption key", func(c *Config) { c.EncryptionKey = "c2hvcnQ=" }},
		{"fallback without key", func(c *Config) { c.EncryptionFallbackKeys = []string{testKey} }},
		{"bad fallback key", func(c *Config) { c.EncryptionKey, c.EncryptionFallbackKeys = testKey, []string{"%%"} }},
		{"bad redact pattern", func(c *Config) { c.RedactParams = []string{"("} }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	assert.NoError(t, Default().Validate())
}

func TestString_RedactsPassword(t *testing.T) {
	cfg := Default()
	cfg.RedisPassword = "hunter2"
	cfg.EncryptionKey = testKey

	out := cfg.String()
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, testKey)
	assert.Contains(t, out, "REDACTED_NOT_EMPTY")
}

func TestStoreMiddleware(t *testing.T) {
	cfg := Default()
	mws, err := cfg.StoreMiddleware()
	require.NoError(t, err)
	assert.Empty(t, mws)

	cfg.RedactParams = []string{"searchQuery"}
	cfg.EncryptionKey = testKey
	cfg.EncryptionFallbackKeys = []string{testKey}
	require.NoError(t, cfg.Validate())

	mws, err = cfg.StoreMiddleware()
	require.NoError(t, err)
	assert.Len(t, mws, 2)
}
