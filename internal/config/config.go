package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sfsweb/internal/logging"
	"github.com/aretw0/sfsweb/pkg/persistence/middleware"
	"github.com/aretw0/sfsweb/pkg/poller"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override (e.g. SFSWEB_BASE_URL).
const EnvPrefix = "sfsweb"

// DefaultFileName is looked up in the user's home directory when no --config is given.
const DefaultFileName = ".sfsweb.yaml"

// Store backends.
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds the client configuration.
type Config struct {
	// BaseURL is the SFS web client the actions are sent to.
	BaseURL string `yaml:"base_url" envconfig:"BASE_URL"`

	// HealthURL is polled by the status poller. Empty means always offline.
	HealthURL string `yaml:"health_url" envconfig:"HEALTH_URL"`

	// PollInterval is a duration ("5s") or an "@every" spec.
	PollInterval string `yaml:"poll_interval" envconfig:"POLL_INTERVAL"`

	// Timeout bounds a single HTTP round trip.
	Timeout time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`

	LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`

	// Store selects where the status board is persisted: memory or redis.
	Store         string `yaml:"store" envconfig:"STORE"`
	RedisAddr     string `yaml:"redis_addr" envconfig:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" envconfig:"REDIS_DB"`

	// BoardKey names the persisted board, so several profiles can share one redis.
	BoardKey string `yaml:"board_key" envconfig:"BOARD_KEY"`

	// EncryptionKey (base64, 32 bytes) seals the persisted board. Empty stores it in clear.
	EncryptionKey string `yaml:"encryption_key" envconfig:"ENCRYPTION_KEY"`

	// EncryptionFallbackKeys are older keys still accepted when loading.
	EncryptionFallbackKeys []string `yaml:"encryption_fallback_keys" envconfig:"ENCRYPTION_FALLBACK_KEYS"`

	// RedactParams are patterns of location query parameters masked before the board is persisted.
	RedactParams []string `yaml:"redact_params" envconfig:"REDACT_PARAMS"`

	// MonitorAddr is the listen address of `sfsweb monitor`.
	MonitorAddr string `yaml:"monitor_addr" envconfig:"MONITOR_ADDR"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL:      "http://localhost:8080",
		PollInterval: "5s",
		Timeout:      30 * time.Second,
		LogLevel:     "info",
		Store:        StoreMemory,
		BoardKey:     "default",
		MonitorAddr:  ":9090",
	}
}

// Load builds the configuration from defaults, the YAML file at path and the
// environment, in that order. An empty path looks for ~/.sfsweb.yaml and
// tolerates its absence; an explicit path must exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	if path != "" {
		if err := cfg.readFile(path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error loading values from environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultPath returns ~/.sfsweb.yaml, or "" if the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DefaultFileName)
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Validate checks the configuration for values the client cannot work with.
func (c *Config) Validate() error {
	if err := checkURL("base_url", c.BaseURL, true); err != nil {
		return err
	}
	if err := checkURL("health_url", c.HealthURL, false); err != nil {
		return err
	}
	if _, err := poller.ParseInterval(c.PollInterval); err != nil {
		return fmt.Errorf("invalid poll_interval: %w", err)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("invalid timeout: %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	switch c.Store {
	case StoreMemory:
	case StoreRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("redis_addr is required when store is %q", StoreRedis)
		}
	default:
		return fmt.Errorf("unknown store %q (expected %q or %q)", c.Store, StoreMemory, StoreRedis)
	}
	if c.BoardKey == "" {
		return fmt.Errorf("board_key must not be empty")
	}
	if c.EncryptionKey != "" {
		if _, err := middleware.ParseKey(c.EncryptionKey); err != nil {
			return fmt.Errorf("invalid encryption_key: %w", err)
		}
	} else if len(c.EncryptionFallbackKeys) > 0 {
		return errors.New("encryption_fallback_keys requires encryption_key")
	}
	for i, k := range c.EncryptionFallbackKeys {
		if _, err := middleware.ParseKey(k); err != nil {
			return fmt.Errorf("invalid encryption_fallback_keys[%d]: %w", i, err)
		}
	}
	if _, err := middleware.NewRedactMiddleware(c.RedactParams); err != nil {
		return fmt.Errorf("invalid redact_params: %w", err)
	}
	return nil
}

// StoreMiddleware returns the store wrappers selected by the configuration.
func (c *Config) StoreMiddleware() ([]middleware.Middleware, error) {
	var mws []middleware.Middleware
	if len(c.RedactParams) > 0 {
		redact, err := middleware.NewRedactMiddleware(c.RedactParams)
		if err != nil {
			return nil, fmt.Errorf("invalid redact_params: %w", err)
		}
		mws = append(mws, redact)
	}
	if c.EncryptionKey == "" {
		return mws, nil
	}

	enc := middleware.EncryptionConfig{}
	var err error
	if enc.ActiveKey, err = middleware.ParseKey(c.EncryptionKey); err != nil {
		return nil, fmt.Errorf("invalid encryption_key: %w", err)
	}
	for _, k := range c.EncryptionFallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("invalid encryption_fallback_keys: %w", err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	sealed, err := middleware.NewEncryptionMiddleware(enc)
	if err != nil {
		return nil, err
	}
	return append(mws, sealed), nil
}

func checkURL(name, raw string, required bool) error {
	if raw == "" {
		if required {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid %s %q: scheme must be http or https", name, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid %s %q: missing host", name, raw)
	}
	return nil
}

// String returns a log safe rendering of the configuration.
func (c Config) String() string {
	if c.RedisPassword != "" {
		c.RedisPassword = "REDACTED_NOT_EMPTY"
	}
	if c.EncryptionKey != "" {
		c.EncryptionKey = "REDACTED_NOT_EMPTY"
	}
	if len(c.EncryptionFallbackKeys) > 0 {
		c.EncryptionFallbackKeys = []string{"REDACTED_NOT_EMPTY"}
	}
	out, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<config: %v>", err)
	}
	return string(out)
}
