package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/logging"
)

const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds runtime settings for the ehrdesk CLI.
//
// Units: RequestTimeout is a time.Duration (e.g., 15*time.Second).
type Config struct {
	APIBaseURL     string        `env:"EHR_API_URL" env-description:"EHR API base URL"`
	WalletEndpoint string        `env:"EHR_WALLET_URL" env-description:"JSON-RPC endpoint of the wallet signer"`
	RequestTimeout time.Duration `env:"EHR_TIMEOUT" env-description:"per-request timeout, e.g. 15s"`
	StorageBackend string        `env:"EHR_STORAGE" env-description:"session storage backend: sqlite or redis"`
	StoragePath    string        `env:"EHR_STORAGE_PATH" env-description:"SQLite database file"`
	RedisAddr      string        `env:"EHR_REDIS_ADDR" env-description:"Redis host:port"`
	RedisPassword  string        `env:"EHR_REDIS_PASSWORD" env-description:"Redis password"`
	RedisDB        int           `env:"EHR_REDIS_DB" env-description:"Redis database number"`
	RedisKeyPrefix string        `env:"EHR_REDIS_PREFIX" env-description:"prefix for session keys in Redis"`
	LogLevel       string        `env:"EHR_LOG_LEVEL" env-description:"debug, info, warn or error"`
	LogFormat      string        `env:"EHR_LOG_FORMAT" env-description:"console (zap) or text (slog)"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.WalletEndpoint = ""
	c.RequestTimeout = 15 * time.Second
	c.StorageBackend = BackendSQLite
	c.StoragePath = "ehrdesk.db"
	c.RedisAddr = "localhost:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.RedisKeyPrefix = "ehrdesk:"
	c.LogLevel = "info"
	c.LogFormat = logging.FormatConsole
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	if !strings.HasPrefix(c.APIBaseURL, "http://") && !strings.HasPrefix(c.APIBaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api url %q must start with http:// or https://", c.APIBaseURL))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	switch c.StorageBackend {
	case BackendSQLite:
		if c.StoragePath == "" {
			errs = append(errs, errors.New("storage path is required for the sqlite backend"))
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			errs = append(errs, errors.New("redis address is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q", c.StorageBackend))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", logging.FormatConsole, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}

	return errors.Join(errs...)
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
