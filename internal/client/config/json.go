package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/ehrdesk/internal/flagx"
	"github.com/dmitrijs2005/ehrdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent keys
// leave the current value alone.
type JsonConfig struct {
	APIBaseURL     string          `json:"api_url"`
	WalletEndpoint string          `json:"wallet_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	StorageBackend string          `json:"storage"`
	StoragePath    string          `json:"storage_path"`
	RedisAddr      string          `json:"redis_addr"`
	RedisPassword  string          `json:"redis_password"`
	RedisDB        *int            `json:"redis_db"`
	RedisKeyPrefix string          `json:"redis_prefix"`
	LogLevel       string          `json:"log_level"`
	LogFormat      string          `json:"log_format"`
}

// parseJSON overlays cfg with the file named by -c or -config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.WalletEndpoint, jc.WalletEndpoint)
	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.StoragePath, jc.StoragePath)
	setString(&cfg.RedisAddr, jc.RedisAddr)
	setString(&cfg.RedisPassword, jc.RedisPassword)
	setString(&cfg.RedisKeyPrefix, jc.RedisKeyPrefix)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.RedisDB != nil {
		cfg.RedisDB = *jc.RedisDB
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
