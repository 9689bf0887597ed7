package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// DotEnvFile is loaded, when present, before the environment is read.
// Variables already set in the process environment win.
var DotEnvFile = ".env"

// parseEnv overlays cfg with EHR_* variables. Unset variables keep the
// current value.
func parseEnv(cfg *Config) error {
	if DotEnvFile != "" {
		if err := godotenv.Load(DotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", DotEnvFile, err)
		}
	}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

// EnvUsage describes the supported environment variables.
func EnvUsage() string {
	desc, err := cleanenv.GetDescription(&Config{}, nil)
	if err != nil {
		return ""
	}
	return desc
}
