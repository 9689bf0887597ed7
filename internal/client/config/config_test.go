package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

// noDotEnv keeps a stray .env in the package directory out of the tests.
func noDotEnv(t *testing.T) {
	t.Helper()
	old := DotEnvFile
	DotEnvFile = ""
	t.Cleanup(func() { DotEnvFile = old })
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://localhost:8000/api", c.APIBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, BackendSQLite, c.StorageBackend)
	assert.Equal(t, "info", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	noDotEnv(t)

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(defaults(), *cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	noDotEnv(t)

	path := writeTempJSON(t, map[string]any{
		"api_url":         "http://json:1/api",
		"wallet_url":      "http://json-wallet",
		"request_timeout": "30s",
		"storage":         "redis",
		"redis_db":        2,
		"log_level":       "warn",
		"log_format":      "text",
	})
	t.Setenv("EHR_API_URL", "http://env:2/api")
	t.Setenv("EHR_LOG_LEVEL", "debug")

	cfg, err := LoadConfig([]string{"-c", path, "-l", "error", "-t", "5"})
	require.NoError(t, err)

	want := defaults()
	want.APIBaseURL = "http://env:2/api"
	want.WalletEndpoint = "http://json-wallet"
	want.RequestTimeout = 5 * time.Second
	want.StorageBackend = BackendRedis
	want.RedisDB = 2
	want.LogLevel = "error"
	want.LogFormat = "text"

	assert.Empty(t, cmp.Diff(want, *cfg))
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("EHR_WALLET_URL=http://dotenv-wallet\n"), 0o600))

	old := DotEnvFile
	DotEnvFile = envFile
	t.Cleanup(func() {
		DotEnvFile = old
		_ = os.Unsetenv("EHR_WALLET_URL")
	})

	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://dotenv-wallet", cfg.WalletEndpoint)
}

func TestLoadConfig_Errors(t *testing.T) {
	noDotEnv(t)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

	tests := []struct {
		name string
		args []string
	}{
		{"missing json file", []string{"-config", filepath.Join(t.TempDir(), "none.json")}},
		{"invalid json", []string{"-c", bad}},
		{"bad timeout flag", []string{"-t", "abc"}},
		{"unknown backend", []string{"-s", "etcd"}},
		{"bad url", []string{"-a", "localhost:8000"}},
		{"bad level", []string{"-l", "loud"}},
		{"zero timeout", []string{"-t", "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(tt.args)
			require.Error(t, err)
		})
	}
}

func TestParseFlags_IgnoresForeignArgs(t *testing.T) {
	cfg := defaults()
	err := parseFlags(&cfg, []string{"-c", "x.json", "-a", "https://h/api", "-unknown", "v", "-w=http://w"})
	require.NoError(t, err)

	assert.Equal(t, "https://h/api", cfg.APIBaseURL)
	assert.Equal(t, "http://w", cfg.WalletEndpoint)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_LogFormatFromEnv(t *testing.T) {
	noDotEnv(t)

	t.Setenv("EHR_LOG_FORMAT", "text")
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)

	t.Setenv("EHR_LOG_FORMAT", "xml")
	_, err = LoadConfig(nil)
	assert.ErrorContains(t, err, "unknown log format")
}

func TestValidate_ReportsAll(t *testing.T) {
	c := Config{StorageBackend: BackendRedis, LogLevel: "nope"}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api url")
	assert.Contains(t, err.Error(), "request timeout")
	assert.Contains(t, err.Error(), "redis address")
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestEnvUsage(t *testing.T) {
	assert.Contains(t, EnvUsage(), "EHR_API_URL")
}
