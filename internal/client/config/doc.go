// Package config loads runtime configuration for the ehrdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via flags: -c or -config.
//  3. Environment variables (EHR_*), optionally seeded from a .env file.
//  4. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   API base URL (default http://localhost:8000/api)
//	-w string   wallet signer JSON-RPC URL
//	-t int      request timeout (seconds)
//	-s string   storage backend: sqlite or redis
//	-p string   SQLite database file
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_url": "https://ehr.example.org/api",
//	  "wallet_url": "http://127.0.0.1:8545",
//	  "request_timeout": "15s",
//	  "storage": "redis",
//	  "redis_addr": "10.0.0.5:6379",
//	  "log_level": "debug"
//	}
package config
