package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/ehrdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   API base URL
//	-w string   wallet signer JSON-RPC URL
//	-t int      request timeout in seconds
//	-s string   storage backend (sqlite or redis)
//	-p string   SQLite database file
//	-l string   log level
//
// Arguments that belong to other passes (-c/-config) are filtered out with
// flagx.Select first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.Select(args, "a", "w", "t", "s", "p", "l")

	fs := flag.NewFlagSet("ehrdesk", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.WalletEndpoint, "w", cfg.WalletEndpoint, "wallet signer JSON-RPC URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.StorageBackend, "s", cfg.StorageBackend, "storage backend: sqlite or redis")
	fs.StringVar(&cfg.StoragePath, "p", cfg.StoragePath, "SQLite database file")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
