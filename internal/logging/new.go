package logging

import (
	"fmt"
	"os"
	"strings"
)

const (
	FormatConsole = "console"
	FormatText    = "text"
)

// New builds the logger named by format: zap's console encoder or slog's
// logfmt-style text handler. Both write to stderr. Empty means console.
func New(format, level string) (Logger, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatConsole:
		return NewZap(level)
	case FormatText:
		if _, err := ParseLevel(level); err != nil {
			return nil, err
		}
		return NewTextSlog(os.Stderr, level), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
