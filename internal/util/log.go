// Package util provides shared utility functions for logging, retries, rate
// limiting, and market holiday lookups.
package util

import (
	"log/slog"
	"os"
	"strings"
)

// LevelCritical marks failures that leave a position unmanaged unless the
// next cycle recovers it, e.g. a stop breach where no closing order could be
// placed. It sorts above slog.LevelError.
const LevelCritical = slog.Level(12)

// NewLogger creates a structured logger using log/slog at the specified
// level. Supported levels: "debug", "info", "warn", "error". Defaults to
// "info" if the level string is not recognised.
func NewLogger(level string) *slog.Logger {
	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       slevel,
		ReplaceAttr: renameCritical,
	})

	return slog.New(handler)
}

// renameCritical renders LevelCritical as "CRITICAL" instead of "ERROR+4".
func renameCritical(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		if lvl, ok := a.Value.Any().(slog.Level); ok && lvl >= LevelCritical {
			a.Value = slog.StringValue("CRITICAL")
		}
	}
	return a
}

// SetDefault configures the provided logger as the default slog logger.
func SetDefault(logger *slog.Logger) {
	slog.SetDefault(logger)
}
