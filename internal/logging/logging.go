// Package logging builds the process-wide structured logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level is the shared log level, mutable at runtime via SetLevel.
var Level = &slog.LevelVar{}

// New builds a logger writing to w, with format either "text" or "json"
// and the given level string ("debug", "info", "warn", "error").
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	if err := SetLevel(level); err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: Level}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
	return slog.New(handler), nil
}

// SetLevel parses level and applies it to the shared Level var.
func SetLevel(level string) error {
	switch strings.ToLower(level) {
	case "debug":
		Level.Set(slog.LevelDebug)
	case "", "info":
		Level.Set(slog.LevelInfo)
	case "warn", "warning":
		Level.Set(slog.LevelWarn)
	case "error":
		Level.Set(slog.LevelError)
	default:
		return fmt.Errorf("unknown log level %q", level)
	}
	return nil
}

// Default builds the process default: text format to stderr at info level.
func Default() *slog.Logger {
	l, _ := New(os.Stderr, "info", "text")
	return l
}
