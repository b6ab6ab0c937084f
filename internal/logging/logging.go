package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LevelFromFlags returns the level selected by the verbosity flags:
//   - vv: debug
//   - v: info
//   - q: error
//   - none: fallback
//
// The flags are evaluated in that order.
func LevelFromFlags(vv, v, q bool, fallback slog.Level) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return fallback
	}
}

// ParseLevel converts a level name such as "info" to a slog.Level
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q: %w", name, err)
	}
	return level, nil
}

// Setup installs a text logger writing to w as the slog default and
// returns it
func Setup(w io.Writer, level slog.Level) *slog.Logger {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
