// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger. Production emits JSON on stdout,
// every other environment gets colored tint output on stderr.
func Setup(environment, level string) *slog.Logger {
	var w io.Writer = os.Stderr
	if environment == "production" {
		w = os.Stdout
	}
	logger := slog.New(NewHandler(w, environment, ParseLevel(level)))
	slog.SetDefault(logger)
	return logger
}

// NewHandler builds the handler used for an environment.
func NewHandler(w io.Writer, environment string, level slog.Level) slog.Handler {
	if environment == "production" {
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	})
}

// ParseLevel maps LOG_LEVEL values to slog levels, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
