// Package logging configures structured logging for the retrieval engine
// and the CLI.
package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config contains logging configuration.
type Config struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string
	// JSON selects the JSON handler; text handler otherwise.
	JSON bool
}

// DefaultConfig returns defaults suitable for CLI use.
func DefaultConfig() Config {
	return Config{
		Level: "info",
		JSON:  true,
	}
}

// Setup builds a logger writing structured records to out.
func Setup(out io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	if cfg.JSON {
		handler = slog.NewJSONHandler(out, opts)
	} else {
		handler = slog.NewTextHandler(out, opts)
	}

	return slog.New(handler)
}

// SetupDefault configures the process-wide default logger.
func SetupDefault(out io.Writer, cfg Config) *slog.Logger {
	logger := Setup(out, cfg)
	slog.SetDefault(logger)
	return logger
}

// parseLevel converts a string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromString converts a string level to slog.Level.
func LevelFromString(level string) slog.Level {
	return parseLevel(level)
}
