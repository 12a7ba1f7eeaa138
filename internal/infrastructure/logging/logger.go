package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"netbridge/internal/infrastructure/config"
)

// serviceName is attached to every log record.
const serviceName = "netbridge"

// Logger wraps slog.Logger with the service and version fields attached.
// Safe for concurrent use.
type Logger struct {
	*slog.Logger
}

// New builds a logger from the logging config section: JSON by default,
// text for local development, level-filtered, writing to stdout or stderr.
func New(cfg config.LoggingConfig, version string) *Logger {
	var output io.Writer
	switch strings.ToLower(cfg.Output) {
	case "stderr":
		output = os.Stderr
	default:
		output = os.Stdout
	}

	handler := newHandler(cfg.Format, output, parseLevel(cfg.Level))

	handler = handler.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
		slog.String("version", version),
	})

	return &Logger{
		Logger: slog.New(handler),
	}
}

// newHandler selects the slog handler for the configured format.
// Anything other than "text" means JSON.
func newHandler(format string, output io.Writer, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(format) == "text" {
		return slog.NewTextHandler(output, opts)
	}
	return slog.NewJSONHandler(output, opts)
}

// parseLevel converts a config level string to slog.Level, defaulting
// unrecognised values to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// With returns a new Logger carrying additional default attributes.
// Each component takes a child logger at construction:
//
//	apiLogger := logger.With("component", "api")
//	apiLogger.Info("listening") // includes component=api
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger: l.Logger.With(args...),
	}
}

// Default returns a stdout JSON logger at info level, for the window
// during startup before the config is loaded.
func Default() *Logger {
	return New(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "stdout",
	}, "dev")
}
