package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a JSON-structured logger on stderr at info level.
func New() *slog.Logger {
	return NewWithLevel(os.Stderr, slog.LevelInfo)
}

// NewWithLevel returns a JSON-structured logger writing to w.
func NewWithLevel(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// ParseLevel maps debug, info, warn and error to slog levels. Anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// Default is the default logger instance.
var Default = New()
