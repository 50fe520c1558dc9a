package logging

import (
	"io"
	"log/slog"
	"strings"
)

const (
	LevelDebug = "DEBUG"
	LevelInfo  = "INFO"
	LevelWarn  = "WARN"
	LevelError = "ERROR"
)

// New returns a key=value text logger writing to w at the given level.
// Unknown levels fall back to INFO.
func New(w io.Writer, level string, service string) *slog.Logger {
	lvl := new(slog.LevelVar)
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case LevelDebug:
		lvl.Set(slog.LevelDebug)
	case LevelWarn:
		lvl.Set(slog.LevelWarn)
	case LevelError:
		lvl.Set(slog.LevelError)
	default:
		lvl.Set(slog.LevelInfo)
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(handler).With(slog.String("service", service))
}
