package logger

import (
	"log/slog"
	"os"
)

// New returns the process logger. Handlers and services receive this instance
// and attach request context themselves.
func New() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
