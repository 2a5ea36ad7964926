// Package log configures the kernel's structured logging with the
// standard library's log/slog rather than a third-party logger.
package log

import (
	"log/slog"
	"os"
)

// New returns a text-handler logger writing to standard error.
// Debug mode (cmd/goboy's --debug flag) requests slog.LevelDebug; normal
// runs use slog.LevelInfo.
func New(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
