// Package logger builds the structured logger used across the CLI.
// Diagnostics always go to a separate stream from the flashcard output so
// that stdout can be piped into a file untouched.
package logger

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w. Warnings and errors are always
// shown; debug output is enabled by verbose.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything. Useful for testing.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
