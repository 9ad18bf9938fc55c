// Package logger builds the process logger and handles crash reporting.
package logger

import (
	"io"
	"log/slog"
)

// New returns a logger writing to w. Verbose lowers the level to debug;
// asJSON switches to the JSON handler so log lines can be piped alongside
// --json output.
func New(w io.Writer, verbose, asJSON bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	if asJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
