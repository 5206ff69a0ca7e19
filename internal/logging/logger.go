// Package logging defines a minimal structured-logging interface used across
// the project. Implementations wrap slog or zerolog.
package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/rs/zerolog"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr, "mode", mode)
type Logger interface {
	// Debug logs verbose diagnostics.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs a warning message for unusual but non-fatal conditions.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs an error message for failures.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}

// Output formats accepted by New.
const (
	FormatJSON    = "json"
	FormatText    = "text"
	FormatConsole = "console"
	FormatZerolog = "zerolog"
	FormatSlog    = "slog"
)

// New builds a Logger writing to w. "json" (alias "zerolog") emits zerolog
// JSON and "console" uses zerolog's human-readable writer. "slog" and "text"
// go through log/slog's JSON and text handlers. Unknown formats fall back to
// zerolog JSON.
func New(format string, w io.Writer) Logger {
	switch format {
	case FormatConsole:
		return NewZerologLogger(zerolog.New(zerolog.ConsoleWriter{Out: w}).With().Timestamp().Logger())
	case FormatSlog:
		return NewSlogLogger(slog.New(slog.NewJSONHandler(w, nil)))
	case FormatText:
		return NewSlogLogger(slog.New(slog.NewTextHandler(w, nil)))
	default:
		return NewZerologLogger(zerolog.New(w).With().Timestamp().Logger())
	}
}
