// Package logging defines a minimal structured-logging interface used across
// the project, with slog and zap implementations behind it.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Info(ctx, "starting server", "addr", addr)
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

// Supported backends.
const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// Options selects and configures a Logger backend.
type Options struct {
	Backend string
	// LogFile, when set, adds a rotated JSON file sink (zap backend only).
	LogFile string
	Output  io.Writer
}

// New builds a Logger for the requested backend. The returned close func
// flushes buffered output and must be called on shutdown.
func New(opts Options) (Logger, func() error, error) {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	switch opts.Backend {
	case "", BackendSlog:
		l := slog.New(slog.NewJSONHandler(out, nil))
		return NewSlogLogger(l), func() error { return nil }, nil
	case BackendZap:
		z, err := NewZapLogger(out, opts.LogFile)
		if err != nil {
			return nil, nil, err
		}
		return z, z.Sync, nil
	default:
		return nil, nil, fmt.Errorf("unknown log backend %q", opts.Backend)
	}
}
