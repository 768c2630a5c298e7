// Package logger holds the process-wide structured logger used by slotkit.
package logger

import (
	"io"
	"log/slog"
	"os"
)

// EnvLogAlloc enables debug logging of slot allocation to stderr when set to
// any non-empty value.
const EnvLogAlloc = "SLOTKIT_LOG_ALLOC"

// L is the global logger instance. It discards all output unless
// SLOTKIT_LOG_ALLOC is set or Init enables it.
var L = fromEnv()

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Zero value is LevelInfo
	JSON    bool       // Emit JSON lines instead of logfmt-style text
}

// Init replaces L according to opts.
func Init(opts Options) {
	L = New(opts)
}

// New builds a logger without touching L.
func New(opts Options) *slog.Logger {
	if !opts.Enabled {
		return Discard()
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(w, hopts))
	}
	return slog.New(slog.NewTextHandler(w, hopts))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fromEnv() *slog.Logger {
	if os.Getenv(EnvLogAlloc) == "" {
		return Discard()
	}
	return New(Options{Enabled: true, Level: slog.LevelDebug})
}
