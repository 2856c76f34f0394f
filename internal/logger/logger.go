// Package logger holds the module-wide structured logger.
package logger

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	Writer  io.Writer  // Destination. Default: os.Stderr
	Level   slog.Level // Minimum log level. Default: LevelInfo when enabled
	JSON    bool       // Emit JSON instead of colored console text
	NoColor bool       // Disable ANSI colors in console output
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) {
	if !opts.Enabled {
		L = slog.New(slog.NewTextHandler(io.Discard, nil))
		return
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.JSON {
		L = slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: opts.Level}))
		return
	}
	L = slog.New(tint.NewHandler(w, &tint.Options{
		Level:   opts.Level,
		NoColor: opts.NoColor,
	}))
}
