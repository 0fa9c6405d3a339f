package glyphwin

import (
	"log/slog"

	"github.com/gogpu/glyphwin/internal/logging"
)

// SetLogger configures the logger for glyphwin and all its sub-packages.
// By default, glyphwin produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by glyphwin:
//   - [slog.LevelDebug]: per-frame diagnostics (glyph counts, rasterization failures, overruns)
//   - [slog.LevelInfo]: lifecycle events (sink opened, loop started and stopped)
//   - [slog.LevelWarn]: non-fatal issues (system fonts unavailable, sink close errors)
//
// Example:
//
//	// Enable debug-level logging to stderr:
//	glyphwin.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by glyphwin.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
