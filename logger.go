package tensorbuf

import (
	"io"
	"log/slog"

	"github.com/arloliu/tensorbuf/internal/logging"
)

// SetLogger routes tensorbuf diagnostics to l. The library is silent until a
// logger is set; passing nil silences it again.
//
// Diagnostics include misaligned-input corrections (warn) and buffer and
// artifact bookkeeping (debug).
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}

// Logger returns the logger currently used for diagnostics.
func Logger() *slog.Logger {
	return logging.Logger()
}

// NewTextLogger creates a logger that writes human-readable text logs to w.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelWarn).
func NewTextLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewJSONLogger creates a logger that writes JSON-formatted logs to w.
func NewJSONLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}
