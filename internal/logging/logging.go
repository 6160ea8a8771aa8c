// Package logging holds the module-wide structured logger.
//
// tensorbuf is silent by default; the root package exposes SetLogger so an
// application can route diagnostics (such as misaligned-buffer corrections)
// into its own slog handler.
package logging

import (
	"log/slog"
	"sync/atomic"
)

var current atomic.Pointer[slog.Logger]

func init() {
	current.Store(discard())
}

// Logger returns the current module logger. It is never nil.
func Logger() *slog.Logger {
	return current.Load()
}

// SetLogger replaces the module logger. A nil logger restores the discard logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discard()
	}
	current.Store(l)
}

func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
