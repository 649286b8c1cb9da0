// Package logging holds the log levels and handlers shared by the
// application on top of log/slog.
package logging

import (
	"context"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"
	"golang.org/x/term"
)

// LevelSuccess sits between INFO and WARN and marks completed operator
// actions.
const LevelSuccess = slog.Level(2)

// Success logs msg at LevelSuccess.
func Success(logger *slog.Logger, msg string, args ...any) {
	logger.Log(context.Background(), LevelSuccess, msg, args...)
}

// LevelName renders a level the way operators read it.
func LevelName(l slog.Level) string {
	switch l {
	case LevelSuccess:
		return "SUCCESS"
	case slog.LevelWarn:
		return "WARNING"
	}
	return l.String()
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether ANSI colour should be written to f.
func ColorEnabled(f *os.File, want bool) bool {
	return want && IsTerminal(f)
}

func belowWarn(_ context.Context, r slog.Record) bool   { return r.Level < slog.LevelWarn }
func atLeastWarn(_ context.Context, r slog.Record) bool { return r.Level >= slog.LevelWarn }

// NewRouter sends records below WARN to low and the rest to high. Every
// record is also passed to each copy handler, e.g. a log file.
func NewRouter(low, high slog.Handler, copies ...slog.Handler) slog.Handler {
	routed := slogmulti.Router().
		Add(low, belowWarn).
		Add(high, atLeastWarn).
		Handler()
	return slogmulti.Fanout(append([]slog.Handler{routed}, copies...)...)
}
