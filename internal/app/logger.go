package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's own slog.Logger over outW. The global default
// logger is left alone so concurrent App instances (and the test harness)
// stay isolated from each other.
//
// levelStr is parsed by slog itself; anything unrecognized falls back to
// info, since the CLI has already validated the flag. format selects the
// json handler, everything else gets text.
func newLogger(levelStr, format string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
