package internal

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// NewLogger returns the process logger tagged with service=verdant. The prod
// environment logs JSON with UTC timestamps; anything else logs text. An
// unrecognised level means info.
func NewLogger(w io.Writer, env string, level string) *slog.Logger {
	lvl, ok := logLevels[strings.ToLower(level)]
	if !ok {
		slog.Default().Warn("unknown log level, using info", "value", level)
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if env == "prod" {
		opts.ReplaceAttr = utcTime
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(h).With("service", "verdant")
}

func utcTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().UTC().Format(time.RFC3339Nano))
	}
	return a
}
