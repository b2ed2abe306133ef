package logger

import (
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type config struct {
	level   slog.Level
	pretty  bool
	json    bool
	source  bool
	writers []io.Writer
}

// New creates a *slog.Logger for CLI commands. The default handler is slog's
// text handler; WithPretty switches to the charmbracelet handler and WithJSON
// to structured JSON output.
func New(opts ...Option) *slog.Logger {
	c := &config{
		level:   slog.LevelInfo,
		writers: []io.Writer{os.Stdout},
	}
	for _, opt := range opts {
		opt(c)
	}

	w := io.MultiWriter(c.writers...)

	var handler slog.Handler
	switch {
	case c.pretty:
		handler = charmlog.NewWithOptions(w, charmlog.Options{
			Level:        charmLevel(c.level),
			ReportCaller: c.source,
		})
	case c.json:
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     c.level,
			AddSource: c.source,
		})
	default:
		handler = slog.NewTextHandler(w, &slog.HandlerOptions{
			Level:     c.level,
			AddSource: c.source,
		})
	}

	return slog.New(handler)
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	}
	return charmlog.ErrorLevel
}
