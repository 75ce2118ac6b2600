// Package logging builds the process logger from the logging configuration.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/fredcamaral/simreport/internal/domain/entities"
)

// Level maps a configured log level to its slog level. Unknown levels map to warn.
func Level(level entities.LogLevel) slog.Level {
	switch level {
	case entities.LogLevelDebug:
		return slog.LevelDebug
	case entities.LogLevelInfo:
		return slog.LevelInfo
	case entities.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a logger writing to the configured file, or to fallback when no
// file is set. The returned closer releases the file sink and must be called
// on exit.
func New(cfg entities.LoggingConfig, fallback io.Writer) (*slog.Logger, io.Closer) {
	var (
		sink   = fallback
		closer io.Closer = nopCloser{}
	)

	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.GetMaxSize(),
			MaxAge:     cfg.GetMaxAge(),
			MaxBackups: cfg.GetMaxBackups(),
		}
		sink, closer = rotating, rotating
	}

	opts := &slog.HandlerOptions{Level: Level(cfg.GetLevel())}

	var handler slog.Handler
	if cfg.JSONFormat {
		handler = slog.NewJSONHandler(sink, opts)
	} else {
		handler = slog.NewTextHandler(sink, opts)
	}

	return slog.New(handler).With("app", "simreport"), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
