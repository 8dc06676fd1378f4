package slogutil

import (
	"io"
	"log/slog"
)

// Options describes where and how to log.
type Options struct {
	Level slog.Level
	// Format is "text" (the smartdocs line format) or "json".
	Format string
	// Console receives logs unless it is nil. It must not be the MCP stdout.
	Console io.Writer
	// File additionally receives logs when set, with size-based rotation.
	File       string
	MaxSize    string
	MaxBackups int
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Setup builds a logger from opts. The returned closer releases the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	var handlers []slog.Handler
	var closer io.Closer = nopCloser{}

	if opts.Console != nil {
		handlers = append(handlers, newFormatHandler(opts.Console, opts.Format, opts.Level))
	}

	if opts.File != "" {
		rf, err := OpenRotatingFile(opts.File, ParseSize(opts.MaxSize), opts.MaxBackups)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, newFormatHandler(rf, opts.Format, opts.Level))
		closer = rf
	}

	switch len(handlers) {
	case 0:
		return NewDiscardLogger(), closer, nil
	case 1:
		return slog.New(handlers[0]), closer, nil
	default:
		return slog.New(NewTeeHandler(handlers...)), closer, nil
	}
}

func newFormatHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return NewHandler(w, opts)
}
