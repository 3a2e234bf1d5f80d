// Package logging builds the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the logger returned by New.
type Options struct {
	Level  slog.Level
	Format string // "json" or "text"
	// File, when set, receives a copy of every record with size based rotation.
	File string
	// Writer replaces stdout as the console destination.
	Writer io.Writer
}

// New returns a logger writing to stdout (or opts.Writer) and, when opts.File
// is set, to a rotating log file. The returned closer releases the file and is never nil.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	var console io.Writer = os.Stdout
	if opts.Writer != nil {
		console = opts.Writer
	}
	out := console
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, err
		}
		rotating := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50,
			MaxAge:     14,
			MaxBackups: 5,
			Compress:   true,
		}
		out = io.MultiWriter(console, rotating)
		closer = rotating
	}

	return slog.New(newHandler(out, opts)), closer, nil
}

func newHandler(w io.Writer, opts Options) slog.Handler {
	handlerOpts := &slog.HandlerOptions{
		Level: opts.Level,
	}
	if opts.Format == "json" {
		return slog.NewJSONHandler(w, handlerOpts)
	}
	return slog.NewTextHandler(w, handlerOpts)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
