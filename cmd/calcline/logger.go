package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// newLogger creates the host logger. Without a log file, output goes to
// stderr, or nowhere when the terminal belongs to the interactive screen.
// The returned function closes the log file.
func newLogger(c *LogConfig, interactive bool) (*logrus.Logger, func(), error) {
	l := logrus.New()
	level, err := logrus.ParseLevel(c.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	l.SetLevel(level)

	switch c.Format {
	case "json":
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{DisableColors: interactive})
	}

	cleanup := func() {}
	switch {
	case c.File != "":
		if err := os.MkdirAll(filepath.Dir(c.File), 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		f, err := os.OpenFile(c.File, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		l.SetOutput(f)
		cleanup = func() { _ = f.Close() }
	case interactive:
		l.SetOutput(io.Discard)
	default:
		l.SetOutput(os.Stderr)
	}
	return l, cleanup, nil
}
