package logger

import (
	"fmt"
	"io"
	"os"

	charm "github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet logger so the rest of the codebase does
// not depend on the logging backend directly.
type Logger struct {
	*charm.Logger
}

// NewLogger creates a Logger writing to the given destination.
func NewLogger(w io.Writer) *Logger {
	l := charm.New(w)
	l.SetStyles(Styles())
	return &Logger{l}
}

// ParseLogLevel converts a configured level string to a charm log level.
// An empty string defaults to Info.
func ParseLogLevel(level string) (charm.Level, error) {
	if level == "" {
		return charm.InfoLevel, nil
	}

	parsed, err := charm.ParseLevel(level)
	if err != nil {
		return charm.InfoLevel, fmt.Errorf("invalid log level '%s'. Supported log levels are debug, info, warn, error", level)
	}
	return parsed, nil
}

// Configure applies the configured level and destination to the logger.
// Destination is one of "/dev/stderr" (default), "/dev/stdout", or a
// file path opened in append mode.
func (l *Logger) Configure(level string, file string) error {
	parsed, err := ParseLogLevel(level)
	if err != nil {
		return err
	}
	l.SetLevel(parsed)

	switch file {
	case "", "/dev/stderr":
		l.SetOutput(os.Stderr)
	case "/dev/stdout":
		l.SetOutput(os.Stdout)
	default:
		f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
		if err != nil {
			return err
		}
		l.SetOutput(f)
	}

	return nil
}
