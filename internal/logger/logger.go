package logger

import (
	"io"
	"log/slog"
	"os"
)

// Logger represents application logger.
type Logger struct {
	*slog.Logger
}

// New creates new Logger instance writing to stdout at the specified
// level.
func New(level int) *Logger {
	return NewWithWriter(os.Stdout, slog.Level(level))
}

// NewWithWriter creates new Logger instance writing text records to w.
// Tests pass io.Discard or a buffer.
func NewWithWriter(w io.Writer, level slog.Leveler) *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})),
	}
}

// Fatal is equivalent to Error followed by os.Exit(1).
func (l *Logger) Fatal(msg string, args ...any) {
	l.Logger.Error(msg, args...)
	os.Exit(1)
}
