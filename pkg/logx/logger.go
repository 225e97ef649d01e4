package logx

import (
	"log/slog"
	"os"
)

// Logger is a thin wrapper over slog that tags every record with the
// component that emitted it.
type Logger struct {
	inner *slog.Logger
}

// Init installs the process-wide handler. JSON output is used in prod so the
// records can be shipped as-is; text output is easier on the eyes locally.
// Records go to stderr so stdout stays clean for the MCP stdio transport.
func Init(prod bool, level slog.Level) {
	options := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if prod {
		handler = slog.NewJSONHandler(os.Stderr, options)
	} else {
		handler = slog.NewTextHandler(os.Stderr, options)
	}
	slog.SetDefault(slog.New(handler))
}

func NewLogger(component string) *Logger {
	return &Logger{inner: slog.Default().With("component", component)}
}

func (l *Logger) Info(msg string, args ...any) {
	l.inner.Info(msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.inner.Warn(msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.inner.Error(msg, args...)
}

func (l *Logger) Debug(msg string, args ...any) {
	l.inner.Debug(msg, args...)
}

func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}
