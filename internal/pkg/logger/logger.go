// Package logger provides the structured logger shared by every FlowRisk component.
package logger

import (
	"context"
	"log/slog"
)

// LevelCritical sits above slog.LevelError and is used for the "critical" setting.
const LevelCritical = slog.Level(12)

// Logger defines the logging interface. Arguments after msg are alternating key/value pairs.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With returns a Logger that adds args to every record
	With(args ...any) Logger
	// Enabled reports whether records at level are emitted
	Enabled(level slog.Level) bool
}

type slogLogger struct {
	logger *slog.Logger
}

// New wraps a slog handler into a Logger
func New(handler slog.Handler) Logger {
	return &slogLogger{logger: slog.New(handler)}
}

func (l *slogLogger) Debug(msg string, args ...any) {
	l.logger.Debug(msg, args...)
}

func (l *slogLogger) Info(msg string, args ...any) {
	l.logger.Info(msg, args...)
}

func (l *slogLogger) Warn(msg string, args ...any) {
	l.logger.Warn(msg, args...)
}

func (l *slogLogger) Error(msg string, args ...any) {
	l.logger.Error(msg, args...)
}

func (l *slogLogger) With(args ...any) Logger {
	return &slogLogger{logger: l.logger.With(args...)}
}

func (l *slogLogger) Enabled(level slog.Level) bool {
	return l.logger.Enabled(context.Background(), level)
}
