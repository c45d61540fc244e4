package logger

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Logger is the logging contract used across this module.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// Log writes msg at level and correlates it with the span in ctx, if any.
	Log(ctx context.Context, level Level, msg string, fields ...Field)

	// With returns a child logger that always carries fields.
	With(fields ...Field) Logger

	Enabled(level Level) bool
	Sync() error
}

// Field is a typed key/value attached to an entry.
type Field = zap.Field

// String creates a string field.
func String(key, value string) Field {
	return zap.String(key, value)
}

// Int creates an int field.
func Int(key string, value int) Field {
	return zap.Int(key, value)
}

// Bool creates a bool field.
func Bool(key string, value bool) Field {
	return zap.Bool(key, value)
}

// Duration creates a duration field.
func Duration(key string, value time.Duration) Field {
	return zap.Duration(key, value)
}

// Err creates the conventional "error" field.
func Err(err error) Field {
	return zap.Error(err)
}

// Any creates a field with an arbitrary value. Prefer the typed constructors
// so secrets are not logged by accident.
func Any(key string, value any) Field {
	return zap.Any(key, value)
}

// NopLogger discards everything.
type NopLogger struct{}

// NewNop returns a Logger that discards everything.
func NewNop() Logger {
	return NopLogger{}
}

func (NopLogger) Debug(string, ...Field)                       {}
func (NopLogger) Info(string, ...Field)                        {}
func (NopLogger) Warn(string, ...Field)                        {}
func (NopLogger) Error(string, ...Field)                       {}
func (NopLogger) Log(context.Context, Level, string, ...Field) {}
func (n NopLogger) With(...Field) Logger                       { return n }
func (NopLogger) Enabled(Level) bool                           { return false }
func (NopLogger) Sync() error                                  { return nil }
