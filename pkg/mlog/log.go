// Package mlog defines the structured-logging interface used across the
// ledger, the agent and the operator CLI: one small interface, one
// zap-backed implementation, and context propagation helpers.
package mlog

import "context"

// Logger is the logging interface every component depends on.
type Logger interface {
	Info(args ...any)
	Infof(format string, args ...any)

	Error(args ...any)
	Errorf(format string, args ...any)

	Warn(args ...any)
	Warnf(format string, args ...any)

	Debug(args ...any)
	Debugf(format string, args ...any)

	Fatal(args ...any)
	Fatalf(format string, args ...any)

	// WithFields returns a child logger carrying the given key/value pairs on
	// every subsequent call.
	WithFields(fields ...any) Logger

	Sync() error
}

type loggerContextKey struct{}

// NewContext returns a copy of ctx carrying l, retrievable via FromContext.
func NewContext(ctx context.Context, l Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, l)
}

// FromContext returns the logger attached to ctx, or NoOp() if none was attached.
func FromContext(ctx context.Context) Logger {
	if l, ok := ctx.Value(loggerContextKey{}).(Logger); ok && l != nil {
		return l
	}

	return NoOp()
}
