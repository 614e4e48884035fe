package logger

import "context"

// Logger is the leveled, printf-style logging interface used across the
// pipeline. The context is accepted so call sites never need to change if
// request-scoped fields are added later.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
}
