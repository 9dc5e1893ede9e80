// Package log defines the fleet-wide logging contract. Services log through
// the Logger interface so the backing implementation can be swapped in tests.
package log

import "context"

// Logger defines a standard interface for structured logging.
type Logger interface {
	Debug(ctx context.Context, msg string, fields ...map[string]interface{})
	Info(ctx context.Context, msg string, fields ...map[string]interface{})
	Warn(ctx context.Context, msg string, fields ...map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	Fatal(ctx context.Context, msg string, err error, fields ...map[string]interface{})
	// With returns a new logger with added structured fields.
	With(fields map[string]interface{}) Logger
}
