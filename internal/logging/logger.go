// Package logging decouples the bot from a concrete logging framework.
// The production implementation is backed by logrus; tests use MockLogger.
package logging

// Field is a key-value pair attached to a structured log entry.
type Field struct {
	Key   string
	Value interface{}
}

// Logger is the structured logging interface used across the application.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a derived logger with an error field attached.
	WithError(err error) Logger

	// WithField returns a derived logger with one extra field attached.
	WithField(key string, value interface{}) Logger
}
