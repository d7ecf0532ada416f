package log

// NoopLogger discards everything.
type NoopLogger struct{}

// NewNoopLogger creates a new no-op logger.
func NewNoopLogger() *NoopLogger {
	return &NoopLogger{}
}

// Debug drops the message.
func (NoopLogger) Debug(msg string, fields ...Field) {}

// Info drops the message.
func (NoopLogger) Info(msg string, fields ...Field) {}

// Warn drops the message.
func (NoopLogger) Warn(msg string, fields ...Field) {}

// Error drops the message.
func (NoopLogger) Error(msg string, fields ...Field) {}

// With returns the receiver; there is nothing to attach fields to.
func (n NoopLogger) With(fields ...Field) Logger { return n }
