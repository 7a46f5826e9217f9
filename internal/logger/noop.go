package logger

import "time"

// NoopLogger is a logger that discards everything. It is used in tests
// and wherever a logger is required but output is not wanted.
type NoopLogger struct{}

// NewNoop returns a logger that does nothing.
func NewNoop() Interface {
	return &NoopLogger{}
}

// Debug does nothing.
func (n *NoopLogger) Debug(string, ...any) {}

// Info does nothing.
func (n *NoopLogger) Info(string, ...any) {}

// Warn does nothing.
func (n *NoopLogger) Warn(string, ...any) {}

// Error does nothing.
func (n *NoopLogger) Error(string, ...any) {}

// Fatal does nothing.
func (n *NoopLogger) Fatal(string, ...any) {}

// With returns the same noop logger.
func (n *NoopLogger) With(...any) Interface { return n }

// WithComponent returns the same noop logger.
func (n *NoopLogger) WithComponent(string) Interface { return n }

// WithError returns the same noop logger.
func (n *NoopLogger) WithError(error) Interface { return n }

// WithDuration returns the same noop logger.
func (n *NoopLogger) WithDuration(time.Duration) Interface { return n }
