package interfaces

import "context"

// Logger is the leveled logger every storefront package writes to. Arguments
// after the message are alternating keys and values. The method set matches
// go-logger so its loggers plug in directly.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider resolves the logger for a module name such as
// "storefront.builder".
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger is implemented by loggers that can carry fixed fields. The
// returned child logs them on every entry and the receiver is unchanged.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
