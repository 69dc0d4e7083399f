// Package rslog provides a common logging interface used throughout the
// resourceschema engine and the packages built on top of it, so that callers
// can plug in their own zap configuration without the engine depending on a
// concrete logger setup.
package rslog

// Logger is the logging interface used by every package in this module.
type Logger interface {
	// Debug logs a message at the debug level, used for derivation steps
	// and mapper pipeline progress.
	Debug(msg string, fields ...LogField)
	// Warn logs a message at the warn level, used for diagnostics such as
	// a resource the model declares but the configured service never
	// reaches.
	Warn(msg string, fields ...LogField)
	// Error logs a message at the error level.
	Error(msg string, fields ...LogField)
	// WithFields returns a new logger enriched with the given fields,
	// which will be included in all subsequent log messages.
	WithFields(fields ...LogField) Logger
	// Named returns a new logger with the given name appended to any
	// existing name, joined with a period.
	Named(name string) Logger
}

// LogField is a key-value pair attached to a log message.
type LogField struct {
	Type    LogFieldType
	Key     string
	String  string
	Integer int64
	Bool    bool
	Err     error
	Strings []string
}

// StringLogField creates a log field with a string value.
func StringLogField(key, value string) LogField {
	return LogField{Type: StringLogFieldType, Key: key, String: value}
}

// IntegerLogField creates a log field with an integer value.
func IntegerLogField(key string, value int64) LogField {
	return LogField{Type: IntegerLogFieldType, Key: key, Integer: value}
}

// BoolLogField creates a log field with a boolean value.
func BoolLogField(key string, value bool) LogField {
	return LogField{Type: BoolLogFieldType, Key: key, Bool: value}
}

// ErrorLogField creates a log field with an error value.
func ErrorLogField(key string, value error) LogField {
	return LogField{Type: ErrorLogFieldType, Key: key, Err: value}
}

// StringsLogField creates a log field with a slice of string values.
func StringsLogField(key string, values []string) LogField {
	return LogField{Type: StringsLogFieldType, Key: key, Strings: values}
}

// LogFieldType discriminates which value of a LogField is populated.
type LogFieldType int

const (
	StringLogFieldType LogFieldType = iota
	IntegerLogFieldType
	BoolLogFieldType
	ErrorLogFieldType
	StringsLogFieldType
)

// NopLogger is a Logger that discards everything sent to it, used as the
// default when a caller does not provide one.
type NopLogger struct{}

// NewNopLogger creates a no-op logger.
func NewNopLogger() Logger {
	return &NopLogger{}
}

func (l *NopLogger) Debug(msg string, fields ...LogField) {}
func (l *NopLogger) Warn(msg string, fields ...LogField)  {}
func (l *NopLogger) Error(msg string, fields ...LogField) {}

func (l *NopLogger) WithFields(fields ...LogField) Logger {
	return l
}

func (l *NopLogger) Named(name string) Logger {
	return l
}
