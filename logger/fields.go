package logger

import (
	"go.uber.org/zap"
)

// Standard field names for consistent structured logging across jsongen.
// Use these constants instead of raw strings to ensure consistency.
const (
	// Components
	FieldComponent = "component"

	// Operations
	FieldOperation = "operation"
	FieldLanguage  = "language"
	FieldStyle     = "style"

	// Inputs
	FieldFile      = "file"
	FieldURL       = "url"
	FieldInstances = "instances"

	// Analysis results
	FieldSchemas   = "schemas"
	FieldFields    = "fields"
	FieldConflicts = "conflicts"
	FieldWarnings  = "warnings"

	// Timing
	FieldDurationMS = "duration_ms"

	// Errors
	FieldError = "error"

	// Counts and sizes
	FieldCount = "count"
	FieldSize  = "size"
)

// ComponentLogger returns a named logger for a specific component.
// This is the preferred way to get a logger for dependency injection.
//
// Example:
//
//	type Watcher struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func NewWatcher() *Watcher {
//	    return &Watcher{
//	        logger: logger.ComponentLogger("watch"),
//	    }
//	}
func ComponentLogger(name string) *zap.SugaredLogger {
	return Logger.Named(name)
}

// ChildLogger creates a child logger with additional context.
// Use for sub-operations that need extra context fields.
//
// Example:
//
//	genLogger := logger.ChildLogger(baseLogger, "language", lang)
func ChildLogger(parent *zap.SugaredLogger, keysAndValues ...interface{}) *zap.SugaredLogger {
	return parent.With(keysAndValues...)
}
