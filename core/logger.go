// Package core provides the fundamental interfaces and types for mtbridge's
// message-template logger: levels, events, property values, sinks, enrichers
// and filters.
package core

import "github.com/willibrandon/mtbridge/parser"

// SourceContextPropertyName is the reserved property that carries the
// hierarchical context (logger name) of an event.
const SourceContextPropertyName = "SourceContext"

// NamedArgs binds template properties by name instead of by position when
// passed as the only argument:
//
//	logger.Information("P1={Param1}, P2={Param2}", core.NamedArgs{"Param1": 1, "Param2": 2})
type NamedArgs map[string]any

// Logger is the main logging interface providing structured logging methods.
type Logger interface {
	// Verbose writes a verbose-level log event.
	Verbose(messageTemplate string, args ...any)

	// Debug writes a debug-level log event.
	Debug(messageTemplate string, args ...any)

	// Information writes an information-level log event.
	Information(messageTemplate string, args ...any)

	// Warning writes a warning-level log event.
	Warning(messageTemplate string, args ...any)

	// Error writes an error-level log event.
	Error(messageTemplate string, args ...any)

	// Fatal writes a fatal-level log event.
	Fatal(messageTemplate string, args ...any)

	// Write writes a log event at the specified level.
	Write(level LogEventLevel, messageTemplate string, args ...any)

	// WriteEvent writes a fully constructed event. Context properties of the
	// logger are added when absent from the event.
	WriteEvent(event *LogEvent)

	// IsEnabled returns true if events at the specified level would be processed.
	IsEnabled(level LogEventLevel) bool

	// ForContext creates a logger that enriches events with the specified
	// property. When destructure is true, struct values are captured field by field.
	ForContext(propertyName string, value any, destructure bool) Logger

	// BindMessageTemplate parses messageTemplate and binds args to its
	// property tokens. It returns false if the template cannot be bound.
	BindMessageTemplate(messageTemplate string, args []any) (*parser.MessageTemplate, []*LogEventProperty, bool)

	// BindProperty captures value as a named property. It returns false if
	// the name is blank or the value cannot be captured.
	BindProperty(propertyName string, value any, destructure bool) (*LogEventProperty, bool)
}
