// Package facade is a minimal logging facade for library code: five levels,
// immutable events and hierarchical source contexts. Implementations live
// elsewhere; see bridge.LogAdapter, NewTextLogger and the adapters packages.
package facade

// ContextPropertyName is the reserved event property holding a SourceContext.
const ContextPropertyName = "logger"

// Logger is the facade's logging capability.
type Logger interface {
	// Log writes the event. Nil events are ignored.
	Log(event *LogEvent)

	// IsEnabledFor reports whether events at level would be written.
	IsEnabledFor(level Level) bool

	// ForContext returns a logger whose events are tagged with an additional
	// nested scope. The receiver is not modified.
	ForContext(name string) Logger
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return nopLogger{}
}

type nopLogger struct{}

func (nopLogger) Log(*LogEvent)              {}
func (nopLogger) IsEnabledFor(Level) bool    { return false }
func (n nopLogger) ForContext(string) Logger { return n }
