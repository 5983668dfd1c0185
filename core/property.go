package core

// LogEventProperty represents a single named property of a log event.
type LogEventProperty struct {
	// Name is the property name.
	Name string

	// Value is the property value.
	Value LogEventPropertyValue
}

// NewLogEventProperty creates a property.
func NewLogEventProperty(name string, value LogEventPropertyValue) *LogEventProperty {
	return &LogEventProperty{Name: name, Value: value}
}

// LogEventPropertyFactory creates log event properties from raw values.
type LogEventPropertyFactory interface {
	// CreateProperty captures value and names it.
	CreateProperty(name string, value any, destructure bool) *LogEventProperty
}
