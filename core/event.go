package core

import (
	"time"

	"github.com/willibrandon/mtbridge/parser"
)

// LogEvent represents a single log event with all its properties.
type LogEvent struct {
	// Timestamp is when the event occurred.
	Timestamp time.Time

	// Level is the severity of the event.
	Level LogEventLevel

	// MessageTemplate is the parsed message template.
	MessageTemplate *parser.MessageTemplate

	// Properties are the event's properties in the order they were added.
	// Names are unique within an event.
	Properties []*LogEventProperty

	// Exception associated with the event, if any.
	Exception error
}

// NewLogEvent creates an event. When properties repeat a name the last one wins.
func NewLogEvent(timestamp time.Time, level LogEventLevel, exception error, template *parser.MessageTemplate, properties []*LogEventProperty) *LogEvent {
	if template == nil {
		template = parser.Empty()
	}
	e := &LogEvent{
		Timestamp:       timestamp,
		Level:           level,
		MessageTemplate: template,
		Properties:      make([]*LogEventProperty, 0, len(properties)),
		Exception:       exception,
	}
	for _, p := range properties {
		if p != nil {
			e.AddOrUpdateProperty(p)
		}
	}
	return e
}

// Property returns the value of the named property.
func (e *LogEvent) Property(name string) (LogEventPropertyValue, bool) {
	if i := e.indexOf(name); i >= 0 {
		return e.Properties[i].Value, true
	}
	return nil, false
}

// AddOrUpdateProperty adds a property, replacing any existing one with the same name.
func (e *LogEvent) AddOrUpdateProperty(property *LogEventProperty) {
	if i := e.indexOf(property.Name); i >= 0 {
		e.Properties[i] = property
		return
	}
	e.Properties = append(e.Properties, property)
}

// AddPropertyIfAbsent adds a property to the event if it doesn't already exist.
func (e *LogEvent) AddPropertyIfAbsent(property *LogEventProperty) {
	if e.indexOf(property.Name) < 0 {
		e.Properties = append(e.Properties, property)
	}
}

// RemovePropertyIfPresent removes the named property.
func (e *LogEvent) RemovePropertyIfPresent(name string) {
	if i := e.indexOf(name); i >= 0 {
		e.Properties = append(e.Properties[:i:i], e.Properties[i+1:]...)
	}
}

func (e *LogEvent) indexOf(name string) int {
	for i, p := range e.Properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}

// MessageTemplateText returns the raw template text.
func (e *LogEvent) MessageTemplateText() string {
	return e.MessageTemplate.String()
}

// RenderMessage renders the message template with the event's properties.
// Scalars render through the template's format specifiers; other values use
// their String form.
func (e *LogEvent) RenderMessage() string {
	return e.MessageTemplate.Render(e.renderProperties())
}

func (e *LogEvent) renderProperties() map[string]any {
	props := make(map[string]any, len(e.Properties))
	for _, p := range e.Properties {
		switch v := p.Value.(type) {
		case ScalarValue:
			props[p.Name] = v.Value
		case nil:
			props[p.Name] = nil
		default:
			props[p.Name] = v
		}
	}
	return props
}

// Clone returns a copy of the event with its own property slice. Property
// values are immutable and shared.
func (e *LogEvent) Clone() *LogEvent {
	c := *e
	c.Properties = make([]*LogEventProperty, len(e.Properties))
	copy(c.Properties, e.Properties)
	return &c
}
