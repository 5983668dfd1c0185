package facade

import (
	"slices"
	"strconv"
	"time"

	"github.com/willibrandon/mtbridge/parser"
)

// Property is a named event value.
type Property struct {
	Name  string
	Value any
}

// LogEvent is an immutable log record. The With methods return modified copies.
type LogEvent struct {
	level      Level
	timestamp  time.Time
	template   string
	args       []any
	properties []Property
	err        error
}

// NewLogEvent creates an event stamped with the current time. template uses
// {name} or {index} placeholders filled from args.
func NewLogEvent(level Level, template string, args ...any) *LogEvent {
	return NewLogEventAt(time.Now(), level, template, args...)
}

// NewLogEventAt creates an event with an explicit timestamp.
func NewLogEventAt(timestamp time.Time, level Level, template string, args ...any) *LogEvent {
	return &LogEvent{
		level:     level,
		timestamp: timestamp,
		template:  template,
		args:      slices.Clone(args),
	}
}

// Level returns the event level.
func (e *LogEvent) Level() Level { return e.level }

// Timestamp returns when the event occurred.
func (e *LogEvent) Timestamp() time.Time { return e.timestamp }

// MessageTemplate returns the raw template text.
func (e *LogEvent) MessageTemplate() string { return e.template }

// Args returns a copy of the positional template arguments.
func (e *LogEvent) Args() []any { return slices.Clone(e.args) }

// Err returns the error attached to the event, if any.
func (e *LogEvent) Err() error { return e.err }

// Properties returns a copy of the named properties in insertion order.
func (e *LogEvent) Properties() []Property { return slices.Clone(e.properties) }

// Property returns the value of the named property.
func (e *LogEvent) Property(name string) (any, bool) {
	for _, p := range e.properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// WithProperty returns a copy of the event with the property set. An
// existing property of the same name keeps its position.
func (e *LogEvent) WithProperty(name string, value any) *LogEvent {
	return e.WithProperties(Property{Name: name, Value: value})
}

// WithProperties returns a copy of the event with every property set, in order.
func (e *LogEvent) WithProperties(properties ...Property) *LogEvent {
	c := *e
	c.properties = make([]Property, len(e.properties), len(e.properties)+len(properties))
	copy(c.properties, e.properties)
	for _, p := range properties {
		if i := slices.IndexFunc(c.properties, func(q Property) bool { return q.Name == p.Name }); i >= 0 {
			c.properties[i].Value = p.Value
			continue
		}
		c.properties = append(c.properties, p)
	}
	return &c
}

// WithError returns a copy of the event carrying err.
func (e *LogEvent) WithError(err error) *LogEvent {
	c := *e
	c.err = err
	return &c
}

// WithTimestamp returns a copy of the event with a different timestamp.
func (e *LogEvent) WithTimestamp(timestamp time.Time) *LogEvent {
	c := *e
	c.timestamp = timestamp
	return &c
}

// RenderMessage renders the template. Arguments bind by index for {0}-style
// templates and otherwise in order of first appearance; named properties fill
// placeholders no argument covers. Unknown placeholders are left as written.
func (e *LogEvent) RenderMessage() string {
	tmpl, err := parser.ParseCached(e.template)
	if err != nil {
		return e.template
	}

	values := make(map[string]any, len(e.args)+len(e.properties))
	if tmpl.IsPositional() {
		for i, arg := range e.args {
			values[strconv.Itoa(i)] = arg
		}
	} else {
		for i, name := range tmpl.PropertyNames() {
			if i < len(e.args) {
				values[name] = e.args[i]
			}
		}
	}
	for _, p := range e.properties {
		if _, ok := values[p.Name]; !ok {
			values[p.Name] = p.Value
		}
	}
	return tmpl.Render(values)
}
