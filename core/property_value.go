package core

import (
	"fmt"
	"strings"
	"time"
)

// LogEventPropertyValue is the value of a log event property. The set of
// implementations is closed: ScalarValue, SequenceValue, DictionaryValue and
// StructureValue.
type LogEventPropertyValue interface {
	fmt.Stringer
	isPropertyValue()
}

// ScalarValue holds a single primitive value (string, number, bool, time, nil...).
type ScalarValue struct {
	Value any
}

// SequenceValue is an ordered collection of values.
type SequenceValue struct {
	Elements []LogEventPropertyValue
}

// DictionaryEntry is one key/value pair of a DictionaryValue.
type DictionaryEntry struct {
	Key   ScalarValue
	Value LogEventPropertyValue
}

// DictionaryValue is a collection of key/value pairs with scalar keys.
type DictionaryValue struct {
	Elements []DictionaryEntry
}

// StructureValue is a named set of fields, produced by destructuring a struct.
type StructureValue struct {
	// TypeTag is the source type name, if known.
	TypeTag string

	// Properties are the fields in declaration order.
	Properties []*LogEventProperty
}

func (ScalarValue) isPropertyValue()     {}
func (SequenceValue) isPropertyValue()   {}
func (DictionaryValue) isPropertyValue() {}
func (StructureValue) isPropertyValue()  {}

// NewScalar wraps a primitive value.
func NewScalar(value any) ScalarValue {
	return ScalarValue{Value: value}
}

// NewSequence creates a sequence from its elements.
func NewSequence(elements ...LogEventPropertyValue) SequenceValue {
	return SequenceValue{Elements: elements}
}

// String renders the scalar without quoting strings.
func (s ScalarValue) String() string {
	switch v := s.Value.(type) {
	case nil:
		return "nil"
	case string:
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case error:
		return v.Error()
	default:
		return fmt.Sprint(v)
	}
}

// String renders the sequence as [a, b, c].
func (s SequenceValue) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, e := range s.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(valueString(e))
	}
	sb.WriteByte(']')
	return sb.String()
}

// String renders the dictionary as {key: value, ...}.
func (d DictionaryValue) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, e := range d.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Key.String())
		sb.WriteString(": ")
		sb.WriteString(valueString(e.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

// String renders the structure as TypeTag {Field: value, ...}.
func (s StructureValue) String() string {
	var sb strings.Builder
	if s.TypeTag != "" {
		sb.WriteString(s.TypeTag)
		sb.WriteByte(' ')
	}
	sb.WriteByte('{')
	for i, p := range s.Properties {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Name)
		sb.WriteString(": ")
		sb.WriteString(valueString(p.Value))
	}
	sb.WriteByte('}')
	return sb.String()
}

// Field returns the value of the named structure field.
func (s StructureValue) Field(name string) (LogEventPropertyValue, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

func valueString(v LogEventPropertyValue) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
