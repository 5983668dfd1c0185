package core

import "strings"

// SourceContextString renders a source context property value as a dotted
// name. Sequences of segments are joined with "."; any other value uses its
// string form.
func SourceContextString(value LogEventPropertyValue) string {
	switch v := value.(type) {
	case nil:
		return ""
	case ScalarValue:
		if v.Value == nil {
			return ""
		}
		return v.String()
	case SequenceValue:
		segments := make([]string, 0, len(v.Elements))
		for _, e := range v.Elements {
			segments = append(segments, valueString(e))
		}
		return strings.Join(segments, ".")
	default:
		return v.String()
	}
}

// SourceContext returns the dotted source context of the event, if any.
func (e *LogEvent) SourceContext() (string, bool) {
	v, ok := e.Property(SourceContextPropertyName)
	if !ok {
		return "", false
	}
	return SourceContextString(v), true
}
