package facade

import (
	"slices"
	"strings"
)

// SourceContext is an ordered, immutable list of nested scope names, such as
// ["App", "Orders", "Db"].
type SourceContext struct {
	segments []string
}

// NewSourceContext creates a context from its segments. Consecutive repeated
// segments are kept.
func NewSourceContext(segments ...string) SourceContext {
	return SourceContext{segments: slices.Clone(segments)}
}

// Append returns a context with segment added at the end. When segment
// equals the current last segment the receiver is returned unchanged.
func (c SourceContext) Append(segment string) SourceContext {
	if n := len(c.segments); n > 0 && c.segments[n-1] == segment {
		return c
	}
	segments := make([]string, len(c.segments), len(c.segments)+1)
	copy(segments, c.segments)
	return SourceContext{segments: append(segments, segment)}
}

// Segments returns a copy of the segments.
func (c SourceContext) Segments() []string {
	return slices.Clone(c.segments)
}

// Len returns the number of segments.
func (c SourceContext) Len() int {
	return len(c.segments)
}

// Equal reports whether both contexts have the same segments in the same order.
func (c SourceContext) Equal(other SourceContext) bool {
	return slices.Equal(c.segments, other.segments)
}

// String joins the segments with ".".
func (c SourceContext) String() string {
	return strings.Join(c.segments, ".")
}
