package facade

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"time"
)

// TextLogger writes one line per event:
//
//	2025-01-29T15:30:45.123Z INFO  [App.Orders] Order 42 placed amount=9.99 error="card declined"
//
// The scope is the event's ContextPropertyName property when present,
// otherwise the logger's own context.
type TextLogger struct {
	out     *lockedWriter
	minimum Level
	context SourceContext
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextLogger creates a logger writing events at or above minimum to w.
func NewTextLogger(w io.Writer, minimum Level) *TextLogger {
	return &TextLogger{out: &lockedWriter{w: w}, minimum: minimum}
}

// IsEnabledFor reports whether level is valid and at or above the minimum.
func (l *TextLogger) IsEnabledFor(level Level) bool {
	return level.IsValid() && level >= l.minimum
}

// ForContext returns a logger tagging events with an additional scope.
func (l *TextLogger) ForContext(name string) Logger {
	next := l.context.Append(name)
	if next.Len() == l.context.Len() {
		return l
	}
	return &TextLogger{out: l.out, minimum: l.minimum, context: next}
}

// Log writes the event.
func (l *TextLogger) Log(event *LogEvent) {
	if event == nil || !l.IsEnabledFor(event.Level()) {
		return
	}

	var buf bytes.Buffer
	buf.WriteString(event.Timestamp().Format("2006-01-02T15:04:05.000Z07:00"))
	fmt.Fprintf(&buf, " %-5s ", event.Level())

	scope := l.context.String()
	if v, ok := event.Property(ContextPropertyName); ok {
		scope = fmt.Sprint(v)
	}
	if scope != "" {
		buf.WriteByte('[')
		buf.WriteString(scope)
		buf.WriteString("] ")
	}

	buf.WriteString(event.RenderMessage())

	for _, p := range event.Properties() {
		if p.Name == ContextPropertyName {
			continue
		}
		fmt.Fprintf(&buf, " %s=%v", p.Name, formatValue(p.Value))
	}
	if err := event.Err(); err != nil {
		fmt.Fprintf(&buf, " error=%q", err.Error())
	}
	buf.WriteByte('\n')

	l.out.mu.Lock()
	defer l.out.mu.Unlock()
	_, _ = l.out.w.Write(buf.Bytes())
}

func formatValue(v any) any {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case time.Time:
		return x.Format(time.RFC3339Nano)
	default:
		return v
	}
}
