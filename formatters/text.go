package formatters

import (
	"bytes"

	"github.com/willibrandon/mtbridge/core"
)

// ANSI colors used by TextFormatter when Colorize is set.
const (
	colorReset  = "\033[0m"
	colorGray   = "\033[90m"
	colorCyan   = "\033[36m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
	colorBgRed  = "\033[41;97m"
)

// TimestampLayout is the layout used by TextFormatter for event timestamps.
const TimestampLayout = "2006-01-02 15:04:05.000"

// TextFormatter renders events as
//
//	[2025-01-29 15:30:45.123 INF] (App.Orders) Order 42 placed {CorrelationId=...}
//
// followed by the exception on its own line, if any.
type TextFormatter struct {
	// ShowProperties appends properties not referenced by the template.
	ShowProperties bool

	// Colorize wraps the level in ANSI color codes.
	Colorize bool
}

// NewTextFormatter creates a text formatter that shows unreferenced properties.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{ShowProperties: true}
}

// Format renders the event.
func (f *TextFormatter) Format(event *core.LogEvent) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('[')
	buf.WriteString(event.Timestamp.Format(TimestampLayout))
	buf.WriteByte(' ')
	if f.Colorize {
		buf.WriteString(levelColor(event.Level))
		buf.WriteString(event.Level.ShortName())
		buf.WriteString(colorReset)
	} else {
		buf.WriteString(event.Level.ShortName())
	}
	buf.WriteString("] ")

	if ctx, ok := event.SourceContext(); ok && ctx != "" {
		buf.WriteByte('(')
		buf.WriteString(ctx)
		buf.WriteString(") ")
	}

	buf.WriteString(event.RenderMessage())

	if f.ShowProperties {
		f.writeExtraProperties(&buf, event)
	}

	if event.Exception != nil {
		buf.WriteByte('\n')
		buf.WriteString(event.Exception.Error())
	}

	return buf.Bytes(), nil
}

func (f *TextFormatter) writeExtraProperties(buf *bytes.Buffer, event *core.LogEvent) {
	referenced := make(map[string]bool)
	for _, name := range event.MessageTemplate.PropertyNames() {
		referenced[name] = true
	}

	first := true
	for _, p := range event.Properties {
		if referenced[p.Name] || p.Name == core.SourceContextPropertyName {
			continue
		}
		if first {
			buf.WriteString(" {")
			first = false
		} else {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Name)
		buf.WriteByte('=')
		if p.Value == nil {
			buf.WriteString("nil")
		} else {
			buf.WriteString(p.Value.String())
		}
	}
	if !first {
		buf.WriteByte('}')
	}
}

func levelColor(level core.LogEventLevel) string {
	switch level {
	case core.VerboseLevel, core.DebugLevel:
		return colorGray
	case core.InformationLevel:
		return colorCyan
	case core.WarningLevel:
		return colorYellow
	case core.ErrorLevel:
		return colorRed
	default:
		return colorBgRed
	}
}
