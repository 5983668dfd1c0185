package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MessageTemplateToken represents a single token in a message template.
type MessageTemplateToken interface {
	// Render returns the string representation of the token using the provided properties.
	Render(properties map[string]any) string
}

// TextToken represents literal text in a message template.
type TextToken struct {
	// Text is the literal text content.
	Text string
}

// Render returns the literal text.
func (t *TextToken) Render(properties map[string]any) string {
	return t.Text
}

// CapturingHint specifies how a property should be captured.
type CapturingHint int

const (
	// Default keeps scalars as-is and captures collections element by element.
	Default CapturingHint = iota

	// Stringify forces string conversion ({$Name}).
	Stringify

	// Capture destructures the object structure ({@Name}).
	Capture
)

// PropertyToken represents a property placeholder in a message template.
type PropertyToken struct {
	// PropertyName is the name of the property.
	PropertyName string

	// Capturing specifies how the property should be captured.
	Capturing CapturingHint

	// Format specifies the format string, if any.
	Format string

	// Alignment specifies text alignment, if any.
	Alignment int

	raw string
}

// IsPositional reports whether the token refers to an argument index, e.g. {0}.
func (p *PropertyToken) IsPositional() bool {
	return isNumericIndex(p.PropertyName)
}

// Index returns the argument index of a positional token, or -1.
func (p *PropertyToken) Index() int {
	if !p.IsPositional() {
		return -1
	}
	n, err := strconv.Atoi(p.PropertyName)
	if err != nil {
		return -1
	}
	return n
}

// Render returns the string representation of the property value. Missing
// properties render as the original token text.
func (p *PropertyToken) Render(properties map[string]any) string {
	value, ok := properties[p.PropertyName]
	if !ok {
		if p.raw != "" {
			return p.raw
		}
		return "{" + p.PropertyName + "}"
	}
	return p.applyAlignment(p.formatValue(value))
}

// formatValue formats a value according to the property's format string.
func (p *PropertyToken) formatValue(value any) string {
	if p.Format == "j" {
		b, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprintf("<json error: %v>", err)
		}
		return string(b)
	}

	if value == nil {
		return "nil"
	}

	switch v := value.(type) {
	case time.Time:
		// time.Time implements fmt.Stringer, so it is matched first.
		if p.Format != "" {
			return formatTime(v, p.Format)
		}
		return v.Format(time.RFC3339)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		if p.Format != "" {
			return formatNumber(v, p.Format)
		}
		return fmt.Sprint(v)
	case float32, float64:
		if p.Format != "" {
			return formatFloat(v, p.Format)
		}
		return fmt.Sprint(v)
	case string:
		if p.Format == "q" {
			return strconv.Quote(v)
		}
		return v
	case []byte:
		if utf8.Valid(v) && isPrintable(v) {
			return string(v)
		}
		return fmt.Sprint(v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

func isPrintable(b []byte) bool {
	if len(b) == 0 {
		return false
	}
	for _, c := range b {
		if c < 32 && c != '\n' && c != '\r' && c != '\t' {
			return false
		}
	}
	return true
}

// formatNumber formats an integer: "000" pads with zeros, "x"/"X" is hexadecimal.
func formatNumber(value any, format string) string {
	var num int64
	switch v := value.(type) {
	case int:
		num = int64(v)
	case int8:
		num = int64(v)
	case int16:
		num = int64(v)
	case int32:
		num = int64(v)
	case int64:
		num = v
	case uint:
		num = int64(v)
	case uint8:
		num = int64(v)
	case uint16:
		num = int64(v)
	case uint32:
		num = int64(v)
	case uint64:
		num = int64(v)
	}

	switch {
	case format[0] == '0':
		return fmt.Sprintf("%0*d", len(format), num)
	case format == "x":
		return fmt.Sprintf("%x", num)
	case format == "X":
		return fmt.Sprintf("%X", num)
	default:
		return strconv.FormatInt(num, 10)
	}
}

// maxPrecision bounds the digits a float format may request; larger
// precisions fall back to the shortest representation.
const maxPrecision = 64

// formatFloat formats a float with F, E, G or P specifiers and an optional precision.
func formatFloat(value any, format string) string {
	var num float64
	switch v := value.(type) {
	case float32:
		num = float64(v)
	case float64:
		num = v
	}

	spec := strings.ToUpper(format)
	precision := -1
	if len(spec) > 1 {
		if n, err := strconv.Atoi(spec[1:]); err == nil && n >= 0 && n <= maxPrecision {
			precision = n
			spec = spec[:1]
		}
	}

	switch spec {
	case "F":
		return strconv.FormatFloat(num, 'f', precision, 64)
	case "E":
		return strconv.FormatFloat(num, 'e', precision, 64)
	case "G":
		return strconv.FormatFloat(num, 'g', precision, 64)
	case "P":
		if precision < 0 {
			precision = 2
		}
		return fmt.Sprintf("%.*f%%", precision, num*100)
	default:
		return strconv.FormatFloat(num, 'g', -1, 64)
	}
}

var timeLayoutReplacer = strings.NewReplacer(
	"yyyy", "2006",
	"yy", "06",
	"MMMM", "January",
	"MMM", "Jan",
	"MM", "01",
	"dd", "02",
	"HH", "15",
	"hh", "03",
	"mm", "04",
	"ss", "05",
	"fff", "000",
	"tt", "PM",
	"zzz", "-07:00",
)

// formatTime accepts .NET-style patterns (yyyy-MM-dd HH:mm:ss) as well as Go layouts.
func formatTime(t time.Time, format string) string {
	return t.Format(timeLayoutReplacer.Replace(format))
}

// applyAlignment pads s to the token's alignment width.
func (p *PropertyToken) applyAlignment(s string) string {
	if p.Alignment == 0 {
		return s
	}

	width := p.Alignment
	left := width < 0
	if left {
		width = -width
	}
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	if left {
		return s + strings.Repeat(" ", width-n)
	}
	return strings.Repeat(" ", width-n) + s
}
