package formatters

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/parser"
)

// ErrInvalidCLEF is returned by ParseCLEF for lines that are not CLEF events.
var ErrInvalidCLEF = errors.New("invalid CLEF event")

var parserPool fastjson.ParserPool

// ParseCLEF reads one CLEF JSON object into an event. Objects become
// structures, tagged by their $type member when present. Integral numbers
// become int64 and other numbers float64. A missing @l means Information.
func ParseCLEF(line []byte) (*core.LogEvent, error) {
	p := parserPool.Get()
	defer parserPool.Put(p)

	v, err := p.ParseBytes(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCLEF, err)
	}
	obj, err := v.Object()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCLEF, err)
	}

	var (
		timestamp  time.Time
		level      = core.InformationLevel
		template   *parser.MessageTemplate
		message    string
		exception  error
		properties []*core.LogEventProperty
		visitErr   error
	)

	obj.Visit(func(key []byte, value *fastjson.Value) {
		if visitErr != nil {
			return
		}
		name := string(key)
		switch name {
		case "@t":
			timestamp, visitErr = parseCLEFTime(value)
		case "@l":
			level, visitErr = core.ParseLevel(string(value.GetStringBytes()))
		case "@mt":
			template, visitErr = parser.Parse(string(value.GetStringBytes()))
		case "@m":
			message = string(value.GetStringBytes())
		case "@x":
			exception = errors.New(string(value.GetStringBytes()))
		default:
			if strings.HasPrefix(name, "@@") {
				name = name[1:]
			} else if strings.HasPrefix(name, "@") {
				return
			}
			properties = append(properties, core.NewLogEventProperty(name, clefValue(value, 0)))
		}
	})
	if visitErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCLEF, visitErr)
	}
	if timestamp.IsZero() {
		return nil, fmt.Errorf("%w: missing @t", ErrInvalidCLEF)
	}
	if template == nil && message != "" {
		template = &parser.MessageTemplate{
			Raw:    message,
			Tokens: []parser.MessageTemplateToken{&parser.TextToken{Text: message}},
		}
	}

	return core.NewLogEvent(timestamp, level, exception, template, properties), nil
}

func parseCLEFTime(v *fastjson.Value) (time.Time, error) {
	b, err := v.StringBytes()
	if err != nil {
		return time.Time{}, fmt.Errorf("@t: %w", err)
	}
	t, err := time.Parse(time.RFC3339Nano, string(b))
	if err != nil {
		return time.Time{}, fmt.Errorf("@t: %w", err)
	}
	return t, nil
}

func clefValue(v *fastjson.Value, depth int) core.LogEventPropertyValue {
	if depth > maxJSONDepth {
		return core.ScalarValue{Value: v.String()}
	}

	switch v.Type() {
	case fastjson.TypeNull:
		return core.ScalarValue{}
	case fastjson.TypeString:
		return core.ScalarValue{Value: string(v.GetStringBytes())}
	case fastjson.TypeTrue:
		return core.ScalarValue{Value: true}
	case fastjson.TypeFalse:
		return core.ScalarValue{Value: false}
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return core.ScalarValue{Value: n}
		}
		return core.ScalarValue{Value: v.GetFloat64()}
	case fastjson.TypeArray:
		items := v.GetArray()
		elements := make([]core.LogEventPropertyValue, 0, len(items))
		for _, item := range items {
			elements = append(elements, clefValue(item, depth+1))
		}
		return core.SequenceValue{Elements: elements}
	case fastjson.TypeObject:
		var s core.StructureValue
		v.GetObject().Visit(func(key []byte, member *fastjson.Value) {
			if string(key) == TypeTagName && member.Type() == fastjson.TypeString {
				s.TypeTag = string(member.GetStringBytes())
				return
			}
			s.Properties = append(s.Properties, core.NewLogEventProperty(string(key), clefValue(member, depth+1)))
		})
		return s
	default:
		return core.ScalarValue{Value: v.String()}
	}
}
