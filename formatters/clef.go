package formatters

import (
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/valyala/fastjson"

	"github.com/willibrandon/mtbridge/core"
)

// CLEFTimestampLayout is the @t layout written by CLEFFormatter.
const CLEFTimestampLayout = "2006-01-02T15:04:05.0000000Z"

// TypeTagName holds the type tag of a structure in CLEF output.
const TypeTagName = "$type"

var arenaPool fastjson.ArenaPool

// CLEFFormatter formats log events in Compact Log Event Format (CLEF).
// Properties keep their event order after the reserved @ fields.
type CLEFFormatter struct {
	// RenderMessage adds the rendered message as @m.
	RenderMessage bool
}

// NewCLEFFormatter creates a CLEF formatter that renders messages.
func NewCLEFFormatter() *CLEFFormatter {
	return &CLEFFormatter{RenderMessage: true}
}

// Format formats a log event as a single CLEF JSON object.
func (f *CLEFFormatter) Format(event *core.LogEvent) ([]byte, error) {
	a := arenaPool.Get()
	defer func() {
		a.Reset()
		arenaPool.Put(a)
	}()

	obj := a.NewObject()
	obj.Set("@t", a.NewString(event.Timestamp.UTC().Format(CLEFTimestampLayout)))
	obj.Set("@mt", a.NewString(event.MessageTemplateText()))
	if f.RenderMessage {
		obj.Set("@m", a.NewString(event.RenderMessage()))
	}
	obj.Set("@l", a.NewString(event.Level.String()))
	if event.Exception != nil {
		obj.Set("@x", a.NewString(event.Exception.Error()))
	}

	for _, p := range event.Properties {
		name := p.Name
		if strings.HasPrefix(name, "@") {
			name = "@" + name
		}
		obj.Set(name, propertyValueJSON(a, p.Value, 0))
	}

	return obj.MarshalTo(nil), nil
}

// maxJSONDepth bounds nesting of hand-built property values.
const maxJSONDepth = 64

func propertyValueJSON(a *fastjson.Arena, value core.LogEventPropertyValue, depth int) *fastjson.Value {
	if depth > maxJSONDepth {
		return a.NewString(fmt.Sprintf("%T", value))
	}
	switch v := value.(type) {
	case nil:
		return a.NewNull()
	case core.ScalarValue:
		return scalarJSON(a, v.Value)
	case core.SequenceValue:
		arr := a.NewArray()
		for i, e := range v.Elements {
			arr.SetArrayItem(i, propertyValueJSON(a, e, depth+1))
		}
		return arr
	case core.DictionaryValue:
		obj := a.NewObject()
		for _, e := range v.Elements {
			obj.Set(e.Key.String(), propertyValueJSON(a, e.Value, depth+1))
		}
		return obj
	case core.StructureValue:
		obj := a.NewObject()
		if v.TypeTag != "" {
			obj.Set(TypeTagName, a.NewString(v.TypeTag))
		}
		for _, p := range v.Properties {
			obj.Set(p.Name, propertyValueJSON(a, p.Value, depth+1))
		}
		return obj
	default:
		return a.NewString(v.String())
	}
}

func scalarJSON(a *fastjson.Arena, value any) *fastjson.Value {
	switch v := value.(type) {
	case nil:
		return a.NewNull()
	case string:
		return a.NewString(v)
	case bool:
		if v {
			return a.NewTrue()
		}
		return a.NewFalse()
	case int:
		return a.NewNumberInt(v)
	case int8:
		return a.NewNumberInt(int(v))
	case int16:
		return a.NewNumberInt(int(v))
	case int32:
		return a.NewNumberInt(int(v))
	case int64:
		return a.NewNumberString(strconv.FormatInt(v, 10))
	case uint:
		return a.NewNumberString(strconv.FormatUint(uint64(v), 10))
	case uint8:
		return a.NewNumberInt(int(v))
	case uint16:
		return a.NewNumberInt(int(v))
	case uint32:
		return a.NewNumberString(strconv.FormatUint(uint64(v), 10))
	case uint64:
		return a.NewNumberString(strconv.FormatUint(v, 10))
	case float32:
		return floatJSON(a, float64(v))
	case float64:
		return floatJSON(a, v)
	case time.Time:
		return a.NewString(v.Format(time.RFC3339Nano))
	case time.Duration:
		return a.NewString(v.String())
	case []byte:
		return a.NewString(base64.StdEncoding.EncodeToString(v))
	case error:
		return a.NewString(v.Error())
	case fmt.Stringer:
		return a.NewString(v.String())
	default:
		return a.NewString(fmt.Sprint(v))
	}
}

func floatJSON(a *fastjson.Arena, f float64) *fastjson.Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return a.NewString(strconv.FormatFloat(f, 'g', -1, 64))
	}
	return a.NewNumberString(strconv.FormatFloat(f, 'g', -1, 64))
}
