// Package capture converts arbitrary Go values into core property values.
package capture

import (
	"fmt"
	"reflect"
	"sort"
	"time"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/selflog"
)

// DefaultCapturer is the default implementation of core.Capturer.
type DefaultCapturer struct {
	maxDepth           int
	maxStringLength    int
	maxCollectionCount int
	scalarTypes        map[reflect.Type]bool
}

var _ core.Capturer = (*DefaultCapturer)(nil)

// NewDefaultCapturer creates a new capturer with default settings.
func NewDefaultCapturer() *DefaultCapturer {
	return NewCapturer(5, 1000, 100)
}

// NewCapturer creates a capturer with custom limits.
func NewCapturer(maxDepth, maxStringLength, maxCollectionCount int) *DefaultCapturer {
	d := &DefaultCapturer{
		maxDepth:           maxDepth,
		maxStringLength:    maxStringLength,
		maxCollectionCount: maxCollectionCount,
		scalarTypes:        make(map[reflect.Type]bool),
	}

	d.RegisterScalarType(reflect.TypeOf(time.Time{}))
	d.RegisterScalarType(reflect.TypeOf(time.Duration(0)))

	return d
}

// RegisterScalarType registers a type that should always be captured as a scalar.
func (d *DefaultCapturer) RegisterScalarType(t reflect.Type) {
	d.scalarTypes[t] = true
}

// TryCapture converts value into a property value. It reports false if
// capturing panicked, for example inside a LogValue or String method.
func (d *DefaultCapturer) TryCapture(value any, destructure bool) (result core.LogEventPropertyValue, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			if selflog.IsEnabled() {
				selflog.Printf("[capture] panic during capturing: %v (type=%T)", r, value)
			}
			result, ok = nil, false
		}
	}()

	return d.capture(value, destructure, 0), true
}

// capture recursively captures a value.
func (d *DefaultCapturer) capture(value any, destructure bool, depth int) core.LogEventPropertyValue {
	if value == nil {
		return core.ScalarValue{}
	}

	switch v := value.(type) {
	case core.LogEventPropertyValue:
		return v
	case core.LogValue:
		return d.capture(v.LogValue(), destructure, depth)
	case error:
		return core.ScalarValue{Value: v}
	case string:
		return core.ScalarValue{Value: d.truncate(v)}
	case []byte:
		return core.ScalarValue{Value: v}
	}

	rv := reflect.ValueOf(value)
	if d.scalarTypes[rv.Type()] {
		return core.ScalarValue{Value: value}
	}

	switch rv.Kind() {
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return core.ScalarValue{Value: value}

	case reflect.String:
		return core.ScalarValue{Value: d.truncate(rv.String())}

	case reflect.Ptr, reflect.Interface:
		if rv.IsNil() {
			return core.ScalarValue{}
		}
		return d.capture(rv.Elem().Interface(), destructure, depth)

	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return core.ScalarValue{Value: fmt.Sprintf("%T", value)}
	}

	if depth >= d.maxDepth {
		return core.ScalarValue{Value: "<max depth reached>"}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return core.ScalarValue{}
		}
		return d.captureSequence(rv, destructure, depth)
	case reflect.Map:
		if rv.IsNil() {
			return core.ScalarValue{}
		}
		return d.captureDictionary(rv, destructure, depth)
	case reflect.Struct:
		if !destructure {
			return core.ScalarValue{Value: value}
		}
		return d.captureStructure(rv, depth)
	default:
		return core.ScalarValue{Value: fmt.Sprintf("%v", value)}
	}
}

func (d *DefaultCapturer) truncate(s string) string {
	if d.maxStringLength > 0 && len(s) > d.maxStringLength {
		return s[:d.maxStringLength] + "..."
	}
	return s
}

// captureSequence captures a slice or array.
func (d *DefaultCapturer) captureSequence(rv reflect.Value, destructure bool, depth int) core.LogEventPropertyValue {
	n := rv.Len()
	limit := n
	if d.maxCollectionCount > 0 && limit > d.maxCollectionCount {
		limit = d.maxCollectionCount
	}

	elements := make([]core.LogEventPropertyValue, 0, limit)
	for i := 0; i < limit; i++ {
		elements = append(elements, d.capture(rv.Index(i).Interface(), destructure, depth+1))
	}
	if limit < n {
		elements = append(elements, core.ScalarValue{Value: fmt.Sprintf("... (%d more)", n-limit)})
	}
	return core.SequenceValue{Elements: elements}
}

// captureDictionary captures a map. Entries are ordered by the string form of
// their keys so output is deterministic.
func (d *DefaultCapturer) captureDictionary(rv reflect.Value, destructure bool, depth int) core.LogEventPropertyValue {
	keys := rv.MapKeys()
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
	})

	limit := len(keys)
	if d.maxCollectionCount > 0 && limit > d.maxCollectionCount {
		limit = d.maxCollectionCount
	}

	entries := make([]core.DictionaryEntry, 0, limit)
	for _, key := range keys[:limit] {
		entries = append(entries, core.DictionaryEntry{
			Key:   d.captureKey(key),
			Value: d.capture(rv.MapIndex(key).Interface(), destructure, depth+1),
		})
	}
	if limit < len(keys) {
		entries = append(entries, core.DictionaryEntry{
			Key:   core.ScalarValue{Value: "..."},
			Value: core.ScalarValue{Value: fmt.Sprintf("(%d more)", len(keys)-limit)},
		})
	}
	return core.DictionaryValue{Elements: entries}
}

func (d *DefaultCapturer) captureKey(key reflect.Value) core.ScalarValue {
	k := key.Interface()
	switch key.Kind() {
	case reflect.String:
		return core.ScalarValue{Value: key.String()}
	case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return core.ScalarValue{Value: k}
	default:
		return core.ScalarValue{Value: fmt.Sprint(k)}
	}
}

// captureStructure captures the exported fields of a struct. Fields tagged
// `log:"-"` are skipped and `log:"name"` renames a field.
func (d *DefaultCapturer) captureStructure(rv reflect.Value, depth int) core.LogEventPropertyValue {
	t := rv.Type()
	props := make([]*core.LogEventProperty, 0, t.NumField())

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.PkgPath != "" {
			continue
		}
		tag := field.Tag.Get("log")
		if tag == "-" {
			continue
		}
		name := field.Name
		if tag != "" {
			name = tag
		}
		props = append(props, core.NewLogEventProperty(name, d.capture(rv.Field(i).Interface(), true, depth+1)))
	}

	return core.StructureValue{TypeTag: t.Name(), Properties: props}
}
