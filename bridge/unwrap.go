package bridge

import (
	"fmt"
	"reflect"

	"github.com/willibrandon/mtbridge/core"
)

// MaxUnwrapDepth bounds how many nested containers UnwrapValue descends
// into. A container below that depth is replaced by its type name.
const MaxUnwrapDepth = 64

// UnwrapValue converts a property value into plain Go values:
//
//   - ScalarValue → the raw value
//   - SequenceValue → []any
//   - DictionaryValue → map[any]any, keys unwrapped; keys that cannot be
//     map keys use their fmt.Sprint form; the last duplicate key wins
//   - StructureValue → map[string]any keyed by field name
//
// Anything else becomes its fmt.Sprint form.
func UnwrapValue(value core.LogEventPropertyValue) any {
	return unwrap(value, 0)
}

func unwrap(value core.LogEventPropertyValue, depth int) any {
	switch v := value.(type) {
	case nil:
		return nil
	case core.ScalarValue:
		return v.Value
	case *core.ScalarValue:
		if v == nil {
			return nil
		}
		return v.Value
	case core.SequenceValue:
		return unwrapSequence(v, depth)
	case *core.SequenceValue:
		if v == nil {
			return nil
		}
		return unwrapSequence(*v, depth)
	case core.DictionaryValue:
		return unwrapDictionary(v, depth)
	case *core.DictionaryValue:
		if v == nil {
			return nil
		}
		return unwrapDictionary(*v, depth)
	case core.StructureValue:
		return unwrapStructure(v, depth)
	case *core.StructureValue:
		if v == nil {
			return nil
		}
		return unwrapStructure(*v, depth)
	default:
		return fmt.Sprint(value)
	}
}

func unwrapSequence(v core.SequenceValue, depth int) any {
	if depth >= MaxUnwrapDepth {
		return fmt.Sprintf("%T", v)
	}
	out := make([]any, len(v.Elements))
	for i, e := range v.Elements {
		out[i] = unwrap(e, depth+1)
	}
	return out
}

func unwrapDictionary(v core.DictionaryValue, depth int) any {
	if depth >= MaxUnwrapDepth {
		return fmt.Sprintf("%T", v)
	}
	out := make(map[any]any, len(v.Elements))
	for _, e := range v.Elements {
		out[mapKey(e.Key.Value)] = unwrap(e.Value, depth+1)
	}
	return out
}

func unwrapStructure(v core.StructureValue, depth int) any {
	if depth >= MaxUnwrapDepth {
		return fmt.Sprintf("%T", v)
	}
	out := make(map[string]any, len(v.Properties))
	for _, p := range v.Properties {
		if p == nil {
			continue
		}
		out[p.Name] = unwrap(p.Value, depth+1)
	}
	return out
}

func mapKey(key any) any {
	if key == nil {
		return nil
	}
	if !reflect.ValueOf(key).Comparable() {
		return fmt.Sprint(key)
	}
	return key
}
