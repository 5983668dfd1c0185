// Package binding matches message template arguments to property tokens.
package binding

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/parser"
	"github.com/willibrandon/mtbridge/selflog"
)

// ErrBindFailed is returned when a template could not be bound to its arguments.
var ErrBindFailed = errors.New("message template binding failed")

// Binder turns templates and arguments into properties using a capturer.
type Binder struct {
	capturer core.Capturer
}

// New creates a binder backed by capturer.
func New(capturer core.Capturer) *Binder {
	return &Binder{capturer: capturer}
}

// Bind parses template and binds args to it. Invalid templates and panics
// raised while binding are reported as errors.
func (b *Binder) Bind(template string, args []any) (tmpl *parser.MessageTemplate, props []*core.LogEventProperty, err error) {
	defer func() {
		if r := recover(); r != nil {
			tmpl, props = nil, nil
			err = fmt.Errorf("%w: %v", ErrBindFailed, r)
		}
	}()

	tmpl, err = parser.ParseCached(template)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrBindFailed, err)
	}
	return tmpl, b.BindTemplate(tmpl, args), nil
}

// BindTemplate binds args to the property tokens of tmpl.
//
// Templates made only of numeric tokens bind {i} to args[i]. Otherwise
// distinct names bind positionally in order of first appearance. A single
// core.NamedArgs argument, or a single anonymous struct with a field for
// every name, binds by name instead. Arguments left over are kept as
// properties named by their index.
func (b *Binder) BindTemplate(tmpl *parser.MessageTemplate, args []any) []*core.LogEventProperty {
	tokens := tmpl.PropertyTokens()
	if len(tokens) == 0 && len(args) == 0 {
		return nil
	}

	hints := make(map[string]parser.CapturingHint, len(tokens))
	for _, t := range tokens {
		if _, ok := hints[t.PropertyName]; !ok {
			hints[t.PropertyName] = t.Capturing
		}
	}

	if len(args) == 1 && !tmpl.IsPositional() {
		if props, ok := b.bindNamed(tmpl.PropertyNames(), hints, args[0]); ok {
			return props
		}
	}

	if tmpl.IsPositional() {
		return b.bindPositional(tokens, hints, args)
	}
	return b.bindInOrder(tmpl.PropertyNames(), hints, args)
}

func (b *Binder) bindPositional(tokens []*parser.PropertyToken, hints map[string]parser.CapturingHint, args []any) []*core.LogEventProperty {
	if selflog.IsEnabled() {
		for _, t := range tokens {
			if t.Index() >= len(args) {
				selflog.Printf("[binding] no argument for positional property {%s} (args=%d)", t.PropertyName, len(args))
			}
		}
	}

	props := make([]*core.LogEventProperty, 0, len(args))
	for i, arg := range args {
		name := strconv.Itoa(i)
		props = append(props, b.captureToken(name, hints[name], arg))
	}
	return props
}

func (b *Binder) bindInOrder(names []string, hints map[string]parser.CapturingHint, args []any) []*core.LogEventProperty {
	props := make([]*core.LogEventProperty, 0, len(args))
	for i, name := range names {
		if i >= len(args) {
			if selflog.IsEnabled() {
				selflog.Printf("[binding] no argument for property {%s} (args=%d)", name, len(args))
			}
			break
		}
		props = append(props, b.captureToken(name, hints[name], args[i]))
	}
	for i := len(names); i < len(args); i++ {
		props = append(props, b.captureToken(strconv.Itoa(i), parser.Default, args[i]))
	}
	return props
}

// bindNamed binds arg by name when it is a core.NamedArgs or an anonymous
// struct covering every name.
func (b *Binder) bindNamed(names []string, hints map[string]parser.CapturingHint, arg any) ([]*core.LogEventProperty, bool) {
	switch v := arg.(type) {
	case core.NamedArgs:
		props := make([]*core.LogEventProperty, 0, len(v))
		used := make(map[string]bool, len(names))
		for _, name := range names {
			if value, ok := v[name]; ok {
				props = append(props, b.captureToken(name, hints[name], value))
				used[name] = true
			}
		}
		extra := make([]string, 0, len(v)-len(used))
		for name := range v {
			if !used[name] {
				extra = append(extra, name)
			}
		}
		sort.Strings(extra)
		for _, name := range extra {
			props = append(props, b.captureToken(name, parser.Default, v[name]))
		}
		return props, true
	}

	rv := reflect.ValueOf(arg)
	if !rv.IsValid() || rv.Kind() != reflect.Struct || rv.Type().Name() != "" || len(names) == 0 {
		return nil, false
	}
	fields := make([]reflect.Value, 0, len(names))
	for _, name := range names {
		sf, ok := rv.Type().FieldByName(name)
		if !ok || !sf.IsExported() {
			return nil, false
		}
		fields = append(fields, rv.FieldByIndex(sf.Index))
	}
	props := make([]*core.LogEventProperty, 0, len(names))
	for i, name := range names {
		props = append(props, b.captureToken(name, hints[name], fields[i].Interface()))
	}
	return props, true
}

// captureToken captures a template argument. Capture failures fall back to
// the type name so the message still renders.
func (b *Binder) captureToken(name string, hint parser.CapturingHint, value any) *core.LogEventProperty {
	if hint == parser.Stringify {
		return core.NewLogEventProperty(name, core.ScalarValue{Value: fmt.Sprint(value)})
	}
	captured, ok := b.capturer.TryCapture(value, hint == parser.Capture)
	if !ok {
		if selflog.IsEnabled() {
			selflog.Printf("[binding] could not capture property %q (type=%T)", name, value)
		}
		captured = core.ScalarValue{Value: fmt.Sprintf("%T", value)}
	}
	return core.NewLogEventProperty(name, captured)
}

// BindProperty captures value as a named property. It declines blank names
// and values the capturer cannot represent.
func (b *Binder) BindProperty(name string, value any, destructure bool) (*core.LogEventProperty, bool) {
	if strings.TrimSpace(name) == "" {
		return nil, false
	}
	captured, ok := b.capturer.TryCapture(value, destructure)
	if !ok {
		return nil, false
	}
	return core.NewLogEventProperty(name, captured), true
}
