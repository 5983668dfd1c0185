package bridge

import (
	"fmt"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/facade"
)

// ReverseSink implements core.LogEventSink by forwarding events to a
// facade.Logger. Property values are unwrapped with UnwrapValue and the
// source context becomes a facade.SourceContext under the facade's
// context property name.
type ReverseSink struct {
	target facade.Logger
	opts   options
}

var _ core.LogEventSink = (*ReverseSink)(nil)

// NewReverseSink creates a sink writing to target.
func NewReverseSink(target facade.Logger, opts ...Option) *ReverseSink {
	return &ReverseSink{target: target, opts: newOptions(opts)}
}

// Emit translates event and logs it to the target. Nil events and events
// below the target's level are ignored. A level with no translation panics
// with an error wrapping ErrInvalidLevel.
func (s *ReverseSink) Emit(event *core.LogEvent) {
	if event == nil {
		return
	}
	level, err := ToFacadeLevel(event.Level)
	if err != nil {
		panic(err)
	}
	if !s.target.IsEnabledFor(level) {
		s.opts.observer.SkippedDisabled(Inbound)
		return
	}

	s.target.Log(s.translate(level, event))
	s.opts.observer.Forwarded(Inbound)
}

// Close implements core.LogEventSink. The target is not owned by the sink.
func (s *ReverseSink) Close() error {
	return nil
}

func (s *ReverseSink) translate(level facade.Level, event *core.LogEvent) *facade.LogEvent {
	template := ""
	if event.MessageTemplate != nil {
		template = event.MessageTemplate.Raw
	}

	props := make([]facade.Property, 0, len(event.Properties))
	for _, p := range event.Properties {
		if p == nil {
			continue
		}
		if p.Name == core.SourceContextPropertyName {
			props = append(props, facade.Property{
				Name:  RemapPropertyName(p.Name),
				Value: sourceContextValue(UnwrapValue(p.Value)),
			})
			continue
		}
		props = append(props, facade.Property{Name: p.Name, Value: UnwrapValue(p.Value)})
	}

	out := facade.NewLogEventAt(event.Timestamp, level, template)
	if event.Exception != nil {
		out = out.WithError(event.Exception)
	}
	if len(props) > 0 {
		out = out.WithProperties(props...)
	}
	return out
}

func sourceContextValue(unwrapped any) facade.SourceContext {
	switch v := unwrapped.(type) {
	case []any:
		segments := make([]string, len(v))
		for i, e := range v {
			segments[i] = segmentString(e)
		}
		return facade.NewSourceContext(segments...)
	case facade.SourceContext:
		return v
	default:
		return facade.NewSourceContext(segmentString(v))
	}
}

func segmentString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
