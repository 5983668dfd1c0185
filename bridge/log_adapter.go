package bridge

import (
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/facade"
	"github.com/willibrandon/mtbridge/parser"
	"github.com/willibrandon/mtbridge/selflog"
)

// LogAdapter implements facade.Logger on top of a core.Logger. It is
// immutable; ForContext returns a new adapter.
type LogAdapter struct {
	base    core.Logger
	inner   core.Logger
	context facade.SourceContext
	opts    options
}

var _ facade.Logger = (*LogAdapter)(nil)

// NewLogAdapter creates an adapter writing to logger.
func NewLogAdapter(logger core.Logger, opts ...Option) *LogAdapter {
	return &LogAdapter{
		base:  logger,
		inner: logger,
		opts:  newOptions(opts),
	}
}

// Context returns the accumulated source context.
func (a *LogAdapter) Context() facade.SourceContext {
	return a.context
}

// IsEnabledFor reports whether the inner logger accepts the translated
// level. Levels with no translation report false.
func (a *LogAdapter) IsEnabledFor(level facade.Level) bool {
	l, err := ToCoreLevel(level)
	if err != nil {
		return false
	}
	return a.inner.IsEnabled(l)
}

// ForContext returns an adapter that tags events with name appended to the
// current source context. Repeating the last segment returns the receiver.
func (a *LogAdapter) ForContext(name string) facade.Logger {
	next := a.context.Append(name)
	if next.Len() == a.context.Len() {
		return a
	}
	return &LogAdapter{
		base:    a.base,
		inner:   a.base.ForContext(core.SourceContextPropertyName, next.Segments(), false),
		context: next,
		opts:    a.opts,
	}
}

// Log translates event and writes it to the inner logger. A nil event is
// ignored. An event whose level has no translation panics with an error
// wrapping ErrInvalidLevel; use TryLog to receive the error instead.
func (a *LogAdapter) Log(event *facade.LogEvent) {
	if err := a.TryLog(event); err != nil {
		panic(err)
	}
}

// TryLog is Log with the invalid-level error returned.
func (a *LogAdapter) TryLog(event *facade.LogEvent) error {
	if event == nil {
		return nil
	}
	level, err := ToCoreLevel(event.Level())
	if err != nil {
		return err
	}
	if !a.inner.IsEnabled(level) {
		a.opts.observer.SkippedDisabled(Outbound)
		return nil
	}

	a.inner.WriteEvent(a.translate(level, event))
	a.opts.observer.Forwarded(Outbound)
	return nil
}

func (a *LogAdapter) translate(level core.LogEventLevel, event *facade.LogEvent) *core.LogEvent {
	tmpl, bound, ok := a.inner.BindMessageTemplate(event.MessageTemplate(), event.Args())
	if !ok {
		if selflog.IsEnabled() {
			selflog.Printf("[bridge] template binding failed, writing empty template (template=%q)", event.MessageTemplate())
		}
		a.opts.observer.TemplateBindFailed()
		tmpl, bound = parser.Empty(), nil
	}

	source := event.Properties()
	props := make([]*core.LogEventProperty, 0, len(source)+len(bound))
	for _, p := range source {
		prop, ok := a.inner.BindProperty(p.Name, p.Value, a.opts.destructure)
		if !ok {
			if selflog.IsEnabled() {
				selflog.Printf("[bridge] property %q dropped", p.Name)
			}
			a.opts.observer.PropertyDropped(p.Name)
			continue
		}
		props = append(props, prop)
	}
	// Later properties replace earlier ones in NewLogEvent, so template-bound
	// values take precedence.
	props = append(props, bound...)

	return core.NewLogEvent(event.Timestamp(), level, event.Err(), tmpl, props)
}
