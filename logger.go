package mtbridge

import (
	"fmt"
	"time"

	"github.com/willibrandon/mtbridge/capture"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/internal/binding"
	"github.com/willibrandon/mtbridge/parser"
	"github.com/willibrandon/mtbridge/selflog"
)

// Logger is the message-template logger. It is safe for concurrent use;
// loggers derived with ForContext share the pipeline of their parent.
type Logger struct {
	pipeline     *pipeline
	minimumLevel core.LogEventLevel
	levelSwitch  *LoggingLevelSwitch
	binder       *binding.Binder
	properties   []*core.LogEventProperty
}

var _ core.Logger = (*Logger)(nil)

// Build creates a logger, returning the first error reported by an option.
func Build(options ...Option) (*Logger, error) {
	cfg := &config{minimumLevel: core.InformationLevel}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	return newLogger(cfg), nil
}

// New creates a logger. Options that fail, such as a rolling file that cannot
// be created, are reported through selflog and left out.
func New(options ...Option) *Logger {
	cfg := &config{minimumLevel: core.InformationLevel}
	for _, opt := range options {
		opt(cfg)
	}
	if cfg.err != nil && selflog.IsEnabled() {
		selflog.Printf("[mtbridge] configuration error: %v", cfg.err)
	}
	return newLogger(cfg)
}

func newLogger(cfg *config) *Logger {
	capturer := cfg.capturer
	if capturer == nil {
		capturer = capture.NewDefaultCapturer()
	}

	l := &Logger{
		pipeline:     newPipeline(cfg.enrichers, cfg.filters, cfg.sinks),
		minimumLevel: cfg.minimumLevel,
		levelSwitch:  cfg.levelSwitch,
		binder:       binding.New(capturer),
	}
	for _, p := range cfg.properties {
		l = l.with(p.name, p.value, p.destructure)
	}
	return l
}

// Verbose writes a verbose-level log event.
func (l *Logger) Verbose(messageTemplate string, args ...any) {
	l.Write(core.VerboseLevel, messageTemplate, args...)
}

// Debug writes a debug-level log event.
func (l *Logger) Debug(messageTemplate string, args ...any) {
	l.Write(core.DebugLevel, messageTemplate, args...)
}

// Information writes an information-level log event.
func (l *Logger) Information(messageTemplate string, args ...any) {
	l.Write(core.InformationLevel, messageTemplate, args...)
}

// Info is shorthand for Information.
func (l *Logger) Info(messageTemplate string, args ...any) {
	l.Write(core.InformationLevel, messageTemplate, args...)
}

// Warning writes a warning-level log event.
func (l *Logger) Warning(messageTemplate string, args ...any) {
	l.Write(core.WarningLevel, messageTemplate, args...)
}

// Warn is shorthand for Warning.
func (l *Logger) Warn(messageTemplate string, args ...any) {
	l.Write(core.WarningLevel, messageTemplate, args...)
}

// Error writes an error-level log event.
func (l *Logger) Error(messageTemplate string, args ...any) {
	l.Write(core.ErrorLevel, messageTemplate, args...)
}

// Fatal writes a fatal-level log event. It does not exit the process.
func (l *Logger) Fatal(messageTemplate string, args ...any) {
	l.Write(core.FatalLevel, messageTemplate, args...)
}

// Write binds args to messageTemplate and writes the event at level.
// Templates that cannot be parsed are written as literal text.
func (l *Logger) Write(level core.LogEventLevel, messageTemplate string, args ...any) {
	if !l.IsEnabled(level) {
		return
	}

	tmpl, props, err := l.binder.Bind(messageTemplate, args)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[mtbridge] %v (template=%q)", err, messageTemplate)
		}
		tmpl = literalTemplate(messageTemplate)
		props = nil
	}

	l.dispatch(core.NewLogEvent(time.Now(), level, nil, tmpl, props))
}

// WriteEvent writes a fully constructed event. The event is copied; context
// properties of the logger are added when the event does not define them.
func (l *Logger) WriteEvent(event *core.LogEvent) {
	if event == nil || !l.IsEnabled(event.Level) {
		return
	}
	l.dispatch(event.Clone())
}

func (l *Logger) dispatch(event *core.LogEvent) {
	for _, p := range l.properties {
		event.AddPropertyIfAbsent(p)
	}
	l.pipeline.process(event, propertyFactory{binder: l.binder})
}

// IsEnabled reports whether events at level would be processed.
func (l *Logger) IsEnabled(level core.LogEventLevel) bool {
	if !level.IsValid() {
		return false
	}
	if l.levelSwitch != nil {
		return l.levelSwitch.IsEnabled(level)
	}
	return level >= l.minimumLevel
}

// ForContext returns a logger that adds the property to every event. A
// property of the same name set earlier is replaced. Names or values that
// cannot be bound leave the logger unchanged.
func (l *Logger) ForContext(propertyName string, value any, destructure bool) core.Logger {
	return l.with(propertyName, value, destructure)
}

// With is ForContext without destructuring, returning the concrete type.
func (l *Logger) With(propertyName string, value any) *Logger {
	return l.with(propertyName, value, false)
}

func (l *Logger) with(propertyName string, value any, destructure bool) *Logger {
	prop, ok := l.binder.BindProperty(propertyName, value, destructure)
	if !ok {
		if selflog.IsEnabled() {
			selflog.Printf("[mtbridge] context property %q (type=%T) could not be bound", propertyName, value)
		}
		return l
	}

	properties := make([]*core.LogEventProperty, 0, len(l.properties)+1)
	for _, p := range l.properties {
		if p.Name != prop.Name {
			properties = append(properties, p)
		}
	}
	properties = append(properties, prop)

	child := *l
	child.properties = properties
	return &child
}

// BindMessageTemplate parses messageTemplate and binds args to it.
func (l *Logger) BindMessageTemplate(messageTemplate string, args []any) (*parser.MessageTemplate, []*core.LogEventProperty, bool) {
	tmpl, props, err := l.binder.Bind(messageTemplate, args)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[mtbridge] %v (template=%q)", err, messageTemplate)
		}
		return nil, nil, false
	}
	return tmpl, props, true
}

// BindProperty captures value as a property named propertyName.
func (l *Logger) BindProperty(propertyName string, value any, destructure bool) (*core.LogEventProperty, bool) {
	return l.binder.BindProperty(propertyName, value, destructure)
}

// Close closes every sink. Call it once, on the root logger.
func (l *Logger) Close() error {
	return l.pipeline.close()
}

func literalTemplate(text string) *parser.MessageTemplate {
	return &parser.MessageTemplate{
		Raw:    text,
		Tokens: []parser.MessageTemplateToken{&parser.TextToken{Text: text}},
	}
}

// propertyFactory creates enricher properties with the logger's capturer.
type propertyFactory struct {
	binder *binding.Binder
}

func (f propertyFactory) CreateProperty(name string, value any, destructure bool) *core.LogEventProperty {
	if prop, ok := f.binder.BindProperty(name, value, destructure); ok {
		return prop
	}
	return core.NewLogEventProperty(name, core.ScalarValue{Value: fmt.Sprintf("%T", value)})
}
