package otel

import (
	"context"
	"time"

	olog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/embedded"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/trace"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/parser"
	"github.com/willibrandon/mtbridge/selflog"
)

// Property names added by Bridge.
const (
	TraceIDPropertyName   = "trace.id"
	SpanIDPropertyName    = "span.id"
	EventNamePropertyName = "EventName"
)

// Bridge exposes an mtbridge logger as an OpenTelemetry log.Logger. The
// record body is parsed as a message template and attributes become event
// properties, so {Name} tokens render from attributes of the same name.
type Bridge struct {
	embedded.Logger

	logger       core.Logger
	traceContext bool
}

var _ olog.Logger = (*Bridge)(nil)

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithTraceContext controls whether trace.id and span.id are taken from the
// context passed to Emit. It is on by default.
func WithTraceContext(enabled bool) BridgeOption {
	return func(b *Bridge) {
		b.traceContext = enabled
	}
}

// NewBridge creates a Bridge writing to logger.
func NewBridge(logger core.Logger, opts ...BridgeOption) *Bridge {
	b := &Bridge{logger: logger, traceContext: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Enabled reports whether the mapped level is enabled.
func (b *Bridge) Enabled(_ context.Context, param olog.EnabledParameters) bool {
	return b.logger.IsEnabled(LevelFromSeverity(param.Severity))
}

// Emit converts the record and writes it.
func (b *Bridge) Emit(ctx context.Context, record olog.Record) {
	level := LevelFromSeverity(record.Severity())
	if !b.logger.IsEnabled(level) {
		return
	}

	body := bodyText(record.Body())
	tmpl, err := parser.ParseCached(body)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[otel] %v (body=%q)", err, body)
		}
		tmpl = &parser.MessageTemplate{
			Raw:    body,
			Tokens: []parser.MessageTemplateToken{&parser.TextToken{Text: body}},
		}
	}

	props := make([]*core.LogEventProperty, 0, record.AttributesLen()+3)
	bind := func(name string, value any) {
		if p, ok := b.logger.BindProperty(name, value, false); ok {
			props = append(props, p)
		} else if selflog.IsEnabled() {
			selflog.Printf("[otel] attribute %q (type=%T) could not be bound", name, value)
		}
	}

	if name := record.EventName(); name != "" {
		bind(EventNamePropertyName, name)
	}
	if b.traceContext {
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			bind(TraceIDPropertyName, sc.TraceID().String())
			bind(SpanIDPropertyName, sc.SpanID().String())
		}
	}
	record.WalkAttributes(func(kv olog.KeyValue) bool {
		bind(kv.Key, convertValue(kv.Value))
		return true
	})

	b.logger.WriteEvent(core.NewLogEvent(recordTime(record), level, nil, tmpl, props))
}

func bodyText(v olog.Value) string {
	switch v.Kind() {
	case olog.KindString:
		return v.AsString()
	case olog.KindEmpty:
		return ""
	default:
		return v.String()
	}
}

func recordTime(record olog.Record) time.Time {
	if ts := record.Timestamp(); !ts.IsZero() {
		return ts
	}
	if ts := record.ObservedTimestamp(); !ts.IsZero() {
		return ts
	}
	return time.Now()
}

// convertValue converts an OpenTelemetry value to plain Go values.
func convertValue(v olog.Value) any {
	switch v.Kind() {
	case olog.KindEmpty:
		return nil
	case olog.KindBool:
		return v.AsBool()
	case olog.KindFloat64:
		return v.AsFloat64()
	case olog.KindInt64:
		return v.AsInt64()
	case olog.KindString:
		return v.AsString()
	case olog.KindBytes:
		return v.AsBytes()
	case olog.KindSlice:
		slice := v.AsSlice()
		result := make([]any, len(slice))
		for i, elem := range slice {
			result[i] = convertValue(elem)
		}
		return result
	case olog.KindMap:
		kvs := v.AsMap()
		result := make(map[string]any, len(kvs))
		for _, kv := range kvs {
			result[kv.Key] = convertValue(kv.Value)
		}
		return result
	default:
		return v.String()
	}
}

// LevelFromSeverity maps each OpenTelemetry severity range to the matching
// level. Undefined and out-of-range severities map to Information.
func LevelFromSeverity(severity olog.Severity) core.LogEventLevel {
	switch {
	case severity >= olog.SeverityTrace1 && severity <= olog.SeverityTrace4:
		return core.VerboseLevel
	case severity >= olog.SeverityDebug1 && severity <= olog.SeverityDebug4:
		return core.DebugLevel
	case severity >= olog.SeverityWarn1 && severity <= olog.SeverityWarn4:
		return core.WarningLevel
	case severity >= olog.SeverityError1 && severity <= olog.SeverityError4:
		return core.ErrorLevel
	case severity >= olog.SeverityFatal1 && severity <= olog.SeverityFatal4:
		return core.FatalLevel
	default:
		return core.InformationLevel
	}
}

// LoggerProvider hands out Bridges whose events carry the instrumentation
// scope name as their SourceContext.
type LoggerProvider struct {
	embedded.LoggerProvider

	logger core.Logger
	opts   []BridgeOption
}

var _ olog.LoggerProvider = (*LoggerProvider)(nil)

// NewLoggerProvider creates a provider backed by logger.
func NewLoggerProvider(logger core.Logger, opts ...BridgeOption) *LoggerProvider {
	return &LoggerProvider{logger: logger, opts: opts}
}

// Logger returns a Bridge for the named instrumentation scope.
func (p *LoggerProvider) Logger(name string, _ ...olog.LoggerOption) olog.Logger {
	logger := p.logger
	if name != "" {
		logger = logger.ForContext(core.SourceContextPropertyName, name, false)
	}
	return NewBridge(logger, p.opts...)
}

// SetAsGlobal installs the provider as the global OpenTelemetry logger provider.
func (p *LoggerProvider) SetAsGlobal() {
	global.SetLoggerProvider(p)
}
