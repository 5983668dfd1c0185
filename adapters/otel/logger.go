// Package otel connects mtbridge to the OpenTelemetry Logs API.
//
// NewFacade writes facade events to any go.opentelemetry.io/otel/log Logger,
// so library code logging through the facade reaches an OpenTelemetry
// pipeline. NewBridge and NewLoggerProvider go the other way and expose an
// mtbridge logger as an OpenTelemetry Logger. TraceEnricher adds the active
// span's identifiers to mtbridge events.
package otel

import (
	"cmp"
	"context"
	"fmt"
	"math"
	"reflect"
	"slices"
	"time"

	olog "go.opentelemetry.io/otel/log"

	"github.com/willibrandon/mtbridge/facade"
)

// Attribute keys added to every record written by FacadeLogger.
const (
	MessageTemplateKey  = "message.template"
	ExceptionTypeKey    = "exception.type"
	ExceptionMessageKey = "exception.message"
)

const maxValueDepth = 16

// FacadeLogger writes facade events as OpenTelemetry log records. The body is
// the rendered message; properties become attributes.
type FacadeLogger struct {
	logger  olog.Logger
	ctx     context.Context
	context facade.SourceContext
}

var _ facade.Logger = (*FacadeLogger)(nil)

// NewFacade returns a facade.Logger emitting to logger with a background
// context. Use WithContext to attach a request context.
func NewFacade(logger olog.Logger) *FacadeLogger {
	return &FacadeLogger{logger: logger, ctx: context.Background()}
}

// WithContext returns a logger emitting with ctx, which carries the active
// span to the OpenTelemetry SDK.
func (f *FacadeLogger) WithContext(ctx context.Context) *FacadeLogger {
	c := *f
	c.ctx = ctx
	return &c
}

// IsEnabledFor asks the underlying logger about the mapped severity.
func (f *FacadeLogger) IsEnabledFor(level facade.Level) bool {
	if !level.IsValid() {
		return false
	}
	return f.logger.Enabled(f.ctx, olog.EnabledParameters{Severity: Severity(level)})
}

// ForContext returns a logger adding name to the facade.ContextPropertyName
// attribute.
func (f *FacadeLogger) ForContext(name string) facade.Logger {
	next := f.context.Append(name)
	if next.Len() == f.context.Len() {
		return f
	}
	c := *f
	c.context = next
	return &c
}

// Log emits the event.
func (f *FacadeLogger) Log(event *facade.LogEvent) {
	if event == nil || !f.IsEnabledFor(event.Level()) {
		return
	}

	var record olog.Record
	record.SetTimestamp(event.Timestamp())
	record.SetObservedTimestamp(time.Now())
	record.SetSeverity(Severity(event.Level()))
	record.SetSeverityText(event.Level().String())
	record.SetBody(olog.StringValue(event.RenderMessage()))

	props := event.Properties()
	attrs := make([]olog.KeyValue, 0, len(props)+4)
	attrs = append(attrs, olog.String(MessageTemplateKey, event.MessageTemplate()))
	if _, ok := event.Property(facade.ContextPropertyName); !ok && f.context.Len() > 0 {
		attrs = append(attrs, olog.String(facade.ContextPropertyName, f.context.String()))
	}
	for _, p := range props {
		attrs = append(attrs, olog.KeyValue{Key: p.Name, Value: Value(p.Value)})
	}
	if err := event.Err(); err != nil {
		attrs = append(attrs,
			olog.String(ExceptionTypeKey, fmt.Sprintf("%T", err)),
			olog.String(ExceptionMessageKey, err.Error()),
		)
	}
	record.AddAttributes(attrs...)

	f.logger.Emit(f.ctx, record)
}

// Severity maps a facade level to the base OpenTelemetry severity of the
// same name. Invalid levels map to SeverityUndefined.
func Severity(level facade.Level) olog.Severity {
	switch level {
	case facade.Debug:
		return olog.SeverityDebug
	case facade.Info:
		return olog.SeverityInfo
	case facade.Warn:
		return olog.SeverityWarn
	case facade.Error:
		return olog.SeverityError
	case facade.Fatal:
		return olog.SeverityFatal
	default:
		return olog.SeverityUndefined
	}
}

// Value converts a Go value to an OpenTelemetry log value. Slices and maps
// convert element by element; map keys are formatted and sorted. Types
// without a log representation are formatted with fmt.
func Value(v any) olog.Value {
	return toValue(v, 0)
}

func toValue(v any, depth int) olog.Value {
	switch x := v.(type) {
	case nil:
		return olog.Value{}
	case olog.Value:
		return x
	case string:
		return olog.StringValue(x)
	case bool:
		return olog.BoolValue(x)
	case int:
		return olog.IntValue(x)
	case int8:
		return olog.Int64Value(int64(x))
	case int16:
		return olog.Int64Value(int64(x))
	case int32:
		return olog.Int64Value(int64(x))
	case int64:
		return olog.Int64Value(x)
	case uint8:
		return olog.Int64Value(int64(x))
	case uint16:
		return olog.Int64Value(int64(x))
	case uint32:
		return olog.Int64Value(int64(x))
	case uint:
		return uintValue(uint64(x))
	case uint64:
		return uintValue(x)
	case float32:
		return olog.Float64Value(float64(x))
	case float64:
		return olog.Float64Value(x)
	case []byte:
		return olog.BytesValue(x)
	case time.Time:
		return olog.StringValue(x.Format(time.RFC3339Nano))
	case time.Duration:
		return olog.StringValue(x.String())
	case error:
		return olog.StringValue(x.Error())
	case facade.SourceContext:
		return olog.StringValue(x.String())
	case fmt.Stringer:
		return olog.StringValue(x.String())
	}

	if depth >= maxValueDepth {
		return olog.StringValue(fmt.Sprintf("%T", v))
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		values := make([]olog.Value, rv.Len())
		for i := range values {
			values[i] = toValue(rv.Index(i).Interface(), depth+1)
		}
		return olog.SliceValue(values...)
	case reflect.Map:
		kvs := make([]olog.KeyValue, 0, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			kvs = append(kvs, olog.KeyValue{
				Key:   fmt.Sprint(iter.Key().Interface()),
				Value: toValue(iter.Value().Interface(), depth+1),
			})
		}
		slices.SortFunc(kvs, func(a, b olog.KeyValue) int { return cmp.Compare(a.Key, b.Key) })
		return olog.MapValue(kvs...)
	case reflect.Pointer:
		if rv.IsNil() {
			return olog.Value{}
		}
		return toValue(rv.Elem().Interface(), depth+1)
	default:
		return olog.StringValue(fmt.Sprint(v))
	}
}

func uintValue(u uint64) olog.Value {
	if u > math.MaxInt64 {
		return olog.StringValue(fmt.Sprint(u))
	}
	return olog.Int64Value(int64(u))
}
