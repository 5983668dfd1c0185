package otel

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"github.com/willibrandon/mtbridge/core"
)

// TraceFlagsPropertyName is added by TraceEnricher alongside trace.id and span.id.
const TraceFlagsPropertyName = "trace.flags"

// TraceEnricher adds the identifiers of the span active in a context. The
// span context is read once, on first use.
type TraceEnricher struct {
	ctx  context.Context
	once sync.Once
	span trace.SpanContext
}

var _ core.LogEventEnricher = (*TraceEnricher)(nil)

// NewTraceEnricher creates an enricher for ctx.
func NewTraceEnricher(ctx context.Context) *TraceEnricher {
	return &TraceEnricher{ctx: ctx}
}

// Enrich adds trace.id, span.id and trace.flags when the span context is valid.
func (e *TraceEnricher) Enrich(event *core.LogEvent, factory core.LogEventPropertyFactory) {
	e.once.Do(func() {
		if e.ctx != nil {
			e.span = trace.SpanContextFromContext(e.ctx)
		}
	})
	if !e.span.IsValid() {
		return
	}
	event.AddPropertyIfAbsent(factory.CreateProperty(TraceIDPropertyName, e.span.TraceID().String(), false))
	event.AddPropertyIfAbsent(factory.CreateProperty(SpanIDPropertyName, e.span.SpanID().String(), false))
	event.AddPropertyIfAbsent(factory.CreateProperty(TraceFlagsPropertyName, e.span.TraceFlags().String(), false))
}
