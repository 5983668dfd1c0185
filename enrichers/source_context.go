package enrichers

import "github.com/willibrandon/mtbridge/core"

// SourceContextEnricher adds a fixed source context to events that do not
// already carry one.
type SourceContextEnricher struct {
	sourceContext string
}

// NewSourceContextEnricher creates an enricher that adds the specified source context.
func NewSourceContextEnricher(sourceContext string) *SourceContextEnricher {
	return &SourceContextEnricher{sourceContext: sourceContext}
}

// Enrich adds the source context to the log event.
func (e *SourceContextEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	if e.sourceContext == "" {
		return
	}
	if _, exists := event.Property(core.SourceContextPropertyName); exists {
		return
	}
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(core.SourceContextPropertyName, e.sourceContext, false))
}
