package mtbridge

import (
	"errors"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/selflog"
)

// pipeline is the immutable processing chain shared by a logger and the
// loggers derived from it with ForContext.
type pipeline struct {
	enrichers []core.LogEventEnricher
	filters   []core.LogEventFilter
	sinks     []core.LogEventSink
}

func newPipeline(enrichers []core.LogEventEnricher, filters []core.LogEventFilter, sinks []core.LogEventSink) *pipeline {
	return &pipeline{
		enrichers: enrichers,
		filters:   filters,
		sinks:     sinks,
	}
}

// process enriches the event, applies filters and emits it to every sink.
func (p *pipeline) process(event *core.LogEvent, factory core.LogEventPropertyFactory) {
	for _, enricher := range p.enrichers {
		enricher.Enrich(event, factory)
	}

	for _, filter := range p.filters {
		if !filter.IsEnabled(event) {
			return
		}
	}

	for _, sink := range p.sinks {
		emit(sink, event)
	}
}

// emit isolates sinks from each other: a panicking sink is reported and the
// remaining sinks still receive the event.
func emit(sink core.LogEventSink, event *core.LogEvent) {
	defer func() {
		if r := recover(); r != nil && selflog.IsEnabled() {
			selflog.Printf("[pipeline] sink %T panicked: %v", sink, r)
		}
	}()
	sink.Emit(event)
}

func (p *pipeline) close() error {
	var errs []error
	for _, sink := range p.sinks {
		if err := sink.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
