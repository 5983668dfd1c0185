package enrichers

import (
	"github.com/google/uuid"

	"github.com/willibrandon/mtbridge/core"
)

// CorrelationIDPropertyName is the property added by CorrelationIDEnricher.
const CorrelationIDPropertyName = "CorrelationId"

// CorrelationIDEnricher adds a correlation ID to all log events.
type CorrelationIDEnricher struct {
	correlationID string
}

// NewCorrelationIDEnricher creates an enricher with a specific correlation ID.
// An empty id generates a random UUID.
func NewCorrelationIDEnricher(correlationID string) *CorrelationIDEnricher {
	if correlationID == "" {
		correlationID = uuid.NewString()
	}
	return &CorrelationIDEnricher{correlationID: correlationID}
}

// CorrelationID returns the ID added to events.
func (c *CorrelationIDEnricher) CorrelationID() string {
	return c.correlationID
}

// Enrich adds the correlation ID unless the event already has one.
func (c *CorrelationIDEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(CorrelationIDPropertyName, c.correlationID, false))
}
