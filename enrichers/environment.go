package enrichers

import (
	"os"

	"github.com/willibrandon/mtbridge/core"
)

// EnvironmentEnricher adds the value of an environment variable, read once
// at construction.
type EnvironmentEnricher struct {
	propertyName string
	value        string
}

// NewEnvironmentEnricher creates an enricher for variableName. Nothing is
// added when the variable is unset or empty.
func NewEnvironmentEnricher(variableName, propertyName string) *EnvironmentEnricher {
	return &EnvironmentEnricher{
		propertyName: propertyName,
		value:        os.Getenv(variableName),
	}
}

// Enrich adds the environment variable value to the log event.
func (e *EnvironmentEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	if e.value == "" {
		return
	}
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(e.propertyName, e.value, false))
}
