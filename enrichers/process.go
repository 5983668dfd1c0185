package enrichers

import (
	"os"
	"path/filepath"

	"github.com/willibrandon/mtbridge/core"
)

// ProcessEnricher adds ProcessId and ProcessName to log events.
type ProcessEnricher struct {
	processID   int
	processName string
}

// NewProcessEnricher creates a process enricher for the current process.
func NewProcessEnricher() *ProcessEnricher {
	return &ProcessEnricher{
		processID:   os.Getpid(),
		processName: filepath.Base(os.Args[0]),
	}
}

// Enrich adds process information to the log event.
func (pe *ProcessEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty("ProcessId", pe.processID, false))
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty("ProcessName", pe.processName, false))
}
