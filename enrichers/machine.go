package enrichers

import (
	"os"
	"sync"

	"github.com/willibrandon/mtbridge/core"
)

// MachineNameEnricher adds the host name to log events.
type MachineNameEnricher struct {
	propertyName string
	machineName  string
	once         sync.Once
}

// NewMachineNameEnricher creates a machine name enricher using the
// MachineName property.
func NewMachineNameEnricher() *MachineNameEnricher {
	return &MachineNameEnricher{propertyName: "MachineName"}
}

// Enrich adds the machine name to the log event.
func (me *MachineNameEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	me.once.Do(func() {
		hostname, err := os.Hostname()
		if err != nil {
			hostname = "unknown"
		}
		me.machineName = hostname
	})

	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(me.propertyName, me.machineName, false))
}
