package enrichers

import (
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willibrandon/mtbridge/core"
)

type scalarFactory struct{}

func (scalarFactory) CreateProperty(name string, value any, _ bool) *core.LogEventProperty {
	return core.NewLogEventProperty(name, core.NewScalar(value))
}

func newEvent() *core.LogEvent {
	return core.NewLogEvent(time.Now(), core.InformationLevel, nil, nil, nil)
}

func scalar(t *testing.T, event *core.LogEvent, name string) any {
	t.Helper()
	v, ok := event.Property(name)
	require.True(t, ok, "property %s missing", name)
	return v.(core.ScalarValue).Value
}

func TestSourceContextEnricher(t *testing.T) {
	event := newEvent()
	NewSourceContextEnricher("App.Orders").Enrich(event, scalarFactory{})
	assert.Equal(t, "App.Orders", scalar(t, event, core.SourceContextPropertyName))

	NewSourceContextEnricher("Other").Enrich(event, scalarFactory{})
	assert.Equal(t, "App.Orders", scalar(t, event, core.SourceContextPropertyName), "existing context is kept")

	empty := newEvent()
	NewSourceContextEnricher("").Enrich(empty, scalarFactory{})
	_, ok := empty.Property(core.SourceContextPropertyName)
	assert.False(t, ok)
}

func TestCorrelationIDEnricher(t *testing.T) {
	fixed := NewCorrelationIDEnricher("req-1")
	event := newEvent()
	fixed.Enrich(event, scalarFactory{})
	assert.Equal(t, "req-1", scalar(t, event, CorrelationIDPropertyName))

	generated := NewCorrelationIDEnricher("")
	_, err := uuid.Parse(generated.CorrelationID())
	assert.NoError(t, err, "generated id should be a UUID")
	assert.NotEqual(t, generated.CorrelationID(), NewCorrelationIDEnricher("").CorrelationID())
}

func TestMachineNameEnricher(t *testing.T) {
	event := newEvent()
	NewMachineNameEnricher().Enrich(event, scalarFactory{})
	assert.NotEmpty(t, scalar(t, event, "MachineName"))
}

func TestProcessEnricher(t *testing.T) {
	event := newEvent()
	NewProcessEnricher().Enrich(event, scalarFactory{})
	assert.Equal(t, os.Getpid(), scalar(t, event, "ProcessId"))
	assert.NotEmpty(t, scalar(t, event, "ProcessName"))
}

func TestEnvironmentEnricher(t *testing.T) {
	t.Setenv("MTBRIDGE_TEST_REGION", "eu-west-1")

	event := newEvent()
	NewEnvironmentEnricher("MTBRIDGE_TEST_REGION", "Region").Enrich(event, scalarFactory{})
	assert.Equal(t, "eu-west-1", scalar(t, event, "Region"))

	unset := newEvent()
	NewEnvironmentEnricher("MTBRIDGE_TEST_UNSET", "Missing").Enrich(unset, scalarFactory{})
	assert.Empty(t, unset.Properties)
}
