package mtbridge

import (
	"io"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/enrichers"
	"github.com/willibrandon/mtbridge/filters"
	"github.com/willibrandon/mtbridge/sinks"
)

// WithConsole adds a console sink writing text to stdout.
func WithConsole() Option {
	return WithSink(sinks.NewConsoleSink())
}

// WithCLEF adds a sink writing newline-delimited CLEF JSON to w.
func WithCLEF(w io.Writer) Option {
	return WithSink(sinks.NewCLEFSink(w))
}

// WithRollingFile adds a size-rolled file sink.
func WithRollingFile(options sinks.RollingFileOptions) Option {
	return func(c *config) {
		sink, err := sinks.NewRollingFileSink(options)
		if err != nil {
			c.fail(err)
			return
		}
		c.sinks = append(c.sinks, sink)
	}
}

// WithAsync wraps the sinks added so far in a single background writer.
func WithAsync(options sinks.AsyncOptions) Option {
	return func(c *config) {
		if len(c.sinks) == 0 {
			return
		}
		c.sinks = []core.LogEventSink{sinks.NewAsyncSink(fanout(c.sinks), options)}
	}
}

// WithSourceContext sets the source context of events that do not carry one.
func WithSourceContext(sourceContext string) Option {
	return WithEnricher(enrichers.NewSourceContextEnricher(sourceContext))
}

// WithCorrelationID adds a CorrelationId property. An empty id generates a UUID.
func WithCorrelationID(correlationID string) Option {
	return WithEnricher(enrichers.NewCorrelationIDEnricher(correlationID))
}

// WithMachineName adds a MachineName property.
func WithMachineName() Option {
	return WithEnricher(enrichers.NewMachineNameEnricher())
}

// WithProcess adds ProcessId and ProcessName properties.
func WithProcess() Option {
	return WithEnricher(enrichers.NewProcessEnricher())
}

// WithEnvironment adds the value of an environment variable as a property.
func WithEnvironment(variableName, propertyName string) Option {
	return WithEnricher(enrichers.NewEnvironmentEnricher(variableName, propertyName))
}

// WithMinimumLevelOverrides applies per-source-context minimum levels on top
// of defaultLevel. The logger's own minimum is lowered to the smallest level
// involved so the filter can decide.
func WithMinimumLevelOverrides(defaultLevel core.LogEventLevel, overrides map[string]core.LogEventLevel) Option {
	return func(c *config) {
		lowest := defaultLevel
		for _, level := range overrides {
			if level < lowest {
				lowest = level
			}
		}
		c.minimumLevel = lowest
		c.filters = append(c.filters, filters.NewSourceContextLevelFilter(defaultLevel, overrides))
	}
}

// Debug sets the minimum level to Debug.
func Debug() Option {
	return WithMinimumLevel(core.DebugLevel)
}

// Verbose sets the minimum level to Verbose.
func Verbose() Option {
	return WithMinimumLevel(core.VerboseLevel)
}

// fanout emits to several sinks as one.
type fanout []core.LogEventSink

func (f fanout) Emit(event *core.LogEvent) {
	for _, sink := range f {
		emit(sink, event)
	}
}

func (f fanout) Close() error {
	return newPipeline(nil, nil, f).close()
}
