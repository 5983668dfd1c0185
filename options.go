package mtbridge

import (
	"sort"

	"github.com/willibrandon/mtbridge/core"
)

// config holds the configuration for building a logger.
type config struct {
	minimumLevel core.LogEventLevel
	levelSwitch  *LoggingLevelSwitch
	enrichers    []core.LogEventEnricher
	filters      []core.LogEventFilter
	capturer     core.Capturer
	sinks        []core.LogEventSink
	properties   []contextProperty
	err          error // first error encountered while applying options
}

type contextProperty struct {
	name        string
	value       any
	destructure bool
}

// Option is a functional option for configuring a logger.
type Option func(*config)

func (c *config) fail(err error) {
	if c.err == nil {
		c.err = err
	}
}

// WithMinimumLevel sets the minimum log level. Defaults to Information.
func WithMinimumLevel(level core.LogEventLevel) Option {
	return func(c *config) {
		c.minimumLevel = level
	}
}

// WithLevelSwitch enables dynamic level control. When a level switch is
// provided it takes precedence over the static minimum level.
func WithLevelSwitch(levelSwitch *LoggingLevelSwitch) Option {
	return func(c *config) {
		c.levelSwitch = levelSwitch
	}
}

// WithEnricher adds an enricher to the pipeline.
func WithEnricher(enricher core.LogEventEnricher) Option {
	return func(c *config) {
		c.enrichers = append(c.enrichers, enricher)
	}
}

// WithFilter adds a filter to the pipeline.
func WithFilter(filter core.LogEventFilter) Option {
	return func(c *config) {
		c.filters = append(c.filters, filter)
	}
}

// WithCapturer replaces the capturer used to convert arguments into property values.
func WithCapturer(capturer core.Capturer) Option {
	return func(c *config) {
		c.capturer = capturer
	}
}

// WithSink adds a sink to the pipeline.
func WithSink(sink core.LogEventSink) Option {
	return func(c *config) {
		c.sinks = append(c.sinks, sink)
	}
}

// WithProperty adds a property to every event written by the logger.
func WithProperty(name string, value any) Option {
	return func(c *config) {
		c.properties = append(c.properties, contextProperty{name: name, value: value})
	}
}

// WithProperties adds several properties, in name order.
func WithProperties(properties map[string]any) Option {
	return func(c *config) {
		names := make([]string, 0, len(properties))
		for name := range properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			c.properties = append(c.properties, contextProperty{name: name, value: properties[name]})
		}
	}
}

// WithDestructuredProperty adds a property captured field by field.
func WithDestructuredProperty(name string, value any) Option {
	return func(c *config) {
		c.properties = append(c.properties, contextProperty{name: name, value: value, destructure: true})
	}
}
