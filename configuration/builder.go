package configuration

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/willibrandon/mtbridge"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/enrichers"
	"github.com/willibrandon/mtbridge/filters"
	"github.com/willibrandon/mtbridge/formatters"
	"github.com/willibrandon/mtbridge/selflog"
	"github.com/willibrandon/mtbridge/sinks"
)

// ErrUnknownComponent is returned for sink, enricher or filter names that
// have no registered factory.
var ErrUnknownComponent = errors.New("unknown component")

// SinkFactory creates a sink from configuration.
type SinkFactory func(args map[string]any) (core.LogEventSink, error)

// EnricherFactory creates an enricher from configuration.
type EnricherFactory func(args map[string]any) (core.LogEventEnricher, error)

// FilterFactory creates a filter from configuration.
type FilterFactory func(args map[string]any) (core.LogEventFilter, error)

// LoggerBuilder builds loggers from configuration using named factories.
type LoggerBuilder struct {
	sinkFactories     map[string]SinkFactory
	enricherFactories map[string]EnricherFactory
	filterFactories   map[string]FilterFactory
}

// NewLoggerBuilder creates a builder with the built-in factories registered.
func NewLoggerBuilder() *LoggerBuilder {
	lb := &LoggerBuilder{
		sinkFactories:     make(map[string]SinkFactory),
		enricherFactories: make(map[string]EnricherFactory),
		filterFactories:   make(map[string]FilterFactory),
	}

	lb.RegisterSink("Console", createConsoleSink)
	lb.RegisterSink("CLEF", createCLEFSink)
	lb.RegisterSink("File", createFileSink)
	lb.RegisterSink("RollingFile", createRollingFileSink)

	lb.RegisterEnricher("MachineName", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewMachineNameEnricher(), nil
	})
	lb.RegisterEnricher("Process", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewProcessEnricher(), nil
	})
	lb.RegisterEnricher("CorrelationId", func(args map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewCorrelationIDEnricher(GetString(args, "id", "")), nil
	})
	lb.RegisterEnricher("Environment", func(args map[string]any) (core.LogEventEnricher, error) {
		variable := GetString(args, "variable", "")
		if variable == "" {
			return nil, errors.New("environment enricher requires 'variable'")
		}
		return enrichers.NewEnvironmentEnricher(variable, GetString(args, "property", variable)), nil
	})

	lb.RegisterFilter("ByLevel", func(args map[string]any) (core.LogEventFilter, error) {
		level, err := ParseLevel(GetString(args, "minimumLevel", "Information"))
		if err != nil {
			return nil, err
		}
		return filters.NewLevelFilter(level), nil
	})
	lb.RegisterFilter("ExcludeSourceContext", func(args map[string]any) (core.LogEventFilter, error) {
		prefix := GetString(args, "prefix", "")
		if prefix == "" {
			return nil, errors.New("ExcludeSourceContext filter requires 'prefix'")
		}
		return filters.ByExcluding(func(e *core.LogEvent) bool {
			ctx, ok := e.SourceContext()
			return ok && (ctx == prefix || strings.HasPrefix(ctx, prefix+"."))
		}), nil
	})

	return lb
}

// RegisterSink registers a sink factory.
func (lb *LoggerBuilder) RegisterSink(name string, factory SinkFactory) {
	lb.sinkFactories[name] = factory
}

// RegisterEnricher registers an enricher factory.
func (lb *LoggerBuilder) RegisterEnricher(name string, factory EnricherFactory) {
	lb.enricherFactories[name] = factory
}

// RegisterFilter registers a filter factory.
func (lb *LoggerBuilder) RegisterFilter(name string, factory FilterFactory) {
	lb.filterFactories[name] = factory
}

// Build creates a logger from configuration. extra options are applied
// after the configured ones.
func (lb *LoggerBuilder) Build(cfg *Configuration, extra ...mtbridge.Option) (*mtbridge.Logger, error) {
	options, err := lb.Options(cfg)
	if err != nil {
		return nil, err
	}
	return mtbridge.Build(append(options, extra...)...)
}

// Options translates configuration into logger options.
func (lb *LoggerBuilder) Options(cfg *Configuration) ([]mtbridge.Option, error) {
	c := cfg.MtBridge
	var options []mtbridge.Option

	if c.SelfLog != "" {
		if err := selflog.EnableFromEnv(c.SelfLog); err != nil {
			return nil, fmt.Errorf("selflog: %w", err)
		}
	}

	minimum := core.InformationLevel
	if c.MinimumLevel != "" {
		level, err := ParseLevel(c.MinimumLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum level: %w", err)
		}
		minimum = level
	}
	if len(c.Override) > 0 {
		overrides := make(map[string]core.LogEventLevel, len(c.Override))
		for ctx, name := range c.Override {
			level, err := ParseLevel(name)
			if err != nil {
				return nil, fmt.Errorf("invalid override for %s: %w", ctx, err)
			}
			overrides[ctx] = level
		}
		options = append(options, mtbridge.WithMinimumLevelOverrides(minimum, overrides))
	} else {
		options = append(options, mtbridge.WithMinimumLevel(minimum))
	}

	for _, sc := range c.WriteTo {
		sink, err := lb.createSink(sc)
		if err != nil {
			return nil, fmt.Errorf("failed to create sink %s: %w", sc.Name, err)
		}
		options = append(options, mtbridge.WithSink(sink))
	}
	if c.Async.Enabled {
		async, err := asyncOptions(c.Async)
		if err != nil {
			return nil, err
		}
		options = append(options, mtbridge.WithAsync(async))
	}

	if c.SourceContext != "" {
		options = append(options, mtbridge.WithSourceContext(c.SourceContext))
	}
	for _, name := range c.Enrich {
		enricher, err := lb.createEnricher(EnricherConfiguration{Name: strings.TrimSpace(name)})
		if err != nil {
			return nil, fmt.Errorf("failed to create enricher %s: %w", name, err)
		}
		options = append(options, mtbridge.WithEnricher(enricher))
	}
	for _, ec := range c.EnrichWith {
		enricher, err := lb.createEnricher(ec)
		if err != nil {
			return nil, fmt.Errorf("failed to create enricher %s: %w", ec.Name, err)
		}
		options = append(options, mtbridge.WithEnricher(enricher))
	}

	if len(c.Properties) > 0 {
		options = append(options, mtbridge.WithProperties(maps.Clone(c.Properties)))
	}

	for _, fc := range c.Filter {
		filter, err := lb.createFilter(fc)
		if err != nil {
			return nil, fmt.Errorf("failed to create filter %s: %w", fc.Name, err)
		}
		options = append(options, mtbridge.WithFilter(filter))
	}

	return options, nil
}

// Names returns the registered sink, enricher and filter names, sorted.
func (lb *LoggerBuilder) Names() (sinkNames, enricherNames, filterNames []string) {
	return slices.Sorted(maps.Keys(lb.sinkFactories)),
		slices.Sorted(maps.Keys(lb.enricherFactories)),
		slices.Sorted(maps.Keys(lb.filterFactories))
}

func (lb *LoggerBuilder) createSink(cfg SinkConfiguration) (core.LogEventSink, error) {
	factory, ok := lb.sinkFactories[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w: sink %q", ErrUnknownComponent, cfg.Name)
	}
	return factory(cfg.Args)
}

func (lb *LoggerBuilder) createEnricher(cfg EnricherConfiguration) (core.LogEventEnricher, error) {
	factory, ok := lb.enricherFactories[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w: enricher %q", ErrUnknownComponent, cfg.Name)
	}
	return factory(cfg.Args)
}

func (lb *LoggerBuilder) createFilter(cfg FilterConfiguration) (core.LogEventFilter, error) {
	factory, ok := lb.filterFactories[cfg.Name]
	if !ok {
		return nil, fmt.Errorf("%w: filter %q", ErrUnknownComponent, cfg.Name)
	}
	return factory(cfg.Args)
}

func asyncOptions(cfg AsyncConfiguration) (sinks.AsyncOptions, error) {
	opts := sinks.AsyncOptions{
		BufferSize:      cfg.BufferSize,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}
	switch strings.ToLower(cfg.OverflowStrategy) {
	case "", "block":
		opts.OverflowStrategy = sinks.OverflowBlock
	case "drop":
		opts.OverflowStrategy = sinks.OverflowDrop
	default:
		return opts, fmt.Errorf("invalid async overflow strategy %q", cfg.OverflowStrategy)
	}
	return opts, nil
}

func formatter(args map[string]any, defaultFormat string) (formatters.Formatter, error) {
	switch format := strings.ToLower(GetString(args, "format", defaultFormat)); format {
	case "text":
		return formatters.NewTextFormatter(), nil
	case "clef", "json":
		return formatters.NewCLEFFormatter(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func createConsoleSink(args map[string]any) (core.LogEventSink, error) {
	switch output := GetString(args, "output", "stdout"); output {
	case "stdout":
		return sinks.NewConsoleSink(), nil
	case "stderr":
		return sinks.NewConsoleSinkWithWriter(os.Stderr), nil
	default:
		return nil, fmt.Errorf("console output must be stdout or stderr, got %q", output)
	}
}

func createCLEFSink(args map[string]any) (core.LogEventSink, error) {
	switch path := GetString(args, "path", "stdout"); path {
	case "stdout":
		return sinks.NewCLEFSink(os.Stdout), nil
	case "stderr":
		return sinks.NewCLEFSink(os.Stderr), nil
	default:
		return sinks.NewFileSink(path, formatters.NewCLEFFormatter())
	}
}

func createFileSink(args map[string]any) (core.LogEventSink, error) {
	path := GetString(args, "path", "")
	if path == "" {
		return nil, errors.New("file sink requires 'path'")
	}
	f, err := formatter(args, "text")
	if err != nil {
		return nil, err
	}
	return sinks.NewFileSink(path, f)
}

func createRollingFileSink(args map[string]any) (core.LogEventSink, error) {
	f, err := formatter(args, "clef")
	if err != nil {
		return nil, err
	}
	return sinks.NewRollingFileSink(sinks.RollingFileOptions{
		FilePath:   GetString(args, "path", ""),
		MaxSizeMB:  GetInt(args, "maxSizeMB", 0),
		MaxBackups: GetInt(args, "maxBackups", 0),
		MaxAgeDays: GetInt(args, "maxAgeDays", 0),
		Compress:   GetBool(args, "compress", false),
		Formatter:  f,
	})
}
