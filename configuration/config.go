// Package configuration builds loggers from YAML files and environment
// variables.
//
// A configuration file looks like:
//
//	mtbridge:
//	  minimumLevel: Debug
//	  override:
//	    App.Db: Warning
//	  writeTo:
//	    - name: Console
//	    - name: RollingFile
//	      args:
//	        path: logs/app.log
//	        maxSizeMB: 50
//	  enrich: [MachineName, Process]
//	  properties:
//	    Application: billing
//
// Scalar settings can be overridden with MTBRIDGE_* environment variables,
// for example MTBRIDGE_MINIMUM_LEVEL=Verbose or MTBRIDGE_ASYNC_ENABLED=true.
package configuration

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"gopkg.in/yaml.v3"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/selflog"
)

// Configuration is the root configuration object.
type Configuration struct {
	MtBridge LoggerConfiguration `yaml:"mtbridge" env-prefix:"MTBRIDGE_"`
}

// LoggerConfiguration describes one logger.
type LoggerConfiguration struct {
	MinimumLevel  string                  `yaml:"minimumLevel" env:"MINIMUM_LEVEL" env-description:"minimum level of written events, Information when unset"`
	Override      map[string]string       `yaml:"override,omitempty" env:"OVERRIDE" env-description:"per source context minimum levels, as Context:Level pairs"`
	SourceContext string                  `yaml:"sourceContext,omitempty" env:"SOURCE_CONTEXT" env-description:"source context of events that have none"`
	SelfLog       string                  `yaml:"selfLog,omitempty" env:"SELFLOG" env-description:"stderr, stdout or a file path for diagnostics"`
	WriteTo       []SinkConfiguration     `yaml:"writeTo,omitempty"`
	Async         AsyncConfiguration      `yaml:"async,omitempty" env-prefix:"ASYNC_"`
	Enrich        []string                `yaml:"enrich,omitempty" env:"ENRICH" env-description:"enricher names"`
	EnrichWith    []EnricherConfiguration `yaml:"enrichWith,omitempty"`
	Properties    map[string]any          `yaml:"properties,omitempty"`
	Filter        []FilterConfiguration   `yaml:"filter,omitempty"`
}

// SinkConfiguration names a sink and its arguments.
type SinkConfiguration struct {
	Name string         `yaml:"name"`
	Args map[string]any `yaml:"args,omitempty"`
}

// EnricherConfiguration names an enricher and its arguments.
type EnricherConfiguration struct {
	Name string         `yaml:"name"`
	Args map[string]any `yaml:"args,omitempty"`
}

// FilterConfiguration names a filter and its arguments.
type FilterConfiguration struct {
	Name string         `yaml:"name"`
	Args map[string]any `yaml:"args,omitempty"`
}

// AsyncConfiguration moves sink writes to a background goroutine.
type AsyncConfiguration struct {
	Enabled          bool          `yaml:"enabled,omitempty" env:"ENABLED"`
	BufferSize       int           `yaml:"bufferSize,omitempty" env:"BUFFER_SIZE"`
	OverflowStrategy string        `yaml:"overflowStrategy,omitempty" env:"OVERFLOW_STRATEGY" env-description:"Block or Drop"`
	ShutdownTimeout  time.Duration `yaml:"shutdownTimeout,omitempty" env:"SHUTDOWN_TIMEOUT"`
}

// Load reads a YAML or JSON file and applies environment overrides. With an
// empty path only the environment is read.
func Load(path string) (*Configuration, error) {
	var cfg Configuration
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("read environment: %w", err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read configuration %s: %w", path, err)
	}
	return &cfg, nil
}

// LoadYAML parses YAML from r and applies environment overrides.
func LoadYAML(r io.Reader) (*Configuration, error) {
	var cfg Configuration
	if err := cleanenv.ParseYAML(r, &cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse YAML: %w", err)
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	return &cfg, nil
}

// LoadFromYAML parses YAML data and applies environment overrides.
func LoadFromYAML(data []byte) (*Configuration, error) {
	return LoadYAML(bytes.NewReader(data))
}

// Dump writes cfg as YAML.
func Dump(w io.Writer, cfg *Configuration) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	return enc.Close()
}

// Usage describes the environment variables understood by Load.
func Usage() string {
	header := "Environment variables:"
	text, err := cleanenv.GetDescription(&Configuration{}, &header)
	if err != nil {
		return header
	}
	return text
}

// ParseLevel parses a level name, reporting unknown names through selflog.
// Unknown names return Information with an error.
func ParseLevel(name string) (core.LogEventLevel, error) {
	level, err := core.ParseLevel(name)
	if err != nil && selflog.IsEnabled() {
		selflog.Printf("[configuration] unknown log level '%s', using Information", name)
	}
	return level, err
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	v, ok := args[key]
	if !ok {
		return defaultValue
	}
	if s, ok := v.(string); ok {
		return s
	}
	if selflog.IsEnabled() {
		selflog.Printf("[configuration] expected string for '%s', got %T", key, v)
	}
	return defaultValue
}

// GetInt gets an int value from configuration args. Numeric strings are parsed.
func GetInt(args map[string]any, key string, defaultValue int) int {
	v, ok := args[key]
	if !ok {
		return defaultValue
	}
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case uint64:
		return int(val)
	case float64:
		return int(val)
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return i
		}
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] failed to parse '%s' value '%s' as int", key, val)
		}
	default:
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] expected int for '%s', got %T", key, v)
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args. Strings accepted by
// strconv.ParseBool are parsed.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	v, ok := args[key]
	if !ok {
		return defaultValue
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(val)); err == nil {
			return b
		}
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] failed to parse '%s' value '%s' as bool", key, val)
		}
	default:
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] expected bool for '%s', got %T", key, v)
		}
	}
	return defaultValue
}

// GetDuration gets a duration value such as "100ms" or "5s" from configuration args.
func GetDuration(args map[string]any, key string, defaultValue time.Duration) time.Duration {
	s := GetString(args, key, "")
	if s == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[configuration] failed to parse '%s' value '%s' as duration", key, s)
		}
		return defaultValue
	}
	return d
}
