package configuration

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"path/filepath"

	"github.com/willibrandon/mtbridge"
)

// CreateLoggerFromFile creates a logger from a YAML or JSON configuration file.
func CreateLoggerFromFile(path string) (*mtbridge.Logger, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return NewLoggerBuilder().Build(cfg)
}

// CreateLoggerFromYAML creates a logger from YAML configuration data.
func CreateLoggerFromYAML(data []byte) (*mtbridge.Logger, error) {
	cfg, err := LoadFromYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	return NewLoggerBuilder().Build(cfg)
}

// LoadForEnvironment loads mtbridge.yaml from dir and merges
// mtbridge.{environment}.yaml over it. Missing files are skipped.
func LoadForEnvironment(dir, environment string) (*Configuration, error) {
	base, err := loadOptional(filepath.Join(dir, "mtbridge.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to load base configuration: %w", err)
	}
	if base == nil {
		if base, err = Load(""); err != nil {
			return nil, err
		}
	}

	if environment != "" {
		env, err := loadOptional(filepath.Join(dir, "mtbridge."+environment+".yaml"))
		if err != nil {
			return nil, fmt.Errorf("failed to load environment configuration: %w", err)
		}
		if env != nil {
			mergeConfiguration(base, env)
		}
	}
	return base, nil
}

// CreateLoggerFromEnvironment builds a logger from LoadForEnvironment.
func CreateLoggerFromEnvironment(dir, environment string) (*mtbridge.Logger, error) {
	cfg, err := LoadForEnvironment(dir, environment)
	if err != nil {
		return nil, err
	}
	return NewLoggerBuilder().Build(cfg)
}

func loadOptional(path string) (*Configuration, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return cfg, err
}

// mergeConfiguration merges source into target. Scalars and sinks are
// replaced when set, lists are appended and maps are merged.
func mergeConfiguration(target, source *Configuration) {
	t, s := &target.MtBridge, &source.MtBridge

	if s.MinimumLevel != "" {
		t.MinimumLevel = s.MinimumLevel
	}
	if s.SourceContext != "" {
		t.SourceContext = s.SourceContext
	}
	if s.SelfLog != "" {
		t.SelfLog = s.SelfLog
	}
	if len(s.WriteTo) > 0 {
		t.WriteTo = s.WriteTo
	}
	if s.Async.Enabled {
		t.Async = s.Async
	}

	t.Enrich = append(t.Enrich, s.Enrich...)
	t.EnrichWith = append(t.EnrichWith, s.EnrichWith...)
	t.Filter = append(t.Filter, s.Filter...)

	if len(s.Override) > 0 {
		if t.Override == nil {
			t.Override = make(map[string]string, len(s.Override))
		}
		maps.Copy(t.Override, s.Override)
	}
	if len(s.Properties) > 0 {
		if t.Properties == nil {
			t.Properties = make(map[string]any, len(s.Properties))
		}
		maps.Copy(t.Properties, s.Properties)
	}
}
