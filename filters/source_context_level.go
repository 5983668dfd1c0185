package filters

import (
	"maps"
	"strings"

	"github.com/willibrandon/mtbridge/core"
)

// SourceContextLevelFilter applies per-context minimum levels. The most
// specific override wins: "App.Db" matches "App.Db" and "App.Db.Pool" but not
// "App.Dbx".
type SourceContextLevelFilter struct {
	defaultLevel core.LogEventLevel
	overrides    map[string]core.LogEventLevel
}

// NewSourceContextLevelFilter creates a filter with source context level
// overrides. The overrides map is copied.
func NewSourceContextLevelFilter(defaultLevel core.LogEventLevel, overrides map[string]core.LogEventLevel) *SourceContextLevelFilter {
	return &SourceContextLevelFilter{
		defaultLevel: defaultLevel,
		overrides:    maps.Clone(overrides),
	}
}

// IsEnabled reports whether the event meets the minimum level for its source context.
func (f *SourceContextLevelFilter) IsEnabled(event *core.LogEvent) bool {
	sourceContext, ok := event.SourceContext()
	if !ok {
		return event.Level >= f.defaultLevel
	}
	return event.Level >= f.MinimumLevel(sourceContext)
}

// MinimumLevel returns the effective minimum level for a dotted source context.
func (f *SourceContextLevelFilter) MinimumLevel(sourceContext string) core.LogEventLevel {
	if level, ok := f.overrides[sourceContext]; ok {
		return level
	}

	var longest string
	level := f.defaultLevel
	for prefix, l := range f.overrides {
		if len(prefix) > len(longest) && strings.HasPrefix(sourceContext, prefix+".") {
			longest = prefix
			level = l
		}
	}
	return level
}
