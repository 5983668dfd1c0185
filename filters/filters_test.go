package filters

import (
	"testing"
	"time"

	"github.com/willibrandon/mtbridge/core"
)

func eventWithContext(level core.LogEventLevel, ctx core.LogEventPropertyValue) *core.LogEvent {
	event := core.NewLogEvent(time.Now(), level, nil, nil, nil)
	if ctx != nil {
		event.AddOrUpdateProperty(core.NewLogEventProperty(core.SourceContextPropertyName, ctx))
	}
	return event
}

func TestLevelFilter(t *testing.T) {
	f := NewLevelFilter(core.WarningLevel)
	if f.IsEnabled(eventWithContext(core.InformationLevel, nil)) {
		t.Error("information should be filtered")
	}
	if !f.IsEnabled(eventWithContext(core.ErrorLevel, nil)) {
		t.Error("error should pass")
	}
}

func TestSourceContextLevelFilter(t *testing.T) {
	f := NewSourceContextLevelFilter(core.InformationLevel, map[string]core.LogEventLevel{
		"App.Db":      core.WarningLevel,
		"App.Db.Pool": core.ErrorLevel,
		"Noisy":       core.FatalLevel,
	})

	tests := []struct {
		name  string
		level core.LogEventLevel
		ctx   core.LogEventPropertyValue
		want  bool
	}{
		{"no context uses default", core.InformationLevel, nil, true},
		{"exact match", core.InformationLevel, core.NewScalar("App.Db"), false},
		{"child of override", core.WarningLevel, core.NewScalar("App.Db.Query"), true},
		{"most specific wins", core.WarningLevel, core.NewScalar("App.Db.Pool"), false},
		{"segment boundary", core.InformationLevel, core.NewScalar("App.Dbx"), true},
		{"sequence context", core.WarningLevel,
			core.NewSequence(core.NewScalar("App"), core.NewScalar("Db"), core.NewScalar("Pool")), false},
		{"unrelated", core.DebugLevel, core.NewScalar("Web"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IsEnabled(eventWithContext(tt.level, tt.ctx)); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSourceContextLevelFilterCopiesOverrides(t *testing.T) {
	overrides := map[string]core.LogEventLevel{"A": core.ErrorLevel}
	f := NewSourceContextLevelFilter(core.InformationLevel, overrides)
	overrides["A"] = core.VerboseLevel

	if f.MinimumLevel("A") != core.ErrorLevel {
		t.Error("filter should not observe changes to the caller's map")
	}
}

func TestPredicateCombinators(t *testing.T) {
	isError := func(e *core.LogEvent) bool { return e.Level >= core.ErrorLevel }
	hasContext := func(e *core.LogEvent) bool { _, ok := e.SourceContext(); return ok }

	plain := eventWithContext(core.ErrorLevel, nil)
	scoped := eventWithContext(core.InformationLevel, core.NewScalar("A"))

	if ByExcluding(isError).IsEnabled(plain) {
		t.Error("ByExcluding should drop matching events")
	}
	if !ByIncluding(isError).IsEnabled(plain) {
		t.Error("ByIncluding should keep matching events")
	}
	if All(ByIncluding(isError), ByIncluding(hasContext)).IsEnabled(plain) {
		t.Error("All should require every filter")
	}
	if !Any(ByIncluding(isError), ByIncluding(hasContext)).IsEnabled(scoped) {
		t.Error("Any should accept one passing filter")
	}
	if !NewPredicateFilter(nil).IsEnabled(plain) {
		t.Error("nil predicate should pass")
	}
}
