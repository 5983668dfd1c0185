package bridge_test

import (
	"sync"
	"sync/atomic"

	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/facade"
	"github.com/willibrandon/mtbridge/parser"
)

// recordingLogger is a facade.Logger that keeps every event it receives.
type recordingLogger struct {
	mu      sync.Mutex
	minimum facade.Level
	events  []*facade.LogEvent
}

func (r *recordingLogger) Log(event *facade.LogEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingLogger) IsEnabledFor(level facade.Level) bool {
	return level.IsValid() && level >= r.minimum
}

func (r *recordingLogger) ForContext(string) facade.Logger { return r }

func (r *recordingLogger) Events() []*facade.LogEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*facade.LogEvent(nil), r.events...)
}

// countingObserver tallies observer callbacks.
type countingObserver struct {
	forwarded, skipped, templateFailed, dropped atomic.Int64
}

func (o *countingObserver) Forwarded(bridge.Direction)       { o.forwarded.Add(1) }
func (o *countingObserver) SkippedDisabled(bridge.Direction) { o.skipped.Add(1) }
func (o *countingObserver) TemplateBindFailed()              { o.templateFailed.Add(1) }
func (o *countingObserver) PropertyDropped(string)           { o.dropped.Add(1) }

// spyLogger is a core.Logger that records which capabilities were used.
type spyLogger struct {
	enabled     bool
	bindCalls   atomic.Int64
	writeCalls  atomic.Int64
	failBinding bool
}

var _ core.Logger = (*spyLogger)(nil)

func (s *spyLogger) Verbose(string, ...any)                   {}
func (s *spyLogger) Debug(string, ...any)                     {}
func (s *spyLogger) Information(string, ...any)               {}
func (s *spyLogger) Warning(string, ...any)                   {}
func (s *spyLogger) Error(string, ...any)                     {}
func (s *spyLogger) Fatal(string, ...any)                     {}
func (s *spyLogger) Write(core.LogEventLevel, string, ...any) {}
func (s *spyLogger) WriteEvent(*core.LogEvent)                { s.writeCalls.Add(1) }
func (s *spyLogger) IsEnabled(core.LogEventLevel) bool        { return s.enabled }
func (s *spyLogger) ForContext(string, any, bool) core.Logger { return s }

func (s *spyLogger) BindMessageTemplate(string, []any) (*parser.MessageTemplate, []*core.LogEventProperty, bool) {
	s.bindCalls.Add(1)
	if s.failBinding {
		return nil, nil, false
	}
	return parser.Empty(), nil, true
}

func (s *spyLogger) BindProperty(name string, value any, _ bool) (*core.LogEventProperty, bool) {
	s.bindCalls.Add(1)
	return core.NewLogEventProperty(name, core.NewScalar(value)), true
}
