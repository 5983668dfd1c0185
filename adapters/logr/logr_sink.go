package logr

import (
	"fmt"
	"slices"
	"time"

	"github.com/go-logr/logr"
	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/parser"
	"github.com/willibrandon/mtbridge/selflog"
)

// LogrSink implements logr.LogSink on top of a core.Logger. logr messages
// are plain text; braces in them are not treated as template properties.
type LogrSink struct {
	logger core.Logger
	names  []string
	values []any
}

var _ logr.LogSink = (*LogrSink)(nil)

// NewLogrSink creates a sink writing to logger. Pass it to logr.New.
func NewLogrSink(logger core.Logger) *LogrSink {
	return &LogrSink{logger: logger}
}

// Init is a no-op; callers are not recorded.
func (s *LogrSink) Init(logr.RuntimeInfo) {}

// Enabled reports whether the V-level maps to an enabled level.
func (s *LogrSink) Enabled(level int) bool {
	return s.logger.IsEnabled(levelFromV(level))
}

// Info writes msg at the level mapped from the V-level.
func (s *LogrSink) Info(level int, msg string, keysAndValues ...any) {
	s.write(levelFromV(level), nil, msg, keysAndValues)
}

// Error writes msg at Error level with err attached.
func (s *LogrSink) Error(err error, msg string, keysAndValues ...any) {
	s.write(core.ErrorLevel, err, msg, keysAndValues)
}

// WithValues returns a sink adding the key/value pairs to every event.
func (s *LogrSink) WithValues(keysAndValues ...any) logr.LogSink {
	child := *s
	child.values = append(slices.Clip(s.values), keysAndValues...)
	return &child
}

// WithName returns a sink with name appended to the SourceContext.
func (s *LogrSink) WithName(name string) logr.LogSink {
	child := *s
	child.names = append(slices.Clip(s.names), name)
	return &child
}

func (s *LogrSink) write(level core.LogEventLevel, err error, msg string, keysAndValues []any) {
	if !s.logger.IsEnabled(level) {
		return
	}

	var props []*core.LogEventProperty
	if len(s.names) > 0 {
		if p, ok := s.logger.BindProperty(core.SourceContextPropertyName, s.names, false); ok {
			props = append(props, p)
		}
	}
	props = s.appendPairs(props, s.values)
	props = s.appendPairs(props, keysAndValues)

	template := &parser.MessageTemplate{
		Raw:    msg,
		Tokens: []parser.MessageTemplateToken{&parser.TextToken{Text: msg}},
	}
	s.logger.WriteEvent(core.NewLogEvent(time.Now(), level, err, template, props))
}

// appendPairs binds key/value pairs. A trailing key without a value is
// bound to nil.
func (s *LogrSink) appendPairs(props []*core.LogEventProperty, keysAndValues []any) []*core.LogEventProperty {
	for i := 0; i < len(keysAndValues); i += 2 {
		key := fmt.Sprint(keysAndValues[i])
		var value any
		if i+1 < len(keysAndValues) {
			value = keysAndValues[i+1]
		}
		p, ok := s.logger.BindProperty(key, value, false)
		if !ok {
			if selflog.IsEnabled() {
				selflog.Printf("[logr] key %q (type=%T) could not be bound", key, value)
			}
			continue
		}
		props = append(props, p)
	}
	return props
}

// levelFromV converts logr V-levels: 0=info, 1=debug, 2+=verbose.
func levelFromV(level int) core.LogEventLevel {
	switch level {
	case 0:
		return core.InformationLevel
	case 1:
		return core.DebugLevel
	default:
		return core.VerboseLevel
	}
}
