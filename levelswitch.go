package mtbridge

import (
	"sync/atomic"

	"github.com/willibrandon/mtbridge/core"
)

// LoggingLevelSwitch provides thread-safe, runtime control of the minimum log level.
// Loggers sharing a switch observe changes immediately.
type LoggingLevelSwitch struct {
	level atomic.Int32
}

// NewLoggingLevelSwitch creates a switch with the specified initial level.
func NewLoggingLevelSwitch(initialLevel core.LogEventLevel) *LoggingLevelSwitch {
	ls := &LoggingLevelSwitch{}
	ls.SetLevel(initialLevel)
	return ls
}

// Level returns the current minimum log level.
func (ls *LoggingLevelSwitch) Level() core.LogEventLevel {
	return core.LogEventLevel(ls.level.Load())
}

// SetLevel updates the minimum log level.
func (ls *LoggingLevelSwitch) SetLevel(level core.LogEventLevel) {
	ls.level.Store(int32(level))
}

// SetLevelName parses name with core.ParseLevel and applies it. The current
// level is kept if the name is unknown.
func (ls *LoggingLevelSwitch) SetLevelName(name string) error {
	level, err := core.ParseLevel(name)
	if err != nil {
		return err
	}
	ls.SetLevel(level)
	return nil
}

// IsEnabled reports whether level is at or above the current minimum.
func (ls *LoggingLevelSwitch) IsEnabled(level core.LogEventLevel) bool {
	return level >= ls.Level()
}
