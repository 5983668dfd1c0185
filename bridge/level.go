package bridge

import (
	"errors"
	"fmt"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/facade"
)

// ErrInvalidLevel is returned when a level has no counterpart on the other side.
var ErrInvalidLevel = errors.New("bridge: invalid level")

// ToCoreLevel maps a facade level to its message-template level. Every
// facade level has exactly one counterpart.
func ToCoreLevel(level facade.Level) (core.LogEventLevel, error) {
	switch level {
	case facade.Debug:
		return core.DebugLevel, nil
	case facade.Info:
		return core.InformationLevel, nil
	case facade.Warn:
		return core.WarningLevel, nil
	case facade.Error:
		return core.ErrorLevel, nil
	case facade.Fatal:
		return core.FatalLevel, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
}

// ToFacadeLevel maps a message-template level to a facade level. Verbose and
// Debug both become facade.Debug.
func ToFacadeLevel(level core.LogEventLevel) (facade.Level, error) {
	switch level {
	case core.VerboseLevel, core.DebugLevel:
		return facade.Debug, nil
	case core.InformationLevel:
		return facade.Info, nil
	case core.WarningLevel:
		return facade.Warn, nil
	case core.ErrorLevel:
		return facade.Error, nil
	case core.FatalLevel:
		return facade.Fatal, nil
	default:
		return 0, fmt.Errorf("%w: %d", ErrInvalidLevel, int(level))
	}
}
