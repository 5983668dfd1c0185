package core

import (
	"errors"
	"fmt"
	"strings"
)

// LogEventLevel specifies the severity of a log event.
type LogEventLevel int

const (
	// VerboseLevel is the most detailed logging level.
	VerboseLevel LogEventLevel = iota

	// DebugLevel is for debugging information.
	DebugLevel

	// InformationLevel is for informational messages.
	InformationLevel

	// WarningLevel is for warnings.
	WarningLevel

	// ErrorLevel is for errors.
	ErrorLevel

	// FatalLevel is for fatal errors.
	FatalLevel
)

// IsValid reports whether l is one of the six defined levels.
func (l LogEventLevel) IsValid() bool {
	return l >= VerboseLevel && l <= FatalLevel
}

// String returns the full level name, e.g. "Information".
func (l LogEventLevel) String() string {
	switch l {
	case VerboseLevel:
		return "Verbose"
	case DebugLevel:
		return "Debug"
	case InformationLevel:
		return "Information"
	case WarningLevel:
		return "Warning"
	case ErrorLevel:
		return "Error"
	case FatalLevel:
		return "Fatal"
	default:
		return fmt.Sprintf("LogEventLevel(%d)", int(l))
	}
}

// ShortName returns the three letter abbreviation used by text output.
func (l LogEventLevel) ShortName() string {
	switch l {
	case VerboseLevel:
		return "VRB"
	case DebugLevel:
		return "DBG"
	case InformationLevel:
		return "INF"
	case WarningLevel:
		return "WRN"
	case ErrorLevel:
		return "ERR"
	case FatalLevel:
		return "FTL"
	default:
		return "???"
	}
}

// ErrUnknownLevel is returned by ParseLevel for unrecognised names.
var ErrUnknownLevel = errors.New("unknown log level")

// ParseLevel parses a level name or its short form, case-insensitively.
func ParseLevel(name string) (LogEventLevel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "verbose", "vrb", "trace":
		return VerboseLevel, nil
	case "debug", "dbg":
		return DebugLevel, nil
	case "information", "info", "inf":
		return InformationLevel, nil
	case "warning", "warn", "wrn":
		return WarningLevel, nil
	case "error", "err":
		return ErrorLevel, nil
	case "fatal", "ftl":
		return FatalLevel, nil
	default:
		return InformationLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, name)
	}
}
