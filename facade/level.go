package facade

import "fmt"

// Level is the severity of a facade event.
type Level int

const (
	// Debug is for diagnostic detail.
	Debug Level = iota

	// Info is for normal operational messages.
	Info

	// Warn is for unexpected but recoverable conditions.
	Warn

	// Error is for failures of the current operation.
	Error

	// Fatal is for failures the process cannot recover from.
	Fatal
)

// IsValid reports whether l is one of the five defined levels.
func (l Level) IsValid() bool {
	return l >= Debug && l <= Fatal
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Fatal:
		return "FATAL"
	default:
		return fmt.Sprintf("Level(%d)", int(l))
	}
}
