// Package formatters renders log events as text or Compact Log Event Format
// (CLEF) JSON, and reads CLEF back into events.
package formatters

import "github.com/willibrandon/mtbridge/core"

// Formatter renders a single event as one line of output, without the
// trailing newline.
type Formatter interface {
	Format(event *core.LogEvent) ([]byte, error)
}
