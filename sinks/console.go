package sinks

import (
	"io"
	"os"
	"strings"

	"github.com/willibrandon/mtbridge/formatters"
)

// ForceColorEnvVar overrides color detection: "1", "true" or "on" force
// colors and "0", "false", "off" or "none" disable them.
const ForceColorEnvVar = "MTBRIDGE_FORCE_COLOR"

// NewConsoleSink creates a text sink writing to stdout, colored when stdout
// is a terminal.
func NewConsoleSink() *StreamSink {
	return NewConsoleSinkWithWriter(os.Stdout)
}

// NewConsoleSinkWithWriter creates a text sink writing to w.
func NewConsoleSinkWithWriter(w io.Writer) *StreamSink {
	return NewStreamSink(w, &formatters.TextFormatter{
		ShowProperties: true,
		Colorize:       shouldUseColor(w),
	})
}

func shouldUseColor(w io.Writer) bool {
	switch strings.ToLower(os.Getenv(ForceColorEnvVar)) {
	case "1", "true", "on":
		return true
	case "0", "false", "off", "none":
		return false
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}

	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
