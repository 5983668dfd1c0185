// Package selflog reports mtbridge's own failures: properties that could not
// be bound, sinks that failed to write, configuration that could not be read.
//
// It is disabled by default. Enable it while diagnosing missing output:
//
//	selflog.Enable(os.Stderr)
//	defer selflog.Disable()
//
// or route messages elsewhere:
//
//	selflog.EnableFunc(func(msg string) { fmt.Println("mtbridge:", msg) })
//
// Messages are prefixed with a UTC timestamp and, by convention, the
// reporting component in square brackets:
//
//	2025-01-29T15:30:45Z [bridge] property "Order" declined by target logger
//
// Setting MTBRIDGE_SELFLOG enables it on startup. Accepted values are
// "stderr", "stdout" or a file path.
package selflog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// EnvVar names the environment variable read at startup.
const EnvVar = "MTBRIDGE_SELFLOG"

type output struct {
	w  io.Writer
	fn func(string)
}

var current atomic.Pointer[output]

// Enable activates self-logging to w. Writers shared between goroutines
// should be wrapped with Sync.
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	current.Store(&output{w: w})
}

// EnableFunc activates self-logging through fn.
func EnableFunc(fn func(string)) {
	if fn == nil {
		return
	}
	current.Store(&output{fn: fn})
}

// Disable deactivates self-logging.
func Disable() {
	current.Store(nil)
}

// IsEnabled reports whether self-logging is active. Check it before building
// expensive arguments.
func IsEnabled() bool {
	return current.Load() != nil
}

// Printf writes one diagnostic line.
func Printf(format string, args ...any) {
	out := current.Load()
	if out == nil {
		return
	}

	line := time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
	if out.fn != nil {
		out.fn(line)
		return
	}
	fmt.Fprintln(out.w, line)
}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync wraps w so concurrent writes are serialized.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

// EnableFromEnv enables self-logging for a destination in the format of
// MTBRIDGE_SELFLOG. An empty destination leaves the current state unchanged.
func EnableFromEnv(dest string) error {
	switch dest {
	case "":
		return nil
	case "stderr":
		Enable(os.Stderr)
	case "stdout":
		Enable(os.Stdout)
	default:
		f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("selflog: open %s: %w", dest, err)
		}
		Enable(Sync(f))
	}
	return nil
}

func init() {
	_ = EnableFromEnv(os.Getenv(EnvVar))
}
