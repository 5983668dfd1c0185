package sinks

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/formatters"
	"github.com/willibrandon/mtbridge/selflog"
)

// StreamSink formats events and writes one line per event to a writer.
type StreamSink struct {
	mu        sync.Mutex
	w         io.Writer
	formatter formatters.Formatter
	closer    io.Closer
	buf       []byte
}

// NewStreamSink creates a sink writing to w. The writer is not closed by Close.
func NewStreamSink(w io.Writer, formatter formatters.Formatter) *StreamSink {
	return &StreamSink{w: w, formatter: formatter}
}

// NewCLEFSink creates a sink writing newline-delimited CLEF to w.
func NewCLEFSink(w io.Writer) *StreamSink {
	return NewStreamSink(w, formatters.NewCLEFFormatter())
}

// NewFileSink creates a sink appending to the file at path, creating it and
// its directory when missing. Close closes the file.
func NewFileSink(path string, formatter formatters.Formatter) (*StreamSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	s := NewStreamSink(f, formatter)
	s.closer = f
	return s, nil
}

// Emit formats and writes the event. Failures are reported through selflog.
func (s *StreamSink) Emit(event *core.LogEvent) {
	if event == nil {
		return
	}
	line, err := s.formatter.Format(event)
	if err != nil {
		if selflog.IsEnabled() {
			selflog.Printf("[stream] format failed: %v (template=%q)", err, event.MessageTemplateText())
		}
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf = append(append(s.buf[:0], line...), '\n')
	if _, err := s.w.Write(s.buf); err != nil && selflog.IsEnabled() {
		selflog.Printf("[stream] write failed: %v", err)
	}
}

// Close closes the underlying writer if the sink owns it.
func (s *StreamSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	return err
}
