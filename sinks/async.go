package sinks

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/willibrandon/mtbridge/core"
	"github.com/willibrandon/mtbridge/selflog"
)

// OverflowStrategy defines what to do when the async buffer is full.
type OverflowStrategy int

const (
	// OverflowBlock blocks the caller until space is available.
	OverflowBlock OverflowStrategy = iota

	// OverflowDrop drops the newest event when the buffer is full.
	OverflowDrop
)

// AsyncOptions configures the async sink wrapper.
type AsyncOptions struct {
	// BufferSize is the capacity of the event queue. Defaults to 1000.
	BufferSize int

	// OverflowStrategy applies when the queue is full.
	OverflowStrategy OverflowStrategy

	// ShutdownTimeout bounds how long Close waits for queued events. Defaults to 30s.
	ShutdownTimeout time.Duration
}

// ErrShutdownTimeout is returned by AsyncSink.Close when queued events could
// not be drained in time.
var ErrShutdownTimeout = errors.New("timeout waiting for async sink to drain")

// AsyncSink forwards events to another sink from a background goroutine.
type AsyncSink struct {
	wrapped core.LogEventSink
	options AsyncOptions
	events  chan *core.LogEvent
	done    chan struct{}

	closeOnce sync.Once
	closing   chan struct{}

	// mu guards closed; inflight counts Emit calls that passed the check.
	mu       sync.RWMutex
	closed   bool
	inflight sync.WaitGroup

	dropped   atomic.Uint64
	processed atomic.Uint64
}

// NewAsyncSink wraps sink and starts its worker.
func NewAsyncSink(wrapped core.LogEventSink, options AsyncOptions) *AsyncSink {
	if options.BufferSize <= 0 {
		options.BufferSize = 1000
	}
	if options.ShutdownTimeout <= 0 {
		options.ShutdownTimeout = 30 * time.Second
	}

	s := &AsyncSink{
		wrapped: wrapped,
		options: options,
		events:  make(chan *core.LogEvent, options.BufferSize),
		done:    make(chan struct{}),
		closing: make(chan struct{}),
	}
	go s.worker()
	return s
}

// Emit queues the event. Events emitted after Close are dropped.
func (s *AsyncSink) Emit(event *core.LogEvent) {
	if event == nil {
		return
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		s.drop()
		return
	}
	s.inflight.Add(1)
	s.mu.RUnlock()
	defer s.inflight.Done()

	select {
	case s.events <- event:
		return
	default:
	}

	if s.options.OverflowStrategy == OverflowDrop {
		s.drop()
		return
	}
	select {
	case s.events <- event:
	case <-s.closing:
		s.drop()
	}
}

func (s *AsyncSink) drop() {
	n := s.dropped.Add(1)
	if selflog.IsEnabled() && (n == 1 || n%1000 == 0) {
		selflog.Printf("[async] buffer full or closed, dropped %d events total", n)
	}
}

// Dropped returns the number of events discarded so far.
func (s *AsyncSink) Dropped() uint64 {
	return s.dropped.Load()
}

// Processed returns the number of events forwarded so far.
func (s *AsyncSink) Processed() uint64 {
	return s.processed.Load()
}

func (s *AsyncSink) worker() {
	defer close(s.done)
	for {
		select {
		case event := <-s.events:
			s.forward(event)
		case <-s.closing:
			s.inflight.Wait()
			for {
				select {
				case event := <-s.events:
					s.forward(event)
				default:
					return
				}
			}
		}
	}
}

func (s *AsyncSink) forward(event *core.LogEvent) {
	defer func() {
		if r := recover(); r != nil && selflog.IsEnabled() {
			selflog.Printf("[async] wrapped sink panic: %v", r)
		}
	}()
	s.wrapped.Emit(event)
	s.processed.Add(1)
}

// Close drains queued events, then closes the wrapped sink.
func (s *AsyncSink) Close() error {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
		close(s.closing)
	})

	select {
	case <-s.done:
	case <-time.After(s.options.ShutdownTimeout):
		return ErrShutdownTimeout
	}
	return s.wrapped.Close()
}
