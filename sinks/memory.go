package sinks

import (
	"sync"

	"github.com/willibrandon/mtbridge/core"
)

// MemorySink stores log events in memory for testing purposes.
type MemorySink struct {
	events []*core.LogEvent
	mu     sync.RWMutex
}

// NewMemorySink creates a new memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Emit stores a copy of the event.
func (m *MemorySink) Emit(event *core.LogEvent) {
	if event == nil {
		return
	}
	c := event.Clone()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, c)
}

// Close does nothing for memory sink.
func (m *MemorySink) Close() error {
	return nil
}

// Events returns the stored events in emission order.
func (m *MemorySink) Events() []*core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*core.LogEvent, len(m.events))
	copy(result, m.events)
	return result
}

// LastEvent returns the most recent event, or nil.
func (m *MemorySink) LastEvent() *core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.events) == 0 {
		return nil
	}
	return m.events[len(m.events)-1]
}

// Clear removes all stored events.
func (m *MemorySink) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

// Count returns the number of stored events.
func (m *MemorySink) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.events)
}

// FindEvents returns events that match the given predicate.
func (m *MemorySink) FindEvents(predicate func(*core.LogEvent) bool) []*core.LogEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*core.LogEvent
	for _, event := range m.events {
		if predicate(event) {
			result = append(result, event)
		}
	}
	return result
}
