package filters

import "github.com/willibrandon/mtbridge/core"

// PredicateFilter filters log events with a custom predicate function.
type PredicateFilter struct {
	predicate func(*core.LogEvent) bool
}

// NewPredicateFilter creates a filter that uses predicate. A nil predicate passes everything.
func NewPredicateFilter(predicate func(*core.LogEvent) bool) *PredicateFilter {
	return &PredicateFilter{predicate: predicate}
}

// IsEnabled returns the result of the predicate function.
func (f *PredicateFilter) IsEnabled(event *core.LogEvent) bool {
	if f.predicate == nil {
		return true
	}
	return f.predicate(event)
}

// ByExcluding creates a filter that drops events matching predicate.
func ByExcluding(predicate func(*core.LogEvent) bool) core.LogEventFilter {
	return NewPredicateFilter(func(event *core.LogEvent) bool {
		return !predicate(event)
	})
}

// ByIncluding creates a filter that keeps only events matching predicate.
func ByIncluding(predicate func(*core.LogEvent) bool) core.LogEventFilter {
	return NewPredicateFilter(predicate)
}

// All passes events accepted by every filter.
func All(filters ...core.LogEventFilter) core.LogEventFilter {
	return NewPredicateFilter(func(event *core.LogEvent) bool {
		for _, f := range filters {
			if !f.IsEnabled(event) {
				return false
			}
		}
		return true
	})
}

// Any passes events accepted by at least one filter.
func Any(filters ...core.LogEventFilter) core.LogEventFilter {
	return NewPredicateFilter(func(event *core.LogEvent) bool {
		for _, f := range filters {
			if f.IsEnabled(event) {
				return true
			}
		}
		return false
	})
}
