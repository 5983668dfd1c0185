package logr

import (
	"github.com/go-logr/logr"
	"github.com/willibrandon/mtbridge/facade"
)

// SeverityKey carries the facade level on every record, since logr itself
// only distinguishes info verbosity from errors.
const SeverityKey = "severity"

// FacadeLogger writes facade events to a logr.Logger. Debug goes to V(1),
// Info and Warn to V(0), Error and Fatal to logr's Error. Scopes added with
// ForContext become logr names.
type FacadeLogger struct {
	logger  logr.Logger
	context facade.SourceContext
}

var _ facade.Logger = (*FacadeLogger)(nil)

// NewFacade returns a facade.Logger writing to logger.
func NewFacade(logger logr.Logger) *FacadeLogger {
	return &FacadeLogger{logger: logger}
}

// IsEnabledFor reports whether logr would emit records at level.
func (f *FacadeLogger) IsEnabledFor(level facade.Level) bool {
	switch level {
	case facade.Debug:
		return f.logger.V(1).Enabled()
	case facade.Info, facade.Warn:
		return f.logger.Enabled()
	case facade.Error, facade.Fatal:
		return f.logger.GetSink() != nil
	default:
		return false
	}
}

// ForContext returns a logger with name appended to the logr name.
func (f *FacadeLogger) ForContext(name string) facade.Logger {
	next := f.context.Append(name)
	if next.Len() == f.context.Len() {
		return f
	}
	return &FacadeLogger{logger: f.logger.WithName(name), context: next}
}

// Log renders the event message and passes its properties as key/value pairs.
func (f *FacadeLogger) Log(event *facade.LogEvent) {
	if event == nil || !f.IsEnabledFor(event.Level()) {
		return
	}

	logger := f.logger
	props := event.Properties()
	kv := make([]any, 0, 2+2*len(props))
	kv = append(kv, SeverityKey, event.Level().String())
	for _, p := range props {
		if p.Name == facade.ContextPropertyName {
			logger = f.named(logger, p.Value)
			continue
		}
		kv = append(kv, p.Name, p.Value)
	}

	msg := event.RenderMessage()
	switch event.Level() {
	case facade.Debug:
		logger.V(1).Info(msg, kv...)
	case facade.Error, facade.Fatal:
		logger.Error(event.Err(), msg, kv...)
	default:
		if err := event.Err(); err != nil {
			kv = append(kv, "error", err.Error())
		}
		logger.Info(msg, kv...)
	}
}

// named applies an event's own context as logr names. A logger that already
// has a scope keeps it.
func (f *FacadeLogger) named(logger logr.Logger, context any) logr.Logger {
	if f.context.Len() > 0 {
		return logger
	}
	switch sc := context.(type) {
	case facade.SourceContext:
		for _, segment := range sc.Segments() {
			logger = logger.WithName(segment)
		}
	case string:
		if sc != "" {
			logger = logger.WithName(sc)
		}
	}
	return logger
}
