// Package logr connects mtbridge to logr, the structured logging interface
// used throughout the Kubernetes ecosystem. It works in both directions:
//
//   - NewLogger and NewLogrSink give logr callers an mtbridge pipeline.
//   - NewFacade writes facade events to any logr.Logger.
//
// logr V-levels map to mtbridge levels as V(0) → Information, V(1) → Debug
// and V(2+) → Verbose. Logger names from WithName become the SourceContext.
//
//	logger := mtlogr.NewLogger(mtbridge.WithConsole(), mtbridge.Debug())
//	logger.WithName("controller").Info("reconciling", "namespace", "default")
package logr

import (
	"github.com/go-logr/logr"
	"github.com/willibrandon/mtbridge"
)

// NewLogger creates a logr.Logger backed by a new mtbridge logger built
// from options.
func NewLogger(options ...mtbridge.Option) logr.Logger {
	return logr.New(NewLogrSink(mtbridge.New(options...)))
}
