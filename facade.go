package mtbridge

import (
	"github.com/willibrandon/mtbridge/bridge"
	"github.com/willibrandon/mtbridge/facade"
)

// AsFacade returns a facade.Logger that writes through l.
func (l *Logger) AsFacade(opts ...bridge.Option) *bridge.LogAdapter {
	return bridge.NewLogAdapter(l, opts...)
}

// NewFacade creates a logger from options and returns it as a facade.Logger.
func NewFacade(options ...Option) facade.Logger {
	return New(options...).AsFacade()
}
