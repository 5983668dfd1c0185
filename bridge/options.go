package bridge

// Option configures a LogAdapter or a ReverseSink.
type Option func(*options)

type options struct {
	observer    Observer
	destructure bool
}

func newOptions(opts []Option) options {
	o := options{observer: nopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithObserver reports translation outcomes to observer.
func WithObserver(observer Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithDestructuring makes the adapter capture struct-valued event properties
// field by field instead of as scalars.
func WithDestructuring() Option {
	return func(o *options) {
		o.destructure = true
	}
}
