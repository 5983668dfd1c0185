package bridge

// Direction identifies which way an event crossed the bridge.
type Direction int

const (
	// Outbound is facade → message-template logger (LogAdapter).
	Outbound Direction = iota
	// Inbound is message-template logger → facade (ReverseSink).
	Inbound
)

// String returns "outbound" or "inbound".
func (d Direction) String() string {
	if d == Inbound {
		return "inbound"
	}
	return "outbound"
}

// Observer receives translation outcomes. Implementations must be safe for
// concurrent use.
type Observer interface {
	Forwarded(direction Direction)
	SkippedDisabled(direction Direction)
	TemplateBindFailed()
	PropertyDropped(name string)
}

type nopObserver struct{}

func (nopObserver) Forwarded(Direction)       {}
func (nopObserver) SkippedDisabled(Direction) {}
func (nopObserver) TemplateBindFailed()       {}
func (nopObserver) PropertyDropped(string)    {}
