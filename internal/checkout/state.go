package checkout

// State represents where the checkout flow currently is
type State string

const (
	StateInitializing  State = "initializing"
	StateLocking       State = "locking"
	StateActive        State = "active"
	StateConfirming    State = "confirming"
	StateCompleted     State = "completed"
	StateExpired       State = "expired"
	StateCancelled     State = "cancelled"
	StateSoldOut       State = "sold_out"
	StateLimitExceeded State = "limit_exceeded"
	StateFailed        State = "failed"
)

// IsTerminal returns true for states the flow cannot leave without an
// explicit user action
func (s State) IsTerminal() bool {
	switch s {
	case StateCompleted, StateExpired, StateCancelled, StateSoldOut, StateLimitExceeded:
		return true
	default:
		return false
	}
}

// CanRetry returns true if an explicit "try again" action may re-run
// the locking step from this state. Sold-out and limit-exceeded are
// deliberate dead ends for the current attempt; completed needs no
// retry.
func (s State) CanRetry() bool {
	switch s {
	case StateExpired, StateCancelled, StateFailed:
		return true
	default:
		return false
	}
}

// String representation (for logging)
func (s State) String() string {
	return string(s)
}

// Snapshot represents the externally visible flow state for rendering
type Snapshot struct {
	State     State
	Remaining int // whole seconds left on the hold
	Urgent    bool
	Message   string // inline error or terminal message, if any
}
