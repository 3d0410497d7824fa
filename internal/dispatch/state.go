package dispatch

// State is the observable lifecycle of a send attempt. The dispatcher sits
// in idle until an attempt reaches the provider, holds sending across the
// call and settles into exactly one terminal state.
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSuccess State = "success"
	StateFailed  State = "failed"
	StateError   State = "error"
)

func (s State) IsValid() bool {
	switch s {
	case StateIdle, StateSending, StateSuccess, StateFailed, StateError:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the state settles an attempt.

func (s State) IsTerminal() bool {
	switch s {
	case StateSuccess, StateFailed, StateError:
		return true
	default:
		return false
	}
}
