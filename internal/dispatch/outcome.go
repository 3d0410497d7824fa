package dispatch

// Outcome classifies how a provider call settled.

type Outcome string

const (
	OutcomeSuccess Outcome = "success" // provider accepted the mail
	OutcomeFailed  Outcome = "failed"  // provider answered with a rejection
	OutcomeError   Outcome = "error"   // the call itself broke
)

func (o Outcome) IsValid() bool {
	switch o {
	case OutcomeSuccess, OutcomeFailed, OutcomeError:
		return true
	default:
		return false
	}
}

// TerminalState maps an outcome onto the state machine.

func (o Outcome) TerminalState() State {
	switch o {
	case OutcomeSuccess:
		return StateSuccess
	case OutcomeFailed:
		return StateFailed
	default:
		return StateError
	}
}
