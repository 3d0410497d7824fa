package dispatch

import (
	"context"
	"fmt"
)

// NoteKind separates "fix your input" notes from settled-attempt notes.
type NoteKind string

const (
	NoteInput   NoteKind = "input"
	NoteOutcome NoteKind = "outcome"
)

// Note is the single human-readable status message an attempt produces.
// Failed and error notes stay generic; diagnostics belong in the log.
type Note struct {
	Kind      NoteKind
	Outcome   Outcome // set for outcome notes
	Reason    Reason  // set for input notes
	Message   string
	Recipient string
}

// Reporter receives exactly one note per Send call. Implementations must
// not block for long and cannot influence the outcome.
type Reporter interface {
	Report(ctx context.Context, note Note)
}

// NopReporter drops notes. Useful when the caller only reads the Result.
type NopReporter struct{}

func (NopReporter) Report(context.Context, Note) {}

// ReasonMessage is the operator-facing text for a pre-flight rejection.
func ReasonMessage(r Reason) string {
	switch r {
	case ReasonMissingRecipient:
		return "Please provide the attendee's email address."
	case ReasonInvalidRecipient:
		return "Please enter a valid email address."
	case ReasonNotConfigured:
		return "Email delivery is not configured. Contact the administrator."
	default:
		return "The confirmation could not be prepared."
	}
}

func outcomeMessage(o Outcome, recipient string) string {
	switch o {
	case OutcomeSuccess:
		return fmt.Sprintf("Confirmation email sent to %s.", recipient)
	case OutcomeFailed:
		return "The confirmation email could not be sent. Please try again or contact the organizer."
	default:
		return "Something went wrong while sending the confirmation. Please try again or contact the organizer."
	}
}
