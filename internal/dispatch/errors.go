package dispatch

import "errors"

var (
	ErrMissingRecipient = errors.New("recipient email is missing")
	ErrInvalidRecipient = errors.New("recipient email is invalid")
	ErrNotConfigured    = errors.New("mail provider is not configured")
)

// ReasonOf maps a pre-flight sentinel back onto its reason. Empty for
// anything else.
func ReasonOf(err error) Reason {
	switch {
	case errors.Is(err, ErrMissingRecipient):
		return ReasonMissingRecipient
	case errors.Is(err, ErrInvalidRecipient):
		return ReasonInvalidRecipient
	case errors.Is(err, ErrNotConfigured):
		return ReasonNotConfigured
	default:
		return ""
	}
}
