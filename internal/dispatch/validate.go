package dispatch

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/geocoder89/confirmhub/internal/mailer"
)

// Reason says why an attempt cannot go out.
type Reason string

const (
	ReasonMissingRecipient Reason = "missing_recipient"
	ReasonInvalidRecipient Reason = "invalid_recipient"
	ReasonNotConfigured    Reason = "not_configured"
)

// Err maps the reason onto its sentinel error.
func (r Reason) Err() error {
	switch r {
	case ReasonMissingRecipient:
		return ErrMissingRecipient
	case ReasonInvalidRecipient:
		return ErrInvalidRecipient
	case ReasonNotConfigured:
		return ErrNotConfigured
	default:
		return nil
	}
}

// Verdict is the result of the pre-flight check. Reason is empty when OK.
type Verdict struct {
	OK     bool
	Reason Reason
}

var emailCheck = validator.New()

// IsSendable decides whether a send attempt may reach the provider.
// Pure and re-evaluated on every attempt; the first failing check wins, so
// a verdict carries exactly one reason. An unconfigured provider is checked
// first because callers use it to disable sending outright.
func IsSendable(status mailer.ConfigStatus, recipientEmail string) Verdict {
	if !status.Configured {
		return Verdict{Reason: ReasonNotConfigured}
	}
	if strings.TrimSpace(recipientEmail) == "" {
		return Verdict{Reason: ReasonMissingRecipient}
	}
	if !IsValidEmail(recipientEmail) {
		return Verdict{Reason: ReasonInvalidRecipient}
	}
	return Verdict{OK: true}
}

// IsValidEmail checks the conventional address shape: a local part, "@",
// a domain with at least one dot, no whitespace. "foo@bar" does not pass.
func IsValidEmail(s string) bool {
	if s == "" {
		return false
	}
	return emailCheck.Var(s, "email") == nil
}
