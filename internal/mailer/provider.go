package mailer

import (
	"context"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

// ConfigStatus reports whether a binding has everything it needs to deliver
// mail. Message carries operator guidance when it does not.
type ConfigStatus struct {
	Configured bool   `json:"configured"`
	Message    string `json:"message"`
}

// Provider knows how to deliver one confirmation notification.
// Send reports acceptance as a boolean; a non-nil error means the attempt
// itself broke (network, auth, provider outage).
type Provider interface {
	Send(ctx context.Context, req confirmation.Request) (bool, error)
	ConfigStatus() ConfigStatus
}
