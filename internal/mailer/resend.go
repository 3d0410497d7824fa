package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

// ResendProvider delivers confirmations through the Resend API.
type ResendProvider struct {
	client *resend.Client
	apiKey string
	from   string
}

func NewResendProvider(apiKey, from string) *ResendProvider {
	return &ResendProvider{
		client: resend.NewClient(apiKey),
		apiKey: apiKey,
		from:   from,
	}
}

func (p *ResendProvider) Send(ctx context.Context, req confirmation.Request) (bool, error) {
	subject, html, err := RenderConfirmation(req)
	if err != nil {
		return false, err
	}

	params := &resend.SendEmailRequest{
		From:    p.from,
		To:      []string{req.RecipientEmail},
		Subject: subject,
		Html:    html,
		ReplyTo: req.OrganizerEmail,
	}

	sent, err := p.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return false, fmt.Errorf("resend send: %w", err)
	}

	// accepted mail comes back with an id
	return sent.Id != "", nil
}

func (p *ResendProvider) ConfigStatus() ConfigStatus {
	if p.apiKey == "" {
		return ConfigStatus{Message: "resend API key missing: set RESEND_API_KEY"}
	}
	if p.from == "" {
		return ConfigStatus{Message: "sender address missing: set MAIL_FROM"}
	}
	return ConfigStatus{Configured: true, Message: "resend"}
}
