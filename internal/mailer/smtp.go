package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

// SMTPProvider delivers confirmations through a plain SMTP relay.
type SMTPProvider struct {
	host string
	port int
	user string
	pass string
	from string
}

func NewSMTPProvider(host string, port int, user, pass, from string) *SMTPProvider {
	return &SMTPProvider{
		host: host,
		port: port,
		user: user,
		pass: pass,
		from: from,
	}
}

func (p *SMTPProvider) Send(ctx context.Context, req confirmation.Request) (bool, error) {
	subject, html, err := RenderConfirmation(req)
	if err != nil {
		return false, err
	}

	// net/smtp has no context support; honor cancellation before dialing
	if err := ctx.Err(); err != nil {
		return false, err
	}

	headers := []string{
		"From: " + p.from,
		"To: " + req.RecipientEmail,
		"Reply-To: " + req.OrganizerEmail,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
	}
	msg := strings.Join(headers, "\r\n") + "\r\n\r\n" + html

	var auth smtp.Auth
	if p.user != "" {
		auth = smtp.PlainAuth("", p.user, p.pass, p.host)
	}

	addr := fmt.Sprintf("%s:%d", p.host, p.port)

	if err := smtp.SendMail(addr, auth, p.from, []string{req.RecipientEmail}, []byte(msg)); err != nil {
		return false, fmt.Errorf("smtp send: %w", err)
	}
	return true, nil
}

func (p *SMTPProvider) ConfigStatus() ConfigStatus {
	if p.host == "" {
		return ConfigStatus{Message: "smtp host missing: set SMTP_HOST"}
	}
	if p.from == "" {
		return ConfigStatus{Message: "sender address missing: set MAIL_FROM"}
	}
	return ConfigStatus{Configured: true, Message: "smtp"}
}
