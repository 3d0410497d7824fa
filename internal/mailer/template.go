package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

const confirmationBody = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #1f2937; max-width: 600px; margin: 0 auto; padding: 24px;">
  <h2 style="color: #111827;">Registration Confirmed</h2>
  <p>Hi {{if .RecipientName}}{{.RecipientName}}{{else}}there{{end}},</p>
  <p>Your registration{{if .EventTitle}} for <strong>{{.EventTitle}}</strong>{{end}} is confirmed.</p>

  <div style="background: #f3f4f6; border-radius: 8px; padding: 16px; margin: 16px 0;">
    <p style="margin: 4px 0;"><strong>Confirmation number:</strong> {{.ConfirmationNumber}}</p>
    <p style="margin: 4px 0;"><strong>Registered on:</strong> {{.RegistrationDate}}</p>
    {{if .EventDate}}<p style="margin: 4px 0;"><strong>Date:</strong> {{.EventDate}}</p>{{end}}
    {{if .EventTime}}<p style="margin: 4px 0;"><strong>Time:</strong> {{.EventTime}}</p>{{end}}
    {{if .EventLocation}}<p style="margin: 4px 0;"><strong>Location:</strong> {{.EventLocation}}</p>{{end}}
    {{if .EventPrice}}<p style="margin: 4px 0;"><strong>Price:</strong> {{.EventPrice}}</p>{{end}}
  </div>

  {{if .EventDescription}}<p>{{.EventDescription}}</p>{{end}}

  {{if .EventRequirements}}
  <h3 style="color: #111827;">What to bring</h3>
  <ul>
    {{range .EventRequirements}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}

  {{if .EventIncludes}}
  <h3 style="color: #111827;">What's included</h3>
  <ul>
    {{range .EventIncludes}}<li>{{.}}</li>{{end}}
  </ul>
  {{end}}

  <p style="color: #6b7280; font-size: 14px;">
    Questions? Reach the organizer at
    <a href="mailto:{{.OrganizerEmail}}">{{.OrganizerEmail}}</a>.
  </p>
</body>
</html>`

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationBody))

// RenderConfirmation produces the subject line and HTML body shared by the
// real bindings. The log binding skips rendering entirely.
func RenderConfirmation(req confirmation.Request) (string, string, error) {
	var buf bytes.Buffer
	if err := confirmationTmpl.Execute(&buf, req); err != nil {
		return "", "", fmt.Errorf("render confirmation: %w", err)
	}

	title := req.EventTitle
	if title == "" {
		title = "your event"
	}
	subject := fmt.Sprintf("Registration confirmed: %s", title)

	return subject, buf.String(), nil
}
