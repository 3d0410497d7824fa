package mailer

import (
	"strings"
	"testing"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

func sampleRequest() confirmation.Request {
	return confirmation.Request{
		RecipientName:      "Jane Doe",
		RecipientEmail:     "jane@example.com",
		EventTitle:         "Go Meetup",
		EventDate:          "Saturday, March 15",
		EventTime:          "10:00",
		EventLocation:      "Toronto",
		EventPrice:         "$25",
		ConfirmationNumber: "EVT-1741530600000-A1B2C3",
		RegistrationDate:   "09/03/2025",
		EventDescription:   "A hands-on workshop.",
		EventRequirements:  []string{"A laptop", "A stable internet connection"},
		EventIncludes:      []string{"Workshop materials", "Certificate of attendance"},
		OrganizerEmail:     "organizer@example.com",
	}
}

func TestRenderConfirmation(t *testing.T) {
	req := sampleRequest()

	subject, html, err := RenderConfirmation(req)
	if err != nil {
		t.Fatalf("RenderConfirmation: %v", err)
	}

	if subject != "Registration confirmed: Go Meetup" {
		t.Fatalf("got subject %q", subject)
	}

	wantInBody := []string{
		"Jane Doe",
		"EVT-1741530600000-A1B2C3",
		"09/03/2025",
		"Go Meetup",
		"Toronto",
		"$25",
		"A laptop",
		"Certificate of attendance",
		"mailto:organizer@example.com",
	}

	for _, want := range wantInBody {
		if !strings.Contains(html, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestRenderConfirmationFallbacks(t *testing.T) {
	req := sampleRequest()
	req.RecipientName = ""
	req.EventTitle = ""

	subject, html, err := RenderConfirmation(req)
	if err != nil {
		t.Fatalf("RenderConfirmation: %v", err)
	}

	if subject != "Registration confirmed: your event" {
		t.Fatalf("got subject %q", subject)
	}

	// greeting falls back when no name was captured
	if !strings.Contains(html, "Hi there,") {
		t.Fatalf("missing fallback greeting")
	}
}

// template input is operator-entered text; it must come out escaped

func TestRenderConfirmationEscapesInput(t *testing.T) {
	req := sampleRequest()
	req.RecipientName = `<script>alert("x")</script>`

	_, html, err := RenderConfirmation(req)
	if err != nil {
		t.Fatalf("RenderConfirmation: %v", err)
	}

	if strings.Contains(html, "<script>") {
		t.Fatalf("unescaped markup in body")
	}
}
