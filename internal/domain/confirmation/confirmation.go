package confirmation

// CreateRequest carries the operator form fields for one confirmation send.
// Everything is free-form text; recipient correctness belongs to the dispatch
// validator, so binding tags only cap lengths.
type CreateRequest struct {
	Name          string `json:"name" binding:"omitempty,max=200"`
	Email         string `json:"email" binding:"omitempty,max=320"`
	EventTitle    string `json:"eventTitle" binding:"omitempty,max=200"`
	EventDate     string `json:"eventDate" binding:"omitempty,max=100"`
	EventTime     string `json:"eventTime" binding:"omitempty,max=100"`
	EventLocation string `json:"eventLocation" binding:"omitempty,max=300"`
	EventPrice    string `json:"eventPrice" binding:"omitempty,max=100"`
}

// Request is the assembled notification payload handed to a mailer provider.
type Request struct {
	RecipientName      string   `json:"recipientName"`
	RecipientEmail     string   `json:"recipientEmail"`
	EventTitle         string   `json:"eventTitle"`
	EventDate          string   `json:"eventDate"`
	EventTime          string   `json:"eventTime"`
	EventLocation      string   `json:"eventLocation"`
	EventPrice         string   `json:"eventPrice"`
	ConfirmationNumber string   `json:"confirmationNumber"`
	RegistrationDate   string   `json:"registrationDate"`
	EventDescription   string   `json:"eventDescription"`
	EventRequirements  []string `json:"eventRequirements"`
	EventIncludes      []string `json:"eventIncludes"`
	OrganizerEmail     string   `json:"organizerEmail"`
}

// Content is the static copy every confirmation carries.
type Content struct {
	Description  string
	Requirements []string
	Includes     []string
}

// DefaultContent returns the stock workshop copy used when no deployment
// override is configured.
func DefaultContent() Content {
	return Content{
		Description: "A hands-on workshop covering the event agenda from start to finish, with live Q&A sessions throughout the day.",
		Requirements: []string{
			"A laptop with a recent browser installed",
			"A stable internet connection",
			"Basic familiarity with the event topic",
		},
		Includes: []string{
			"All workshop materials and slides",
			"Certificate of attendance",
			"Access to the session recording for 30 days",
		},
	}
}

// A factory to build the payload from the form fields plus the per-attempt
// derived values. Derivation (number, date) stays with the caller.

func Build(in CreateRequest, number, date string, content Content, organizer string) Request {
	return Request{
		RecipientName:      in.Name,
		RecipientEmail:     in.Email,
		EventTitle:         in.EventTitle,
		EventDate:          in.EventDate,
		EventTime:          in.EventTime,
		EventLocation:      in.EventLocation,
		EventPrice:         in.EventPrice,
		ConfirmationNumber: number,
		RegistrationDate:   date,
		EventDescription:   content.Description,
		EventRequirements:  content.Requirements,
		EventIncludes:      content.Includes,
		OrganizerEmail:     organizer,
	}
}
