package dispatch_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/geocoder89/confirmhub/internal/dispatch"
	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
	"github.com/geocoder89/confirmhub/internal/mailer"
	"github.com/geocoder89/confirmhub/internal/observability"
)

// Fake provider implementation of the mailer.Provider interface

type fakeProvider struct {
	mu    sync.Mutex
	calls []confirmation.Request

	sendFn   func(ctx context.Context, req confirmation.Request) (bool, error)
	statusFn func() mailer.ConfigStatus
}

func (f *fakeProvider) Send(ctx context.Context, req confirmation.Request) (bool, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.sendFn != nil {
		return f.sendFn(ctx, req)
	}

	return true, nil
}

func (f *fakeProvider) ConfigStatus() mailer.ConfigStatus {
	if f.statusFn != nil {
		return f.statusFn()
	}

	return mailer.ConfigStatus{Configured: true, Message: "ready"}
}

func (f *fakeProvider) Count() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.calls)
}

func (f *fakeProvider) Last() confirmation.Request {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls[len(f.calls)-1]
}

type recordingReporter struct {
	mu    sync.Mutex
	notes []dispatch.Note
}

func (r *recordingReporter) Report(_ context.Context, n dispatch.Note) {
	r.mu.Lock()
	r.notes = append(r.notes, n)
	r.mu.Unlock()
}

func (r *recordingReporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.notes)
}

func (r *recordingReporter) Last() dispatch.Note {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.notes[len(r.notes)-1]
}

func validInput() confirmation.CreateRequest {
	return confirmation.CreateRequest{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		EventTitle:    "Go Meetup",
		EventDate:     "Saturday, March 15",
		EventTime:     "10:00",
		EventLocation: "Toronto",
		EventPrice:    "$25",
	}
}

func TestSendOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		sendFn      func(ctx context.Context, req confirmation.Request) (bool, error)
		wantOutcome dispatch.Outcome
		wantState   dispatch.State
	}{
		{
			name: "provider_accepts",
			sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
				return true, nil
			},
			wantOutcome: dispatch.OutcomeSuccess,
			wantState:   dispatch.StateSuccess,
		},
		{
			name: "provider_rejects",
			sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
				return false, nil
			},
			wantOutcome: dispatch.OutcomeFailed,
			wantState:   dispatch.StateFailed,
		},
		{
			name: "provider_errors",
			sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
				return false, errors.New("smtp connect refused")
			},
			wantOutcome: dispatch.OutcomeError,
			wantState:   dispatch.StateError,
		},

		// an error outranks the rejected flag when both come back
		{
			name: "provider_errors_with_ok_flag",
			sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
				return true, errors.New("smtp connect refused")
			},
			wantOutcome: dispatch.OutcomeError,
			wantState:   dispatch.StateError,
		},
		{
			name: "provider_panics",
			sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
				panic("template exploded")
			},
			wantOutcome: dispatch.OutcomeError,
			wantState:   dispatch.StateError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{sendFn: tt.sendFn}
			reporter := &recordingReporter{}

			d := dispatch.New(provider, dispatch.Config{
				Organizer: "organizer@example.com",
				Reporter:  reporter,
			})

			res, err := d.Send(context.Background(), validInput())

			if err != nil {
				t.Fatalf("Send returned error %v, want nil once the provider is reached", err)
			}

			if res.Outcome != tt.wantOutcome {
				t.Fatalf("got outcome %q, want %q", res.Outcome, tt.wantOutcome)
			}

			if got := d.State(); got != tt.wantState {
				t.Fatalf("got state %q, want %q", got, tt.wantState)
			}

			// exactly one provider call per attempt, no retries
			if provider.Count() != 1 {
				t.Fatalf("provider called %d times, want 1", provider.Count())
			}

			if reporter.Count() != 1 {
				t.Fatalf("reporter got %d notes, want 1", reporter.Count())
			}

			note := reporter.Last()

			if note.Kind != dispatch.NoteOutcome {
				t.Fatalf("got note kind %q, want %q", note.Kind, dispatch.NoteOutcome)
			}

			if note.Outcome != tt.wantOutcome {
				t.Fatalf("note outcome %q, want %q", note.Outcome, tt.wantOutcome)
			}

			if res.AttemptID == "" {
				t.Fatalf("expected a non-empty attempt id")
			}
		})
	}
}

func TestSendPreflightReject(t *testing.T) {
	tests := []struct {
		name     string
		statusFn func() mailer.ConfigStatus
		email    string
		wantErr  error
	}{
		{
			name: "not_configured",
			statusFn: func() mailer.ConfigStatus {
				return mailer.ConfigStatus{Configured: false, Message: "set RESEND_API_KEY"}
			},
			email:   "jane@example.com",
			wantErr: dispatch.ErrNotConfigured,
		},
		{
			name:    "missing_recipient",
			email:   "   ",
			wantErr: dispatch.ErrMissingRecipient,
		},
		{
			name:    "invalid_recipient",
			email:   "foo@bar",
			wantErr: dispatch.ErrInvalidRecipient,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			provider := &fakeProvider{statusFn: tt.statusFn}
			reporter := &recordingReporter{}

			d := dispatch.New(provider, dispatch.Config{Reporter: reporter})

			in := validInput()
			in.Email = tt.email

			res, err := d.Send(context.Background(), in)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}

			// the provider must never see a rejected attempt
			if provider.Count() != 0 {
				t.Fatalf("provider called %d times, want 0", provider.Count())
			}

			// sending was never entered
			if got := d.State(); got != dispatch.StateIdle {
				t.Fatalf("got state %q, want %q", got, dispatch.StateIdle)
			}

			if res.AttemptID != "" {
				t.Fatalf("expected empty result on pre-flight rejection, got %+v", res)
			}

			if reporter.Count() != 1 {
				t.Fatalf("reporter got %d notes, want 1", reporter.Count())
			}

			note := reporter.Last()

			if note.Kind != dispatch.NoteInput {
				t.Fatalf("got note kind %q, want %q", note.Kind, dispatch.NoteInput)
			}

			if note.Reason != dispatch.ReasonOf(tt.wantErr) {
				t.Fatalf("note reason %q, want %q", note.Reason, dispatch.ReasonOf(tt.wantErr))
			}
		})
	}
}

func TestSendStateSequence(t *testing.T) {
	var seq []dispatch.State

	provider := &fakeProvider{}

	d := dispatch.New(provider, dispatch.Config{
		OnState: func(s dispatch.State) { seq = append(seq, s) },
	})

	if _, err := d.Send(context.Background(), validInput()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	want := []dispatch.State{dispatch.StateSending, dispatch.StateSuccess}

	if len(seq) != len(want) {
		t.Fatalf("got transitions %v, want %v", seq, want)
	}

	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("transition %d = %q, want %q", i, seq[i], want[i])
		}
	}
}

// sending must still be exited when the provider panics

func TestSendStateSequenceOnPanic(t *testing.T) {
	var seq []dispatch.State

	provider := &fakeProvider{
		sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
			panic("boom")
		},
	}

	d := dispatch.New(provider, dispatch.Config{
		OnState: func(s dispatch.State) { seq = append(seq, s) },
	})

	if _, err := d.Send(context.Background(), validInput()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	want := []dispatch.State{dispatch.StateSending, dispatch.StateError}

	if len(seq) != len(want) {
		t.Fatalf("got transitions %v, want %v", seq, want)
	}

	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("transition %d = %q, want %q", i, seq[i], want[i])
		}
	}
}

func TestSendAssemblesRequest(t *testing.T) {
	provider := &fakeProvider{}

	fixed := time.Date(2025, 3, 9, 14, 30, 0, 0, time.UTC)

	d := dispatch.New(provider, dispatch.Config{
		Organizer: "organizer@example.com",
		Now:       func() time.Time { return fixed },
		NewCode:   func() string { return "EVT-1741530600000-A1B2C3" },
	})

	in := validInput()

	res, err := d.Send(context.Background(), in)

	if err != nil {
		t.Fatalf("Send: %v", err)
	}

	req := provider.Last()

	if req.RecipientName != in.Name || req.RecipientEmail != in.Email {
		t.Fatalf("recipient not carried over: %+v", req)
	}

	if req.EventTitle != in.EventTitle || req.EventDate != in.EventDate ||
		req.EventTime != in.EventTime || req.EventLocation != in.EventLocation ||
		req.EventPrice != in.EventPrice {
		t.Fatalf("event details not carried over: %+v", req)
	}

	if req.ConfirmationNumber != "EVT-1741530600000-A1B2C3" {
		t.Fatalf("got confirmation number %q", req.ConfirmationNumber)
	}

	// day first
	if req.RegistrationDate != "09/03/2025" {
		t.Fatalf("got registration date %q, want 09/03/2025", req.RegistrationDate)
	}

	if req.OrganizerEmail != "organizer@example.com" {
		t.Fatalf("got organizer %q", req.OrganizerEmail)
	}

	// static defaults fill the rest
	if req.EventDescription == "" || len(req.EventRequirements) == 0 || len(req.EventIncludes) == 0 {
		t.Fatalf("default content missing: %+v", req)
	}

	if res.Request.ConfirmationNumber != req.ConfirmationNumber {
		t.Fatalf("result and provider saw different requests")
	}
}

func TestSendMessages(t *testing.T) {
	t.Run("success_names_the_recipient", func(t *testing.T) {
		provider := &fakeProvider{}
		d := dispatch.New(provider, dispatch.Config{})

		res, err := d.Send(context.Background(), validInput())

		if err != nil {
			t.Fatalf("Send: %v", err)
		}

		if !strings.Contains(res.Message, "jane@example.com") {
			t.Fatalf("success message %q does not name the recipient", res.Message)
		}
	})

	t.Run("error_stays_generic", func(t *testing.T) {
		provider := &fakeProvider{
			sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
				return false, errors.New("dial tcp 10.0.0.1:587: i/o timeout")
			},
		}
		d := dispatch.New(provider, dispatch.Config{})

		res, err := d.Send(context.Background(), validInput())

		if err != nil {
			t.Fatalf("Send: %v", err)
		}

		// diagnostics belong in the log, not in the operator note
		if strings.Contains(res.Message, "dial tcp") || strings.Contains(res.Message, "10.0.0.1") {
			t.Fatalf("error message leaks diagnostics: %q", res.Message)
		}

		if !strings.Contains(res.Message, "try again") {
			t.Fatalf("error message %q missing the retry hint", res.Message)
		}
	})
}

func TestSendRecordsMetrics(t *testing.T) {
	provider := &fakeProvider{}
	metrics := observability.NewDispatchMetrics()

	d := dispatch.New(provider, dispatch.Config{Metrics: metrics})

	// one success
	if _, err := d.Send(context.Background(), validInput()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// one rejection
	provider.sendFn = func(ctx context.Context, req confirmation.Request) (bool, error) {
		return false, nil
	}
	if _, err := d.Send(context.Background(), validInput()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// one transport error
	provider.sendFn = func(ctx context.Context, req confirmation.Request) (bool, error) {
		return false, errors.New("down")
	}
	if _, err := d.Send(context.Background(), validInput()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	// one pre-flight reject
	in := validInput()
	in.Email = ""
	if _, err := d.Send(context.Background(), in); err == nil {
		t.Fatalf("expected a pre-flight error")
	}

	snap := metrics.Snapshot()

	if snap.Attempts != 3 {
		t.Fatalf("attempts = %d, want 3", snap.Attempts)
	}
	if snap.Succeeded != 1 || snap.Failed != 1 || snap.Errored != 1 {
		t.Fatalf("outcome counts = %d/%d/%d, want 1/1/1", snap.Succeeded, snap.Failed, snap.Errored)
	}
	if snap.PreflightRejected != 1 {
		t.Fatalf("preflightRejected = %d, want 1", snap.PreflightRejected)
	}
	if snap.DurationCount != 3 {
		t.Fatalf("durationCount = %d, want 3", snap.DurationCount)
	}
}
