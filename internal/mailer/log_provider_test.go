package mailer

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLogProviderAccepts(t *testing.T) {
	p := NewLogProvider(discardLogger())

	ok, err := p.Send(context.Background(), confirmation.Request{RecipientEmail: "jane@example.com"})

	if err != nil || !ok {
		t.Fatalf("got ok=%v err=%v, want accepted", ok, err)
	}

	if st := p.ConfigStatus(); !st.Configured {
		t.Fatalf("log provider should always report configured")
	}
}

func TestLogProviderSimulatedReject(t *testing.T) {
	t.Setenv("PROVIDER_REJECT", "1")

	p := NewLogProvider(discardLogger())

	ok, err := p.Send(context.Background(), confirmation.Request{RecipientEmail: "jane@example.com"})

	if err != nil {
		t.Fatalf("a rejection must not be an error, got %v", err)
	}

	if ok {
		t.Fatalf("expected the simulated rejection")
	}
}

func TestLogProviderSimulatedOutage(t *testing.T) {
	t.Setenv("PROVIDER_FAIL", "1")

	p := NewLogProvider(discardLogger())

	if _, err := p.Send(context.Background(), confirmation.Request{RecipientEmail: "jane@example.com"}); err == nil {
		t.Fatalf("expected the simulated outage error")
	}
}

func TestLogProviderHonorsCancellation(t *testing.T) {
	t.Setenv("PROVIDER_SLEEP_MS", "5000")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewLogProvider(discardLogger())

	_, err := p.Send(ctx, confirmation.Request{RecipientEmail: "jane@example.com"})

	if err == nil {
		t.Fatalf("expected a context error from the cancelled send")
	}
}
