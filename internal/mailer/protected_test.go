package mailer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

type stubProvider struct {
	calls  int
	sendFn func(ctx context.Context, req confirmation.Request) (bool, error)
}

func (s *stubProvider) Send(ctx context.Context, req confirmation.Request) (bool, error) {
	s.calls++

	if s.sendFn != nil {
		return s.sendFn(ctx, req)
	}

	return true, nil
}

func (s *stubProvider) ConfigStatus() ConfigStatus {
	return ConfigStatus{Configured: true, Message: "stub"}
}

func TestProtectedProviderOpensAfterThreshold(t *testing.T) {
	inner := &stubProvider{
		sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
			return false, errors.New("connect refused")
		},
	}

	p := NewProtectedProvider(inner, ProtectedProviderConfig{
		FailureThreshold: 2,
		Cooldown:         time.Minute,
	})

	ctx := context.Background()
	req := confirmation.Request{RecipientEmail: "jane@example.com"}

	// failures below the threshold pass through
	for i := 0; i < 2; i++ {
		if _, err := p.Send(ctx, req); err == nil {
			t.Fatalf("call %d: expected the inner error", i)
		}
	}

	// tripped: the inner provider is no longer reached
	_, err := p.Send(ctx, req)

	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}

	if inner.calls != 2 {
		t.Fatalf("inner called %d times, want 2", inner.calls)
	}
}

// a rejection is an answer, not an outage; it must not trip the breaker

func TestProtectedProviderIgnoresRejections(t *testing.T) {
	inner := &stubProvider{
		sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
			return false, nil
		},
	}

	p := NewProtectedProvider(inner, ProtectedProviderConfig{
		FailureThreshold: 1,
		Cooldown:         time.Minute,
	})

	ctx := context.Background()
	req := confirmation.Request{RecipientEmail: "jane@example.com"}

	for i := 0; i < 5; i++ {
		ok, err := p.Send(ctx, req)

		if err != nil {
			t.Fatalf("call %d: unexpected error %v", i, err)
		}

		if ok {
			t.Fatalf("call %d: stub should reject", i)
		}
	}

	if inner.calls != 5 {
		t.Fatalf("inner called %d times, want 5", inner.calls)
	}
}

func TestProtectedProviderHalfOpenRecovery(t *testing.T) {
	failing := true

	inner := &stubProvider{
		sendFn: func(ctx context.Context, req confirmation.Request) (bool, error) {
			if failing {
				return false, errors.New("connect refused")
			}
			return true, nil
		},
	}

	p := NewProtectedProvider(inner, ProtectedProviderConfig{
		FailureThreshold: 1,
		Cooldown:         20 * time.Millisecond,
	})

	ctx := context.Background()
	req := confirmation.Request{RecipientEmail: "jane@example.com"}

	// trip it
	if _, err := p.Send(ctx, req); err == nil {
		t.Fatalf("expected the inner error")
	}

	if _, err := p.Send(ctx, req); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("got %v, want ErrCircuitOpen", err)
	}

	// after the cooldown a trial call goes through and closes the circuit
	time.Sleep(30 * time.Millisecond)
	failing = false

	ok, err := p.Send(ctx, req)

	if err != nil || !ok {
		t.Fatalf("half-open trial: got ok=%v err=%v", ok, err)
	}

	// closed again: calls flow freely
	if _, err := p.Send(ctx, req); err != nil {
		t.Fatalf("after recovery: %v", err)
	}
}

func TestProtectedProviderPassesStatusThrough(t *testing.T) {
	p := NewProtectedProvider(&stubProvider{}, ProtectedProviderConfig{})

	st := p.ConfigStatus()

	if !st.Configured || st.Message != "stub" {
		t.Fatalf("status not passed through: %+v", st)
	}
}
