package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

var ErrCircuitOpen = errors.New("circuit breaker open")

type ProtectedProviderConfig struct {
	Timeout          time.Duration // hard timeout per send
	FailureThreshold int           // consecutive transport errors to open circuit
	Cooldown         time.Duration // how long to stay open before half-open
	HalfOpenMaxCalls int           // allow N trial calls in half-open
}

// ProtectedProvider wraps a binding with a circuit breaker. It is opt-in at
// wiring time and is not a retry layer: a tripped breaker fails the attempt.
type ProtectedProvider struct {
	inner Provider
	cfg   ProtectedProviderConfig
	mu    sync.Mutex

	state string // "closed" | "open" | "half_open"

	consecutiveFailures int
	openedAt            time.Time
	halfOpenInFlight    int
}

func NewProtectedProvider(inner Provider, cfg ProtectedProviderConfig) *ProtectedProvider {
	//defaults
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 15 * time.Second
	}
	if cfg.HalfOpenMaxCalls <= 0 {
		cfg.HalfOpenMaxCalls = 1
	}

	return &ProtectedProvider{
		inner: inner,
		cfg:   cfg,
		state: "closed",
	}
}

func (p *ProtectedProvider) Send(ctx context.Context, req confirmation.Request) (bool, error) {
	// fail-fast gate

	if !p.allowRequest() {
		return false, ErrCircuitOpen
	}
	// bound the call; the dispatch core itself sets no deadline

	sendCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()

	ok, err := p.inner.Send(sendCtx, req)

	// a polite rejection means the provider answered; only errors count
	p.afterRequest(err)

	return ok, err
}

func (p *ProtectedProvider) ConfigStatus() ConfigStatus {
	return p.inner.ConfigStatus()
}

func (p *ProtectedProvider) allowRequest() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch p.state {
	case "closed":
		return true
	case "open":
		// cooldown has passed? move to half open

		if time.Since(p.openedAt) >= p.cfg.Cooldown {
			p.state = "half_open"
			p.halfOpenInFlight = 1 // this call is the first trial
			return true
		}
		return false
	case "half_open":
		if p.halfOpenInFlight >= p.cfg.HalfOpenMaxCalls {
			return false
		}
		p.halfOpenInFlight++
		return true

	default:
		// safe fallback
		return true
	}

}

func (p *ProtectedProvider) afterRequest(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// half-open call just finished
	if p.state == "half_open" && p.halfOpenInFlight > 0 {
		p.halfOpenInFlight--
	}

	if err == nil {
		// success => close circuit and reset counters
		p.consecutiveFailures = 0
		p.state = "closed"
		return
	}

	// failure
	p.consecutiveFailures++

	// if half-open failed, reopen immediately
	if p.state == "half_open" {
		p.state = "open"
		p.openedAt = time.Now()
		return
	}

	// if failures reached threshold, open circuit
	if p.consecutiveFailures >= p.cfg.FailureThreshold {
		p.state = "open"
		p.openedAt = time.Now()
	}
}
