package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
	"github.com/geocoder89/confirmhub/internal/mailer"
	"github.com/geocoder89/confirmhub/internal/observability"
)

// Registration dates are rendered day-first for the operator.
const RegistrationDateLayout = "02/01/2006"

const tracerName = "confirmhub/dispatch"

// Config wires a Dispatcher. Everything beyond the provider has a sensible
// zero-value fallback.
type Config struct {
	Organizer string               // reply-to shown in every confirmation
	Content   confirmation.Content // static copy; zero value means DefaultContent

	Log      *slog.Logger
	Reporter Reporter    // exactly one note per attempt lands here
	OnState  func(State) // observes every transition

	Metrics *observability.DispatchMetrics
	Prom    *observability.Prom

	Now     func() time.Time // test seam
	NewCode func() string    // test seam
}

// Dispatcher runs the send pipeline: pre-flight, derivation, assembly, one
// provider call, outcome mapping. It never retries and sets no deadline of
// its own. Callers keep concurrent attempts apart with a gate; the state
// field is mutex-guarded regardless.
type Dispatcher struct {
	provider mailer.Provider
	cfg      Config

	mu    sync.Mutex
	state State
}

func New(provider mailer.Provider, cfg Config) *Dispatcher {
	// defaults
	if cfg.Log == nil {
		cfg.Log = slog.Default()
	}
	if cfg.Reporter == nil {
		cfg.Reporter = NopReporter{}
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.NewCode == nil {
		cfg.NewCode = GenerateCode
	}
	if cfg.Content.Description == "" && cfg.Content.Requirements == nil && cfg.Content.Includes == nil {
		cfg.Content = confirmation.DefaultContent()
	}

	return &Dispatcher{
		provider: provider,
		cfg:      cfg,
		state:    StateIdle,
	}
}

// Result describes one settled attempt.
type Result struct {
	AttemptID string
	Outcome   Outcome
	Request   confirmation.Request
	Message   string
	Duration  time.Duration
}

// Send runs one attempt end to end. A non-nil error is always a pre-flight
// sentinel (the provider was never reached); once the provider is invoked
// the attempt settles into Result.Outcome and the error stays nil.
func (d *Dispatcher) Send(ctx context.Context, in confirmation.CreateRequest) (Result, error) {
	attemptID := uuid.NewString()

	status := d.provider.ConfigStatus()

	if v := IsSendable(status, in.Email); !v.OK {
		if d.cfg.Metrics != nil {
			d.cfg.Metrics.IncPreflightRejected()
		}
		if d.cfg.Prom != nil {
			d.cfg.Prom.PreflightRejected.WithLabelValues(string(v.Reason)).Inc()
		}

		msg := ReasonMessage(v.Reason)
		d.cfg.Reporter.Report(ctx, Note{
			Kind:      NoteInput,
			Reason:    v.Reason,
			Message:   msg,
			Recipient: in.Email,
		})

		d.cfg.Log.Warn("attempt rejected before dispatch",
			"attempt_id", attemptID,
			"reason", string(v.Reason),
		)
		return Result{}, v.Reason.Err()
	}

	number := d.cfg.NewCode()
	registrationDate := d.cfg.Now().Format(RegistrationDateLayout)

	req := confirmation.Build(in, number, registrationDate, d.cfg.Content, d.cfg.Organizer)

	if d.cfg.Metrics != nil {
		d.cfg.Metrics.IncAttempts()
	}

	start := time.Now()
	outcome := d.dispatch(ctx, attemptID, req)
	elapsed := time.Since(start)

	if d.cfg.Metrics != nil {
		switch outcome {
		case OutcomeSuccess:
			d.cfg.Metrics.IncSucceeded()
		case OutcomeFailed:
			d.cfg.Metrics.IncFailed()
		default:
			d.cfg.Metrics.IncErrored()
		}
		d.cfg.Metrics.ObserveDuration(elapsed)
	}
	if d.cfg.Prom != nil {
		d.cfg.Prom.DispatchOutcomes.WithLabelValues(string(outcome)).Inc()
		d.cfg.Prom.DispatchDuration.WithLabelValues(string(outcome)).Observe(elapsed.Seconds())
	}

	msg := outcomeMessage(outcome, req.RecipientEmail)

	d.cfg.Reporter.Report(ctx, Note{
		Kind:      NoteOutcome,
		Outcome:   outcome,
		Message:   msg,
		Recipient: req.RecipientEmail,
	})

	return Result{
		AttemptID: attemptID,
		Outcome:   outcome,
		Request:   req,
		Message:   msg,
		Duration:  elapsed,
	}, nil
}

// dispatch owns the sending window: exactly one provider call, sending
// entered right before it and always exited, panics folded into the error
// outcome.
func (d *Dispatcher) dispatch(ctx context.Context, attemptID string, req confirmation.Request) (outcome Outcome) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "dispatch.send")
	defer span.End()

	if d.cfg.Prom != nil {
		d.cfg.Prom.DispatchInFlight.Inc()
		defer d.cfg.Prom.DispatchInFlight.Dec()
	}

	d.transition(StateSending)

	defer func() {
		if r := recover(); r != nil {
			d.cfg.Log.Error("provider panicked",
				"attempt_id", attemptID,
				"panic", fmt.Sprint(r),
			)
			outcome = OutcomeError
		}
		d.transition(outcome.TerminalState())
		span.SetAttributes(attribute.String("dispatch.outcome", string(outcome)))
	}()

	ok, err := d.provider.Send(ctx, req)

	switch {
	case err != nil:
		d.cfg.Log.Error("provider send failed",
			"attempt_id", attemptID,
			"email", req.RecipientEmail,
			"err", err,
		)
		return OutcomeError
	case ok:
		d.cfg.Log.Info("provider accepted confirmation",
			"attempt_id", attemptID,
			"email", req.RecipientEmail,
			"confirmation", req.ConfirmationNumber,
		)
		return OutcomeSuccess
	default:
		d.cfg.Log.Warn("provider rejected confirmation",
			"attempt_id", attemptID,
			"email", req.RecipientEmail,
		)
		return OutcomeFailed
	}
}

func (d *Dispatcher) transition(next State) {
	d.mu.Lock()
	d.state = next
	d.mu.Unlock()

	if d.cfg.OnState != nil {
		d.cfg.OnState(next)
	}
}

// State reports the current lifecycle state.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}
