package mailer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
)

// LogProvider is the development binding: it logs the request instead of
// delivering it. Env knobs simulate a slow, rejecting or failing provider.
type LogProvider struct {
	log *slog.Logger
}

func NewLogProvider(log *slog.Logger) *LogProvider { return &LogProvider{log: log} }

func (p *LogProvider) Send(ctx context.Context, req confirmation.Request) (bool, error) {
	// Optional: simulate slow provider
	if msStr := os.Getenv("PROVIDER_SLEEP_MS"); msStr != "" {
		ms, _ := strconv.Atoi(msStr)
		if ms > 0 {
			select {
			case <-time.After(time.Duration(ms) * time.Millisecond):
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
	}

	// Optional: simulate provider outage
	if os.Getenv("PROVIDER_FAIL") == "1" {
		return false, fmt.Errorf("provider down (simulated)")
	}

	// Optional: simulate a polite rejection
	if os.Getenv("PROVIDER_REJECT") == "1" {
		p.log.Warn("confirmation rejected (simulated)", "email", req.RecipientEmail)
		return false, nil
	}

	p.log.Info("confirmation mail",
		"email", req.RecipientEmail,
		"name", req.RecipientName,
		"event", req.EventTitle,
		"confirmation", req.ConfirmationNumber,
	)
	return true, nil
}

func (p *LogProvider) ConfigStatus() ConfigStatus {
	return ConfigStatus{Configured: true, Message: "log provider (no real delivery)"}
}
