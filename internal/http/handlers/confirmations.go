package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/geocoder89/confirmhub/internal/dispatch"
	"github.com/geocoder89/confirmhub/internal/domain/confirmation"
	"github.com/geocoder89/confirmhub/internal/gate"
	"github.com/geocoder89/confirmhub/internal/mailer"
	"github.com/gin-gonic/gin"
)

// Keep this small interface so tests can fake it easily.
type Sender interface {
	Send(ctx context.Context, in confirmation.CreateRequest) (dispatch.Result, error)
}

type StatusSource interface {
	ConfigStatus() mailer.ConfigStatus
}

type ConfirmationsHandler struct {
	sender  Sender
	status  StatusSource
	gate    gate.Gate
	timeout time.Duration
}

func NewConfirmationsHandler(sender Sender, status StatusSource, g gate.Gate, timeout time.Duration) *ConfirmationsHandler {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &ConfirmationsHandler{sender: sender, status: status, gate: g, timeout: timeout}
}

type sendConfirmationResponse struct {
	Outcome            string `json:"outcome"`
	Message            string `json:"message"`
	Recipient          string `json:"recipient,omitempty"`
	ConfirmationNumber string `json:"confirmationNumber,omitempty"`
	RegistrationDate   string `json:"registrationDate,omitempty"`
	AttemptID          string `json:"attemptId"`
}

func (h *ConfirmationsHandler) SendConfirmation(ctx *gin.Context) {
	var req confirmation.CreateRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// fail-fast gate: an unconfigured provider disables sending outright.
	if h.status != nil {
		if st := h.status.ConfigStatus(); !st.Configured {
			RespondUnavailable(ctx, "provider_not_configured", "Email delivery is not configured. Contact the administrator.")
			return
		}
	}

	// one in-flight send per attendee; the dispatcher does not queue.
	key := strings.ToLower(strings.TrimSpace(req.Email))

	if h.gate != nil && key != "" {
		acquired, err := h.gate.TryAcquire(ctx.Request.Context(), key)

		if err != nil {
			RespondInternal(ctx, "Could not reserve the send slot")
			return
		}

		if !acquired {
			RespondConflict(ctx, "send_in_progress", "A confirmation for this attendee is already being sent.")
			return
		}

		// release must survive a cancelled request context
		defer func() { _ = h.gate.Release(context.Background(), key) }()
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), h.timeout)
	defer cancel()

	res, err := h.sender.Send(cctx, req)

	if err != nil {
		switch {
		case errors.Is(err, dispatch.ErrNotConfigured):
			RespondUnavailable(ctx, "provider_not_configured", "Email delivery is not configured. Contact the administrator.")
		case errors.Is(err, dispatch.ErrMissingRecipient), errors.Is(err, dispatch.ErrInvalidRecipient):
			reason := dispatch.ReasonOf(err)
			RespondError(ctx, http.StatusBadRequest, string(reason), dispatch.ReasonMessage(reason), nil)
		default:
			RespondInternal(ctx, "Could not send the confirmation")
		}
		return
	}

	switch res.Outcome {
	case dispatch.OutcomeSuccess:
		ctx.JSON(http.StatusOK, sendConfirmationResponse{
			Outcome:            string(res.Outcome),
			Message:            res.Message,
			Recipient:          res.Request.RecipientEmail,
			ConfirmationNumber: res.Request.ConfirmationNumber,
			RegistrationDate:   res.Request.RegistrationDate,
			AttemptID:          res.AttemptID,
		})
	case dispatch.OutcomeFailed:
		RespondError(ctx, http.StatusBadGateway, "provider_rejected", res.Message, nil)
	default:
		RespondError(ctx, http.StatusBadGateway, "provider_error", res.Message, nil)
	}
}
