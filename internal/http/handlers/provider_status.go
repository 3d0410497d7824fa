package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type ProviderStatusHandler struct {
	status StatusSource
}

func NewProviderStatusHandler(status StatusSource) *ProviderStatusHandler {
	return &ProviderStatusHandler{status: status}
}

// GetStatus reports whether the mail provider is ready to send. The payload
// only changes on redeploy, so it is served with an ETag.
func (h *ProviderStatusHandler) GetStatus(ctx *gin.Context) {
	RespondJSONWithETag(ctx, http.StatusOK, h.status.ConfigStatus())
}
