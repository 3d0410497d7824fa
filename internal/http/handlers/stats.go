package handlers

import (
	"net/http"

	"github.com/geocoder89/confirmhub/internal/observability"
	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	metrics *observability.DispatchMetrics
}

func NewStatsHandler(metrics *observability.DispatchMetrics) *StatsHandler {
	return &StatsHandler{metrics: metrics}
}

func (h *StatsHandler) GetStats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.metrics.Snapshot())
}
