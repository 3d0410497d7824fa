package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Prom struct {
	RequestsTotal    *prometheus.CounterVec
	RequestsDuration *prometheus.HistogramVec
	InFlight         *prometheus.GaugeVec

	// Dispatch (send pipeline)

	DispatchOutcomes  *prometheus.CounterVec
	DispatchDuration  *prometheus.HistogramVec
	DispatchInFlight  prometheus.Gauge
	PreflightRejected *prometheus.CounterVec
}

func NewProm(reg prometheus.Registerer) *Prom {
	p := &Prom{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "confirmhub",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests processed",
			},
			[]string{"method", "route", "status"},
		),
		RequestsDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "confirmhub",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency distributions.",
				// Sane initial defaults
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{"method", "route", "status"},
		),
		InFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "confirmhub",
				Name:      "http_in_flight_requests",
				Help:      "Current number of in-flight HTTP requests.",
			},
			[]string{"method", "route"},
		),

		DispatchOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "confirmhub",
				Subsystem: "dispatch",
				Name:      "outcomes_total",
				Help:      "Settled send attempts by outcome.",
			},
			[]string{"outcome"}, // outcome=success|failed|error
		),
		DispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "confirmhub",
				Subsystem: "dispatch",
				Name:      "duration_seconds",
				Help:      "Provider call duration by outcome.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		DispatchInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "confirmhub",
				Subsystem: "dispatch",
				Name:      "in_flight",
				Help:      "Send attempts currently at the provider (per process).",
			},
		),
		PreflightRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "confirmhub",
				Subsystem: "dispatch",
				Name:      "preflight_rejected_total",
				Help:      "Attempts stopped before the provider, by reason.",
			},
			[]string{"reason"}, // reason=missing_recipient|invalid_recipient|not_configured
		),
	}
	reg.MustRegister(p.RequestsTotal, p.RequestsDuration, p.InFlight, p.DispatchOutcomes, p.DispatchDuration, p.DispatchInFlight, p.PreflightRejected)

	return p
}

func (p *Prom) GinHandleMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		// route template is only available after routing; best effort:
		route := ctx.FullPath()

		if route == "" {
			route = "unmatched"
		}

		method := ctx.Request.Method
		p.InFlight.WithLabelValues(method, route).Inc()
		defer p.InFlight.WithLabelValues(method, route).Dec()
		ctx.Next()

		status := strconv.Itoa(ctx.Writer.Status())
		secs := time.Since(start).Seconds()

		p.RequestsTotal.WithLabelValues(method, route, status).Inc()
		p.RequestsDuration.WithLabelValues(method, route, status).Observe(secs)
	}
}
