package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/geocoder89/confirmhub/internal/auth"
	"github.com/geocoder89/confirmhub/internal/config"
	"github.com/geocoder89/confirmhub/internal/gate"
	"github.com/geocoder89/confirmhub/internal/http/handlers"
	"github.com/geocoder89/confirmhub/internal/http/middlewares"
	"github.com/geocoder89/confirmhub/internal/observability"
)

// RouterDeps bundles everything the HTTP surface needs. Optional fields may
// stay nil and the matching route or middleware is skipped.
type RouterDeps struct {
	Cfg *config.Config
	Log *slog.Logger

	Sender handlers.Sender
	Status handlers.StatusSource
	Gate   gate.Gate

	Metrics  *observability.DispatchMetrics
	Prom     *observability.Prom
	Registry *prometheus.Registry

	Auth *middlewares.AuthMiddleware

	PingGate func() error
}

func NewRouter(d RouterDeps) *gin.Engine {
	if d.Log == nil {
		d.Log = slog.Default()
	}

	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.AllowedOrigins))
	r.Use(otelgin.Middleware("confirmhub"))

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	r.Use(middlewares.MaxBodyBytes(int64(d.Cfg.MaxBodyBytes)))

	// health
	h := handlers.NewHealthHandler(d.PingGate)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if d.Registry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.DocsUI)
	r.GET("/docs/openapi.yaml", handlers.DocsOpenAPI)

	limiter := middlewares.NewRateLimiter(d.Cfg.RateLimitPerMinute, time.Minute)

	api := r.Group("/api/v1")
	api.Use(middlewares.RequireJSON())
	api.Use(limiter.RateLimiterMiddleware(middlewares.KeyByCallerOrIP))

	authed := d.Auth != nil && !d.Cfg.AuthDisabled()

	if authed {
		api.Use(d.Auth.RequireAuth())
	} else {
		d.Log.Warn("starting with authentication disabled; set JWT_SECRET or API_KEY_HASH")
	}

	// wire up handlers
	confirmations := handlers.NewConfirmationsHandler(d.Sender, d.Status, d.Gate, d.Cfg.DispatchTimeout())
	providerStatus := handlers.NewProviderStatusHandler(d.Status)
	stats := handlers.NewStatsHandler(d.Metrics)

	if authed {
		api.POST("/confirmations", d.Auth.RequireRole(auth.RoleOperator), confirmations.SendConfirmation)
		api.GET("/provider/status", d.Auth.RequireRole(auth.RoleViewer), providerStatus.GetStatus)
		api.GET("/stats", d.Auth.RequireRole(auth.RoleViewer), stats.GetStats)
	} else {
		api.POST("/confirmations", confirmations.SendConfirmation)
		api.GET("/provider/status", providerStatus.GetStatus)
		api.GET("/stats", stats.GetStats)
	}

	return r
}
