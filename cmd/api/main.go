package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/geocoder89/confirmhub/internal/auth"
	"github.com/geocoder89/confirmhub/internal/config"
	"github.com/geocoder89/confirmhub/internal/dispatch"
	"github.com/geocoder89/confirmhub/internal/feedback"
	"github.com/geocoder89/confirmhub/internal/gate"
	httpx "github.com/geocoder89/confirmhub/internal/http"
	"github.com/geocoder89/confirmhub/internal/http/middlewares"
	"github.com/geocoder89/confirmhub/internal/mailer"
	"github.com/geocoder89/confirmhub/internal/observability"
	"github.com/geocoder89/confirmhub/internal/redisclient"
)

func main() {
	// .env is a local convenience; deployments set the environment directly
	_ = godotenv.Load()

	// Load the config set up
	cfg := config.Load()

	// start up the observability logger
	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	// tracing only runs when a collector endpoint is configured
	if cfg.OTLPEndpoint != "" {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		shutdown, err := observability.InitTracer(ctx, "confirmhub", cfg.Env, cfg.OTLPEndpoint)
		cancel()

		if err != nil {
			log.Error("tracer init failed", "err", err)
		} else {
			defer func() {
				sctx, scancel := config.WithTimeout(5 * time.Second)
				defer scancel()
				_ = shutdown(sctx)
			}()
		}
	}

	// send gate: shared across replicas when redis is configured,
	// per-process otherwise
	var sendGate gate.Gate
	var pingGate func() error

	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer func() { _ = rc.Close() }()

		sendGate = gate.NewRedisGate(rc.Raw(), cfg.GateTTL())
		pingGate = func() error {
			ctx, cancel := config.WithTimeout(1 * time.Second)
			defer cancel()

			return rc.Ping(ctx)
		}

		log.Info("send gate backed by redis", "addr", cfg.RedisAddr)
	} else {
		sendGate = gate.NewMemoryGate(cfg.GateTTL())
	}

	provider := buildProvider(cfg, log)

	if cfg.BreakerThreshold > 0 {
		provider = mailer.NewProtectedProvider(provider, mailer.ProtectedProviderConfig{
			FailureThreshold: cfg.BreakerThreshold,
			Cooldown:         cfg.BreakerCooldown(),
		})
	}

	registry := prometheus.NewRegistry()
	prom := observability.NewProm(registry)
	metrics := observability.NewDispatchMetrics()

	dispatcher := dispatch.New(provider, dispatch.Config{
		Organizer: cfg.OrganizerEmail,
		Log:       log,
		Reporter:  feedback.NewLogReporter(log),
		Metrics:   metrics,
		Prom:      prom,
	})

	// a typed nil manager must not reach the middleware interface
	var authMW *middlewares.AuthMiddleware

	if cfg.JWTSecret != "" {
		jwtManager := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTAccessTTLMn)*time.Minute)
		authMW = middlewares.NewAuthMiddleware(jwtManager, cfg.APIKeyHash)
	} else {
		authMW = middlewares.NewAuthMiddleware(nil, cfg.APIKeyHash)
	}

	// set up routers with the wiring above
	router := httpx.NewRouter(httpx.RouterDeps{
		Cfg:      &cfg,
		Log:      log,
		Sender:   dispatcher,
		Status:   provider,
		Gate:     sendGate,
		Metrics:  metrics,
		Prom:     prom,
		Registry: registry,
		Auth:     authMW,
		PingGate: pingGate,
	})

	// server set up
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// start server using a concurrent go-routine driven anonymous function.

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "provider", cfg.Provider)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			log.Error("server failed", "err", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	log.Info("server shutting down")

	shutdownCh := make(chan struct{})

	go func() {
		defer close(shutdownCh)

		ctxTimeOut := 10 * time.Second

		ctx, cancel := config.WithTimeout(ctxTimeOut)

		defer cancel()

		err := srv.Shutdown(ctx)

		if err != nil {
			log.Error("graceful shutdown failed", "err", err)

			return
		}
	}()

	select {
	case <-shutdownCh:
		log.Info("shutdown complete")

	case <-time.After(12 * time.Second):
		log.Error("shutdown timed out")
	}
}

// buildProvider picks the delivery backend. Anything unrecognized falls back
// to the log provider so a fresh checkout runs without credentials.
func buildProvider(cfg config.Config, log *slog.Logger) mailer.Provider {
	switch cfg.Provider {
	case "resend":
		return mailer.NewResendProvider(cfg.ResendAPIKey, cfg.FromEmail)
	case "smtp":
		return mailer.NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.FromEmail)
	default:
		return mailer.NewLogProvider(log)
	}
}
