package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Env  string
	Port int

	// mail delivery
	Provider       string // "log" | "resend" | "smtp"
	OrganizerEmail string
	FromEmail      string
	ResendAPIKey   string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPassword   string

	// circuit breaker (0 keeps the decorator off)
	BreakerThreshold  int
	BreakerCooldownMS int

	// caller-side bounds; the dispatch core sets no deadline of its own
	DispatchTimeoutMS int
	GateTTLMS         int

	// auth (both empty leaves the API open, dev only)
	JWTSecret      string
	JWTAccessTTLMn int
	APIKeyHash     string

	// infra
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	OTLPEndpoint  string

	AllowedOrigins []string

	RateLimitPerMinute int
	MaxBodyBytes       int
}

func Load() Config {
	env := getEnv("APP_ENV", "dev")
	port := getEnvInt("PORT", 8080)

	return Config{
		Env:  env,
		Port: port,

		Provider:       getEnv("MAIL_PROVIDER", "log"),
		OrganizerEmail: getEnv("ORGANIZER_EMAIL", "organizer@confirmhub.dev"),
		FromEmail:      getEnv("MAIL_FROM", ""),
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),

		BreakerThreshold:  getEnvInt("BREAKER_THRESHOLD", 0),
		BreakerCooldownMS: getEnvInt("BREAKER_COOLDOWN_MS", 15000),

		DispatchTimeoutMS: getEnvInt("DISPATCH_TIMEOUT_MS", 10000),
		GateTTLMS:         getEnvInt("GATE_TTL_MS", 30000),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTAccessTTLMn: getEnvInt("JWT_ACCESS_TTL_MINUTES", 30),
		APIKeyHash:     getEnv("API_KEY_HASH", ""),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),

		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "")),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),
		MaxBodyBytes:       getEnvInt("MAX_BODY_BYTES", 32*1024),
	}
}

// DispatchTimeout is the HTTP layer's bound on one attempt.
func (c Config) DispatchTimeout() time.Duration {
	return time.Duration(c.DispatchTimeoutMS) * time.Millisecond
}

func (c Config) GateTTL() time.Duration {
	return time.Duration(c.GateTTLMS) * time.Millisecond
}

func (c Config) BreakerCooldown() time.Duration {
	return time.Duration(c.BreakerCooldownMS) * time.Millisecond
}

// AuthDisabled reports whether no credential scheme is configured at all.
func (c Config) AuthDisabled() bool {
	return c.JWTSecret == "" && c.APIKeyHash == ""
}

func WithTimeout(duration time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), duration)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		num, err := strconv.Atoi(v)

		if err != nil {
			fmt.Println(err)
		}

		return num
	}
	return fallback
}
