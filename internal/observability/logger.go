package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger: JSON to stdout, debug level in dev,
// trace ids attached whenever the context carries a live span. Every line
// names the service so shared sinks stay searchable.
func NewLogger(env string) *slog.Logger {
	level := slog.LevelInfo

	if env == "dev" {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})

	base := handler.WithAttrs([]slog.Attr{
		slog.String("service", "confirmhub"),
		slog.String("env", env),
	})

	return slog.New(NewTraceHandler(base))
}
