package feedback

import (
	"context"
	"log/slog"

	"github.com/geocoder89/confirmhub/internal/authctx"
	"github.com/geocoder89/confirmhub/internal/dispatch"
)

// LogReporter surfaces the per-attempt status note through the process
// logger. Note messages are already operator-safe; provider diagnostics are
// the dispatcher's to log.
type LogReporter struct {
	log *slog.Logger
}

func NewLogReporter(log *slog.Logger) *LogReporter { return &LogReporter{log: log} }

func (r *LogReporter) Report(ctx context.Context, note dispatch.Note) {
	attrs := []any{
		"kind", string(note.Kind),
		"message", note.Message,
	}

	if note.Reason != "" {
		attrs = append(attrs, "reason", string(note.Reason))
	}
	if note.Outcome != "" {
		attrs = append(attrs, "outcome", string(note.Outcome))
	}
	if note.Outcome == dispatch.OutcomeSuccess {
		attrs = append(attrs, "recipient", note.Recipient)
	}
	if caller, ok := authctx.CallerFrom(ctx); ok {
		attrs = append(attrs, "caller", caller)
	}

	if note.Kind == dispatch.NoteOutcome && note.Outcome == dispatch.OutcomeSuccess {
		r.log.InfoContext(ctx, "send note", attrs...)
		return
	}
	r.log.WarnContext(ctx, "send note", attrs...)
}
