package store

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// MutationEvent captures lightweight execution telemetry for one store
// mutation. Found is false when the target ID did not resolve and the
// mutation was skipped.
type MutationEvent struct {
	Name      string
	Duration  time.Duration
	Found     bool
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// MutationObserver receives mutation events.
type MutationObserver interface {
	ObserveMutation(ctx context.Context, event MutationEvent)
}

// NoopMutationObserver ignores all events.
type NoopMutationObserver struct{}

func (NoopMutationObserver) ObserveMutation(context.Context, MutationEvent) {}

type logMutationObserver struct {
	logger *slog.Logger
}

// NewLogMutationObserver writes store mutation events to the provided writer.
func NewLogMutationObserver(w io.Writer, level slog.Level) MutationObserver {
	if w == nil {
		return NoopMutationObserver{}
	}
	return NewSlogMutationObserver(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// NewSlogMutationObserver reports mutation events through an existing logger.
func NewSlogMutationObserver(logger *slog.Logger) MutationObserver {
	if logger == nil {
		return NoopMutationObserver{}
	}
	return &logMutationObserver{logger: logger}
}

func (o *logMutationObserver) ObserveMutation(ctx context.Context, event MutationEvent) {
	attrs := make([]any, 0, 8+len(event.Fields)*2)
	attrs = append(attrs,
		"mutation", event.Name,
		"duration_ms", event.Duration.Milliseconds(),
		"found", event.Found,
	)
	for k, v := range event.Fields {
		attrs = append(attrs, k, v)
	}
	switch {
	case event.Err != nil:
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "store_mutation", attrs...)
	case !event.Found:
		o.logger.WarnContext(ctx, "store_mutation", attrs...)
	default:
		o.logger.InfoContext(ctx, "store_mutation", attrs...)
	}
}
