package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

// Outcome classifies how a store operation ended.
type Outcome string

const (
	OutcomeOK       Outcome = "ok"
	OutcomeRejected Outcome = "rejected" // validation failed, nothing was written
	OutcomeFailed   Outcome = "failed"   // storage failed, collections rolled back
)

func outcomeOf(err error) Outcome {
	if err == nil {
		return OutcomeOK
	}
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		return OutcomeRejected
	}
	return OutcomeFailed
}

// UseCaseEvent describes one finished store operation.
type UseCaseEvent struct {
	Name     string
	Outcome  Outcome
	Duration time.Duration
	// Version is the store version after the operation.
	Version uint64
	Err     error
	Fields  map[string]any
}

// UseCaseObserver receives an event after every store operation.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *slog.Logger
}

// NewLogUseCaseObserver logs successful operations at debug, rejected input
// at warn and storage failures at error.
func NewLogUseCaseObserver(logger *slog.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger}
}

func (o *logUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]slog.Attr, 0, 5+len(keys))
	attrs = append(attrs,
		slog.String("op", event.Name),
		slog.String("outcome", string(event.Outcome)),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
		slog.Uint64("version", event.Version),
	)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, event.Fields[k]))
	}

	level := slog.LevelDebug
	switch event.Outcome {
	case OutcomeRejected:
		level = slog.LevelWarn
	case OutcomeFailed:
		level = slog.LevelError
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
	}
	o.logger.LogAttrs(ctx, level, "store_op", attrs...)
}
