package service

import (
	"context"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/exchange"
)

// TrackerService manages the single running measurement.
type TrackerService interface {
	// Start begins a measurement. A measurement already running is stopped
	// and recorded first; it is returned when that happens.
	Start(ctx context.Context, label, detail string) (*domain.Measurement, error)
	Stop(ctx context.Context) (*domain.Measurement, error)
	// Current returns nil when nothing is running.
	Current(ctx context.Context) (*domain.ActiveMeasurement, error)
}

// TrashService deletes measurements while keeping the last one restorable.
type TrashService interface {
	Delete(ctx context.Context, id string) (domain.Measurement, error)
	Restore(ctx context.Context) (domain.Measurement, error)
	Peek(ctx context.Context) (*domain.Measurement, error)
}

// ImportResult holds the outcome of an import.
type ImportResult struct {
	Measurements   int
	Boxes          int
	CatalogEntries int
	Skipped        int
}

type ExchangeService interface {
	Export(ctx context.Context) *exchange.Document
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	ImportDocument(ctx context.Context, doc *exchange.Document) (*ImportResult, error)
}
