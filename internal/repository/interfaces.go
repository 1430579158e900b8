package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
)

type MeasurementRepo interface {
	Create(ctx context.Context, m *domain.Measurement) error
	GetByID(ctx context.Context, id string) (*domain.Measurement, error)
	// ListAll returns every measurement ordered by start, newest first.
	ListAll(ctx context.Context) ([]domain.Measurement, error)
	Update(ctx context.Context, m *domain.Measurement) error
	Delete(ctx context.Context, id string) error
}

type BoxRepo interface {
	Create(ctx context.Context, b *domain.Box) error
	// ListAll returns every box ordered by start, newest first.
	ListAll(ctx context.Context) ([]domain.Box, error)
}

type CatalogRepo interface {
	Create(ctx context.Context, e *domain.CatalogEntry) error
	GetByName(ctx context.Context, name string) (*domain.CatalogEntry, error)
	ListAll(ctx context.Context) ([]domain.CatalogEntry, error)
	Upsert(ctx context.Context, e *domain.CatalogEntry) error
}

type ActiveMeasurementRepo interface {
	Get(ctx context.Context) (*domain.ActiveMeasurement, error)
	Put(ctx context.Context, a *domain.ActiveMeasurement) error
	Clear(ctx context.Context) error
}

type TrashRepo interface {
	Get(ctx context.Context) (*domain.Measurement, error)
	Put(ctx context.Context, m *domain.Measurement, deletedAt time.Time) error
	Clear(ctx context.Context) error
}

type GuardRepo interface {
	LastDate(ctx context.Context, name string) (string, error)
	SetLastDate(ctx context.Context, name, date string) error
}
