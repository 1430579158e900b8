package testutil

import (
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/google/uuid"
)

// Measurement options
type MeasurementOption func(*domain.Measurement)

func WithDetail(detail string) MeasurementOption {
	return func(m *domain.Measurement) {
		m.Detail = detail
	}
}

func WithSpan(start time.Time, d time.Duration) MeasurementOption {
	return func(m *domain.Measurement) {
		m.Start = start
		m.End = start.Add(d)
	}
}

func WithMeasurementID(id string) MeasurementOption {
	return func(m *domain.Measurement) {
		m.ID = id
	}
}

func WithMeasurementColor(c domain.Color) MeasurementOption {
	return func(m *domain.Measurement) {
		m.Color = c
	}
}

// NewTestMeasurement returns a 30 minute measurement ending an hour ago.
func NewTestMeasurement(label string, opts ...MeasurementOption) *domain.Measurement {
	start := time.Now().UTC().Add(-90 * time.Minute).Truncate(time.Second)
	m := &domain.Measurement{
		ID:    uuid.New().String(),
		Label: label,
		Start: start,
		End:   start.Add(30 * time.Minute),
		Color: domain.NeutralColor,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Box options
type BoxOption func(*domain.Box)

func WithBoxStart(start time.Time) BoxOption {
	return func(b *domain.Box) {
		b.Start = start
	}
}

func WithWorkMinutes(n int) BoxOption {
	return func(b *domain.Box) {
		b.WorkMinutes = n
	}
}

func NewTestBox(opts ...BoxOption) *domain.Box {
	b := &domain.Box{
		ID:          uuid.New().String(),
		Start:       time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
		WorkMinutes: 25,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func NewTestCatalogEntry(name string, c domain.Color) *domain.CatalogEntry {
	return &domain.CatalogEntry{Name: name, Color: c}
}

// FirstColor always picks the first palette color; pass it where a
// deterministic catalog color is needed.
func FirstColor(n int) int { return 0 }
