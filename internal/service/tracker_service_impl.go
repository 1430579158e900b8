package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/google/uuid"
)

type trackerService struct {
	store  *SessionStore
	active repository.ActiveMeasurementRepo
	uow    db.UnitOfWork
	clock  clock.Clock
}

func NewTrackerService(store *SessionStore, active repository.ActiveMeasurementRepo, uow db.UnitOfWork, clk clock.Clock) TrackerService {
	return &trackerService{store: store, active: active, uow: uow, clock: clk}
}

func (s *trackerService) Start(ctx context.Context, label, detail string) (*domain.Measurement, error) {
	label = domain.NormalizeLabel(label)
	if label == "" {
		return nil, domain.NewValidationError("label", "must not be empty")
	}
	now := s.clock.Now().UTC()
	next := &domain.ActiveMeasurement{Label: label, Detail: detail, Start: now}

	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		if err := s.active.Put(ctx, next); err != nil {
			return nil, err
		}
		return nil, nil
	}

	// Superseding records the old measurement and swaps the slot atomically.
	finished := current.Finish(uuid.New().String(), clampEnd(current.Start, now))
	stored, err := s.store.addMeasurement(ctx, finished, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteActiveMeasurementRepo(tx).Put(ctx, next)
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *trackerService) Stop(ctx context.Context) (*domain.Measurement, error) {
	current, err := s.Current(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("no measurement is running: %w", repository.ErrNotFound)
	}

	finished := current.Finish(uuid.New().String(), clampEnd(current.Start, s.clock.Now().UTC()))
	stored, err := s.store.addMeasurement(ctx, finished, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteActiveMeasurementRepo(tx).Clear(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *trackerService) Current(ctx context.Context) (*domain.ActiveMeasurement, error) {
	a, err := s.active.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading active measurement: %w", err)
	}
	return a, nil
}

// clampEnd keeps End >= Start when the wall clock stepped backwards.
func clampEnd(start, end time.Time) time.Time {
	if end.Before(start) {
		return start
	}
	return end
}
