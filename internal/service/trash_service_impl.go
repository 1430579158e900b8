package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/repository"
)

type trashService struct {
	store *SessionStore
	trash repository.TrashRepo
	clock clock.Clock
}

func NewTrashService(store *SessionStore, trash repository.TrashRepo, clk clock.Clock) TrashService {
	return &trashService{store: store, trash: trash, clock: clk}
}

func (s *trashService) Delete(ctx context.Context, id string) (domain.Measurement, error) {
	deletedAt := s.clock.Now()
	return s.store.deleteMeasurement(ctx, id, func(removed domain.Measurement) txHook {
		return func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLiteTrashRepo(tx).Put(ctx, &removed, deletedAt)
		}
	})
}

func (s *trashService) Restore(ctx context.Context) (domain.Measurement, error) {
	m, err := s.trash.Get(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Measurement{}, fmt.Errorf("nothing to restore: %w", err)
		}
		return domain.Measurement{}, err
	}
	return s.store.addMeasurement(ctx, *m, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTrashRepo(tx).Clear(ctx)
	})
}

// Peek returns the restorable measurement, or nil when the trash is empty.
func (s *trashService) Peek(ctx context.Context) (*domain.Measurement, error) {
	m, err := s.trash.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return m, err
}
