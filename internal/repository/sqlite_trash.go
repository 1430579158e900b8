package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
)

// SQLiteTrashRepo keeps the most recently deleted measurement for restore.
type SQLiteTrashRepo struct {
	db db.DBTX
}

// NewSQLiteTrashRepo creates a new SQLiteTrashRepo.
func NewSQLiteTrashRepo(conn db.DBTX) *SQLiteTrashRepo {
	return &SQLiteTrashRepo{db: conn}
}

func (r *SQLiteTrashRepo) Get(ctx context.Context) (*domain.Measurement, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+measurementColumns+` FROM deleted_measurement WHERE slot = 1`)
	m, err := scanMeasurement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("deleted measurement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning deleted measurement: %w", err)
	}
	return &m, nil
}

// Put replaces whatever was in the slot; only one step of undo is kept.
func (r *SQLiteTrashRepo) Put(ctx context.Context, m *domain.Measurement, deletedAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO deleted_measurement (slot, `+measurementColumns+`, deleted_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.Label, m.Detail, formatTime(m.Start), formatTime(m.End),
		m.Color.R, m.Color.G, m.Color.B, formatTime(deletedAt))
	if err != nil {
		return fmt.Errorf("storing deleted measurement: %w", err)
	}
	return nil
}

func (r *SQLiteTrashRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM deleted_measurement`); err != nil {
		return fmt.Errorf("clearing deleted measurement: %w", err)
	}
	return nil
}
