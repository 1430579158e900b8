package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
)

// SQLiteActiveMeasurementRepo stores the single running measurement.
type SQLiteActiveMeasurementRepo struct {
	db db.DBTX
}

// NewSQLiteActiveMeasurementRepo creates a new SQLiteActiveMeasurementRepo.
func NewSQLiteActiveMeasurementRepo(conn db.DBTX) *SQLiteActiveMeasurementRepo {
	return &SQLiteActiveMeasurementRepo{db: conn}
}

func (r *SQLiteActiveMeasurementRepo) Get(ctx context.Context) (*domain.ActiveMeasurement, error) {
	var a domain.ActiveMeasurement
	var startStr string
	err := r.db.QueryRowContext(ctx,
		`SELECT label, detail, start_at FROM active_measurement WHERE slot = 1`,
	).Scan(&a.Label, &a.Detail, &startStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active measurement: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning active measurement: %w", err)
	}
	if a.Start, err = parseTime("start_at", startStr); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *SQLiteActiveMeasurementRepo) Put(ctx context.Context, a *domain.ActiveMeasurement) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO active_measurement (slot, label, detail, start_at) VALUES (1, ?, ?, ?)`,
		a.Label, a.Detail, formatTime(a.Start))
	if err != nil {
		return fmt.Errorf("storing active measurement: %w", err)
	}
	return nil
}

func (r *SQLiteActiveMeasurementRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM active_measurement`); err != nil {
		return fmt.Errorf("clearing active measurement: %w", err)
	}
	return nil
}
