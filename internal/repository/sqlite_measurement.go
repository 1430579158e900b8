package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
)

const measurementColumns = `id, label, detail, start_at, end_at, color_r, color_g, color_b`

// SQLiteMeasurementRepo implements MeasurementRepo using a SQLite database.
type SQLiteMeasurementRepo struct {
	db db.DBTX
}

// NewSQLiteMeasurementRepo creates a new SQLiteMeasurementRepo.
func NewSQLiteMeasurementRepo(conn db.DBTX) *SQLiteMeasurementRepo {
	return &SQLiteMeasurementRepo{db: conn}
}

func (r *SQLiteMeasurementRepo) Create(ctx context.Context, m *domain.Measurement) error {
	query := `INSERT INTO measurements (` + measurementColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Label, m.Detail, formatTime(m.Start), formatTime(m.End),
		m.Color.R, m.Color.G, m.Color.B,
	)
	if err != nil {
		return fmt.Errorf("inserting measurement: %w", err)
	}
	return nil
}

func (r *SQLiteMeasurementRepo) GetByID(ctx context.Context, id string) (*domain.Measurement, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+measurementColumns+` FROM measurements WHERE id = ?`, id)
	m, err := scanMeasurement(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("measurement %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning measurement: %w", err)
	}
	return &m, nil
}

func (r *SQLiteMeasurementRepo) ListAll(ctx context.Context) ([]domain.Measurement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+measurementColumns+` FROM measurements ORDER BY start_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing measurements: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

func (r *SQLiteMeasurementRepo) Update(ctx context.Context, m *domain.Measurement) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE measurements SET label = ?, detail = ?, start_at = ?, end_at = ?,
			color_r = ?, color_g = ?, color_b = ?
		WHERE id = ?`,
		m.Label, m.Detail, formatTime(m.Start), formatTime(m.End),
		m.Color.R, m.Color.G, m.Color.B, m.ID,
	)
	if err != nil {
		return fmt.Errorf("updating measurement: %w", err)
	}
	return requireAffected(res, "measurement "+m.ID)
}

func (r *SQLiteMeasurementRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM measurements WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting measurement: %w", err)
	}
	return requireAffected(res, "measurement "+id)
}

func (r *SQLiteMeasurementRepo) scanAll(rows *sql.Rows) ([]domain.Measurement, error) {
	var out []domain.Measurement
	for rows.Next() {
		m, err := scanMeasurement(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning measurement row: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating measurements: %w", err)
	}
	return out, nil
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
