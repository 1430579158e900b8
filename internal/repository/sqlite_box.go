package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
)

// SQLiteBoxRepo implements BoxRepo using a SQLite database.
type SQLiteBoxRepo struct {
	db db.DBTX
}

// NewSQLiteBoxRepo creates a new SQLiteBoxRepo.
func NewSQLiteBoxRepo(conn db.DBTX) *SQLiteBoxRepo {
	return &SQLiteBoxRepo{db: conn}
}

func (r *SQLiteBoxRepo) Create(ctx context.Context, b *domain.Box) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO boxes (id, start_at, work_minutes) VALUES (?, ?, ?)`,
		b.ID, formatTime(b.Start), b.WorkMinutes)
	if err != nil {
		return fmt.Errorf("inserting box: %w", err)
	}
	return nil
}

func (r *SQLiteBoxRepo) ListAll(ctx context.Context) ([]domain.Box, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, start_at, work_minutes FROM boxes ORDER BY start_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("listing boxes: %w", err)
	}
	defer rows.Close()

	var out []domain.Box
	for rows.Next() {
		var b domain.Box
		var startStr string
		if err := rows.Scan(&b.ID, &startStr, &b.WorkMinutes); err != nil {
			return nil, fmt.Errorf("scanning box row: %w", err)
		}
		if b.Start, err = parseTime("start_at", startStr); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating boxes: %w", err)
	}
	return out, nil
}
