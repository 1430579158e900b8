package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/db"
)

// SQLiteGuardRepo persists the last calendar date each daily notification
// fired, keyed by guard name.
type SQLiteGuardRepo struct {
	db db.DBTX
}

// NewSQLiteGuardRepo creates a new SQLiteGuardRepo.
func NewSQLiteGuardRepo(conn db.DBTX) *SQLiteGuardRepo {
	return &SQLiteGuardRepo{db: conn}
}

func (r *SQLiteGuardRepo) LastDate(ctx context.Context, name string) (string, error) {
	var date string
	err := r.db.QueryRowContext(ctx,
		`SELECT last_date FROM notification_guards WHERE name = ?`, name).Scan(&date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("guard %q: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("reading guard %q: %w", name, err)
	}
	return date, nil
}

func (r *SQLiteGuardRepo) SetLastDate(ctx context.Context, name, date string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO notification_guards (name, last_date) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET last_date = excluded.last_date`,
		name, date)
	if err != nil {
		return fmt.Errorf("writing guard %q: %w", name, err)
	}
	return nil
}
