package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/domain"
)

// SQLiteCatalogRepo implements CatalogRepo using a SQLite database.
type SQLiteCatalogRepo struct {
	db db.DBTX
}

// NewSQLiteCatalogRepo creates a new SQLiteCatalogRepo.
func NewSQLiteCatalogRepo(conn db.DBTX) *SQLiteCatalogRepo {
	return &SQLiteCatalogRepo{db: conn}
}

// Create inserts a new entry; a second entry with the same name fails on the
// primary key.
func (r *SQLiteCatalogRepo) Create(ctx context.Context, e *domain.CatalogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_entries (name, color_r, color_g, color_b) VALUES (?, ?, ?, ?)`,
		e.Name, e.Color.R, e.Color.G, e.Color.B)
	if err != nil {
		return fmt.Errorf("inserting catalog entry %q: %w", e.Name, err)
	}
	return nil
}

func (r *SQLiteCatalogRepo) GetByName(ctx context.Context, name string) (*domain.CatalogEntry, error) {
	var e domain.CatalogEntry
	err := r.db.QueryRowContext(ctx,
		`SELECT name, color_r, color_g, color_b FROM catalog_entries WHERE name = ?`, name,
	).Scan(&e.Name, &e.Color.R, &e.Color.G, &e.Color.B)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("catalog entry %q: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning catalog entry: %w", err)
	}
	return &e, nil
}

func (r *SQLiteCatalogRepo) ListAll(ctx context.Context) ([]domain.CatalogEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, color_r, color_g, color_b FROM catalog_entries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing catalog entries: %w", err)
	}
	defer rows.Close()

	var out []domain.CatalogEntry
	for rows.Next() {
		var e domain.CatalogEntry
		if err := rows.Scan(&e.Name, &e.Color.R, &e.Color.G, &e.Color.B); err != nil {
			return nil, fmt.Errorf("scanning catalog row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating catalog entries: %w", err)
	}
	return out, nil
}

func (r *SQLiteCatalogRepo) Upsert(ctx context.Context, e *domain.CatalogEntry) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO catalog_entries (name, color_r, color_g, color_b) VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET color_r = excluded.color_r,
			color_g = excluded.color_g, color_b = excluded.color_b`,
		e.Name, e.Color.R, e.Color.G, e.Color.B)
	if err != nil {
		return fmt.Errorf("upserting catalog entry %q: %w", e.Name, err)
	}
	return nil
}
