package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies every schema statement. Statements are idempotent so the
// whole list is replayed on each open.
func Migrate(conn *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := conn.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// Timestamps are stored as fixed-width UTC text (see repository.timeLayout),
// so string comparison in CHECK constraints and ORDER BY matches time order.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS measurements (
		id       TEXT PRIMARY KEY,
		label    TEXT NOT NULL CHECK(length(trim(label)) > 0),
		detail   TEXT NOT NULL DEFAULT '',
		start_at TEXT NOT NULL,
		end_at   TEXT NOT NULL,
		color_r  REAL NOT NULL DEFAULT 0 CHECK(color_r BETWEEN 0 AND 1),
		color_g  REAL NOT NULL DEFAULT 0 CHECK(color_g BETWEEN 0 AND 1),
		color_b  REAL NOT NULL DEFAULT 0 CHECK(color_b BETWEEN 0 AND 1),
		CHECK(end_at >= start_at)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_measurements_start ON measurements(start_at)`,

	`CREATE TABLE IF NOT EXISTS boxes (
		id           TEXT PRIMARY KEY,
		start_at     TEXT NOT NULL,
		work_minutes INTEGER NOT NULL CHECK(work_minutes > 0)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_boxes_start ON boxes(start_at)`,

	`CREATE TABLE IF NOT EXISTS catalog_entries (
		name    TEXT PRIMARY KEY CHECK(name = trim(name) AND length(name) > 0),
		color_r REAL NOT NULL CHECK(color_r BETWEEN 0 AND 1),
		color_g REAL NOT NULL CHECK(color_g BETWEEN 0 AND 1),
		color_b REAL NOT NULL CHECK(color_b BETWEEN 0 AND 1)
	)`,

	// Single-row tables: the running measurement and the undo slot.
	`CREATE TABLE IF NOT EXISTS active_measurement (
		slot     INTEGER PRIMARY KEY CHECK(slot = 1),
		label    TEXT NOT NULL,
		detail   TEXT NOT NULL DEFAULT '',
		start_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS deleted_measurement (
		slot       INTEGER PRIMARY KEY CHECK(slot = 1),
		id         TEXT NOT NULL,
		label      TEXT NOT NULL,
		detail     TEXT NOT NULL DEFAULT '',
		start_at   TEXT NOT NULL,
		end_at     TEXT NOT NULL,
		color_r    REAL NOT NULL DEFAULT 0,
		color_g    REAL NOT NULL DEFAULT 0,
		color_b    REAL NOT NULL DEFAULT 0,
		deleted_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS notification_guards (
		name      TEXT PRIMARY KEY,
		last_date TEXT NOT NULL
	)`,
}
