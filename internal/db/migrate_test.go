package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestMigrate_Idempotent(t *testing.T) {
	conn := openTestDB(t)
	require.NoError(t, Migrate(conn))
	require.NoError(t, Migrate(conn))
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	conn := openTestDB(t)

	expected := []string{
		"measurements", "boxes", "catalog_entries",
		"active_measurement", "deleted_measurement", "notification_guards",
	}
	for _, table := range expected {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	conn := openTestDB(t)
	for _, idx := range []string{"idx_measurements_start", "idx_boxes_start"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_RejectsEndBeforeStart(t *testing.T) {
	conn := openTestDB(t)
	_, err := conn.Exec(`INSERT INTO measurements (id, label, start_at, end_at)
		VALUES ('m1', 'Writing', '2024-01-01T09:00:00.000000000Z', '2024-01-01T08:00:00.000000000Z')`)
	assert.Error(t, err)
}

func TestMigrate_CatalogNamesAreTrimmedAndUnique(t *testing.T) {
	conn := openTestDB(t)
	_, err := conn.Exec(`INSERT INTO catalog_entries (name, color_r, color_g, color_b) VALUES (' padded ', 0, 0, 0)`)
	assert.Error(t, err, "untrimmed names are rejected")

	_, err = conn.Exec(`INSERT INTO catalog_entries (name, color_r, color_g, color_b) VALUES ('Writing', 0, 0, 0)`)
	require.NoError(t, err)
	_, err = conn.Exec(`INSERT INTO catalog_entries (name, color_r, color_g, color_b) VALUES ('Writing', 1, 1, 1)`)
	assert.Error(t, err, "duplicate names are rejected")
}

func TestMigrate_SingleActiveMeasurement(t *testing.T) {
	conn := openTestDB(t)
	_, err := conn.Exec(`INSERT INTO active_measurement (slot, label, start_at) VALUES (2, 'x', '2024')`)
	assert.Error(t, err)
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	conn := openTestDB(t)
	var fk int
	require.NoError(t, conn.QueryRow(`PRAGMA foreign_keys`).Scan(&fk))
	assert.Equal(t, 1, fk)
}
