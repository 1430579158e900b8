package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/db"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/require"
)

var svcNow = time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)

func newStoreWithUoW(t *testing.T, database *sql.DB, uow db.UnitOfWork) *SessionStore {
	t.Helper()
	s := NewSessionStore(
		repository.NewSQLiteMeasurementRepo(database),
		repository.NewSQLiteBoxRepo(database),
		repository.NewSQLiteCatalogRepo(database),
		uow,
		WithColorPicker(testutil.FirstColor),
	)
	require.NoError(t, s.Load(context.Background()))
	return s
}

func newTestStore(t *testing.T) (*SessionStore, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newStoreWithUoW(t, database, testutil.NewTestUoW(database)), database
}

func newTestClock() *clock.FakeClock {
	return clock.Fake(svcNow)
}
