package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddMeasurement_CreatesCatalogEntryAndColors(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("  Writing ", testutil.WithSpan(svcNow, time.Hour),
		testutil.WithMeasurementColor(domain.Color{R: 1}))
	stored, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)

	assert.Equal(t, "Writing", stored.Label, "label is trimmed")
	assert.Equal(t, domain.Palette[0], stored.Color, "color comes from the catalog entry")

	catalog := store.Catalog()
	require.Contains(t, catalog, "Writing")
	assert.Equal(t, domain.Palette[0], catalog["Writing"].Color)
	assert.Equal(t, uint64(2), store.Version(), "load and add each bump the version")
}

func TestAddMeasurement_CatalogStaysUniqueUnderRepeatedAdds(t *testing.T) {
	calls := 0
	database := testutil.NewTestDB(t)
	store := NewSessionStore(
		repository.NewSQLiteMeasurementRepo(database),
		repository.NewSQLiteBoxRepo(database),
		repository.NewSQLiteCatalogRepo(database),
		testutil.NewTestUoW(database),
		WithColorPicker(func(n int) int { calls++; return calls % n }),
	)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		m := testutil.NewTestMeasurement("Reading", testutil.WithSpan(svcNow.Add(time.Duration(i)*time.Hour), time.Minute))
		_, err := store.AddMeasurement(ctx, *m)
		require.NoError(t, err)
	}

	assert.Len(t, store.Catalog(), 1)
	assert.Equal(t, 1, calls, "palette consulted only for the first use")
	for _, m := range store.Measurements() {
		assert.Equal(t, domain.Palette[1], m.Color)
	}

	entries, err := repository.NewSQLiteCatalogRepo(database).ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAddMeasurement_KeepsNewestFirst(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for _, offset := range []time.Duration{2 * time.Hour, 0, 5 * time.Hour, time.Hour} {
		m := testutil.NewTestMeasurement("x", testutil.WithSpan(svcNow.Add(offset), time.Minute))
		_, err := store.AddMeasurement(ctx, *m)
		require.NoError(t, err)
	}

	ms := store.Measurements()
	require.Len(t, ms, 4)
	for i := 1; i < len(ms); i++ {
		assert.False(t, ms[i].Start.After(ms[i-1].Start))
	}
}

func TestAddMeasurement_RejectsEndBeforeStart(t *testing.T) {
	store, _ := newTestStore(t)

	m := testutil.NewTestMeasurement("x", testutil.WithSpan(svcNow, -time.Minute))
	_, err := store.AddMeasurement(context.Background(), *m)

	var vErr *domain.ValidationError
	require.True(t, errors.As(err, &vErr))
	assert.Empty(t, store.Measurements())
	assert.Empty(t, store.Catalog())
}

func TestAddMeasurement_RollbackOnMeasurementInsertFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	// Exec #1 = catalog insert, #2 = measurement insert.
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 2,
		Err:    fmt.Errorf("injected measurement insert failure"),
	}
	store := newStoreWithUoW(t, database, failUoW)
	ctx := context.Background()
	before := store.Version()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	_, err := store.AddMeasurement(ctx, *m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected measurement insert failure")

	assert.Empty(t, store.Measurements(), "in-memory measurements rolled back")
	assert.Empty(t, store.Catalog(), "in-memory catalog rolled back")
	assert.Equal(t, before, store.Version())

	entries, err := repository.NewSQLiteCatalogRepo(database).ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries, "catalog insert rolled back with the transaction")
}

func TestAddMeasurement_SecondAttemptSucceedsAfterRollback(t *testing.T) {
	database := testutil.NewTestDB(t)
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: fmt.Errorf("disk full")}
	store := newStoreWithUoW(t, database, failUoW)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	_, err := store.AddMeasurement(ctx, *m)
	require.Error(t, err)

	_, err = store.AddMeasurement(ctx, *m)
	require.NoError(t, err)
	assert.Len(t, store.Measurements(), 1)
	assert.Len(t, store.Catalog(), 1)
}

func TestUpdateMeasurement(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Draft", testutil.WithSpan(svcNow, time.Hour))
	stored, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)

	stored.Label = "Review"
	stored.End = stored.End.Add(30 * time.Minute)
	updated, err := store.UpdateMeasurement(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, "Review", updated.Label)
	assert.Contains(t, store.Catalog(), "Review")

	got, err := repository.NewSQLiteMeasurementRepo(database).GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, got.Duration())

	backwards := updated
	backwards.End = backwards.Start.Add(-time.Second)
	_, err = store.UpdateMeasurement(ctx, backwards)
	assert.Error(t, err)

	_, err = store.UpdateMeasurement(ctx, domain.Measurement{ID: "missing", Label: "x", Start: svcNow, End: svcNow})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteMeasurement_ReturnsRemoved(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	stored, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)

	removed, err := store.DeleteMeasurement(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored, removed)
	assert.Empty(t, store.Measurements())

	_, err = repository.NewSQLiteMeasurementRepo(database).GetByID(ctx, stored.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.DeleteMeasurement(ctx, stored.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestAddBox(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.AddBox(ctx, *testutil.NewTestBox(testutil.WithBoxStart(svcNow))))
	assert.Len(t, store.Boxes(), 1)

	assert.Error(t, store.AddBox(ctx, domain.Box{Start: svcNow}), "zero work minutes rejected")

	stored, err := repository.NewSQLiteBoxRepo(database).ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAddBox_RollbackOnFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 1, Err: fmt.Errorf("injected")}
	store := newStoreWithUoW(t, database, failUoW)

	err := store.AddBox(context.Background(), *testutil.NewTestBox())
	require.Error(t, err)
	assert.Empty(t, store.Boxes())
}

func TestLoad_RestoresPersistedState(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	_, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)
	require.NoError(t, store.AddBox(ctx, *testutil.NewTestBox()))

	reloaded := newStoreWithUoW(t, database, testutil.NewTestUoW(database))
	assert.Len(t, reloaded.Measurements(), 1)
	assert.Len(t, reloaded.Boxes(), 1)
	assert.Contains(t, reloaded.Catalog(), "Writing")
}

func TestImport_SkipsExistingIDs(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	existing := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	_, err := store.AddMeasurement(ctx, *existing)
	require.NoError(t, err)

	imported := testutil.NewTestMeasurement("Reading", testutil.WithSpan(svcNow.Add(-time.Hour), time.Hour),
		testutil.WithMeasurementColor(domain.Color{R: 0.1, G: 0.2, B: 0.3}))
	box := testutil.NewTestBox()

	res, err := store.Import(ctx, []domain.Measurement{*existing, *imported}, []domain.Box{*box, *box})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Measurements)
	assert.Equal(t, 1, res.Boxes)
	assert.Equal(t, 1, res.CatalogEntries)
	assert.Equal(t, 2, res.Skipped)

	assert.Equal(t, domain.Color{R: 0.1, G: 0.2, B: 0.3}, store.Catalog()["Reading"].Color,
		"new entry keeps the imported color")
}

func TestImport_LeavesCallerSliceUntouched(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := []domain.Measurement{*testutil.NewTestMeasurement("  Reading  ", testutil.WithSpan(svcNow, time.Hour))}
	_, err := store.Import(ctx, in, nil)
	require.NoError(t, err)

	assert.Equal(t, "  Reading  ", in[0].Label)
	assert.Equal(t, "Reading", store.Measurements()[0].Label)
}

func TestImport_RollbackLeavesNothingBehind(t *testing.T) {
	database := testutil.NewTestDB(t)
	// Exec #1 = catalog, #2 = first measurement, #3 = second measurement.
	failUoW := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: fmt.Errorf("injected")}
	store := newStoreWithUoW(t, database, failUoW)
	ctx := context.Background()

	a := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	b := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow.Add(time.Hour), time.Hour))
	_, err := store.Import(ctx, []domain.Measurement{*a, *b}, nil)
	require.Error(t, err)

	assert.Empty(t, store.Measurements())
	assert.Empty(t, store.Catalog())
	stored, err := repository.NewSQLiteMeasurementRepo(database).ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSetCatalogColor_RecolorsMeasurements(t *testing.T) {
	store, database := newTestStore(t)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	stored, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)

	teal := domain.Color{R: 0.2, G: 0.6, B: 0.6}
	require.NoError(t, store.SetCatalogColor(ctx, "Writing", teal))
	assert.Equal(t, teal, store.Catalog()["Writing"].Color)
	assert.Equal(t, teal, store.Measurements()[0].Color)

	got, err := repository.NewSQLiteMeasurementRepo(database).GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, teal, got.Color)

	assert.Error(t, store.SetCatalogColor(ctx, "Writing", domain.Color{R: 3}))
	assert.Error(t, store.SetCatalogColor(ctx, "  ", teal))
}

func TestReadAccessorsReturnCopies(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	_, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)

	ms := store.Measurements()
	ms[0].Label = "mutated"
	catalog := store.Catalog()
	delete(catalog, "Writing")

	assert.Equal(t, "Writing", store.Measurements()[0].Label)
	assert.Contains(t, store.Catalog(), "Writing")
}
