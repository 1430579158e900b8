package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrash_DeleteAndRestore(t *testing.T) {
	store, database := newTestStore(t)
	trash := NewTrashService(store, repository.NewSQLiteTrashRepo(database), newTestClock())
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing", testutil.WithSpan(svcNow, time.Hour))
	stored, err := store.AddMeasurement(ctx, *m)
	require.NoError(t, err)

	removed, err := trash.Delete(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, removed.ID)
	assert.Empty(t, store.Measurements())

	peek, err := trash.Peek(ctx)
	require.NoError(t, err)
	require.NotNil(t, peek)
	assert.Equal(t, stored.ID, peek.ID)

	restored, err := trash.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, restored.ID)
	assert.Len(t, store.Measurements(), 1)

	peek, err = trash.Peek(ctx)
	require.NoError(t, err)
	assert.Nil(t, peek, "restore empties the trash")

	_, err = trash.Restore(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTrash_OnlyLastDeleteIsRestorable(t *testing.T) {
	store, database := newTestStore(t)
	trash := NewTrashService(store, repository.NewSQLiteTrashRepo(database), newTestClock())
	ctx := context.Background()

	a, err := store.AddMeasurement(ctx, *testutil.NewTestMeasurement("a", testutil.WithSpan(svcNow, time.Hour)))
	require.NoError(t, err)
	b, err := store.AddMeasurement(ctx, *testutil.NewTestMeasurement("b", testutil.WithSpan(svcNow, time.Hour)))
	require.NoError(t, err)

	_, err = trash.Delete(ctx, a.ID)
	require.NoError(t, err)
	_, err = trash.Delete(ctx, b.ID)
	require.NoError(t, err)

	restored, err := trash.Restore(ctx)
	require.NoError(t, err)
	assert.Equal(t, "b", restored.Label)
}
