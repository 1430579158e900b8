package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActiveMeasurementRepo_Lifecycle(t *testing.T) {
	repo := NewSQLiteActiveMeasurementRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Put(ctx, &domain.ActiveMeasurement{Label: "Writing", Start: repoBase}))
	require.NoError(t, repo.Put(ctx, &domain.ActiveMeasurement{Label: "Reading", Detail: "paper", Start: repoBase.Add(time.Hour)}))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Reading", got.Label, "put replaces the single slot")
	assert.Equal(t, "paper", got.Detail)
	assert.True(t, repoBase.Add(time.Hour).Equal(got.Start))

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTrashRepo_KeepsOnlyLastDeleted(t *testing.T) {
	repo := NewSQLiteTrashRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	first := testutil.NewTestMeasurement("first", testutil.WithSpan(repoBase, time.Minute))
	second := testutil.NewTestMeasurement("second", testutil.WithSpan(repoBase, 2*time.Minute))
	require.NoError(t, repo.Put(ctx, first, repoBase))
	require.NoError(t, repo.Put(ctx, second, repoBase))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, second.ID, got.ID)
	assert.Equal(t, 2*time.Minute, got.Duration())

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGuardRepo_SetAndRead(t *testing.T) {
	repo := NewSQLiteGuardRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	_, err := repo.LastDate(ctx, "daily-work")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.SetLastDate(ctx, "daily-work", "2025-06-15"))
	require.NoError(t, repo.SetLastDate(ctx, "daily-work", "2025-06-16"))

	date, err := repo.LastDate(ctx, "daily-work")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-16", date)
}
