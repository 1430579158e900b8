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

var repoBase = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func TestMeasurementRepo_CreateAndGet(t *testing.T) {
	repo := NewSQLiteMeasurementRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Writing",
		testutil.WithDetail("chapter 3"),
		testutil.WithSpan(repoBase.Add(123456789*time.Nanosecond), 45*time.Minute),
		testutil.WithMeasurementColor(domain.Palette[2]),
	)
	require.NoError(t, repo.Create(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m.Label, got.Label)
	assert.Equal(t, m.Detail, got.Detail)
	assert.True(t, m.Start.Equal(got.Start), "start should round-trip with nanoseconds")
	assert.True(t, m.End.Equal(got.End))
	assert.Equal(t, m.Color, got.Color)
}

func TestMeasurementRepo_GetMissing(t *testing.T) {
	repo := NewSQLiteMeasurementRepo(testutil.NewTestDB(t))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMeasurementRepo_ListAllNewestFirst(t *testing.T) {
	repo := NewSQLiteMeasurementRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	for i, label := range []string{"a", "b", "c"} {
		m := testutil.NewTestMeasurement(label,
			testutil.WithSpan(repoBase.Add(time.Duration(i)*time.Hour), time.Minute))
		require.NoError(t, repo.Create(ctx, m))
	}

	list, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].Label)
	assert.Equal(t, "a", list[2].Label)
}

func TestMeasurementRepo_UpdateAndDelete(t *testing.T) {
	repo := NewSQLiteMeasurementRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	m := testutil.NewTestMeasurement("Draft", testutil.WithSpan(repoBase, time.Hour))
	require.NoError(t, repo.Create(ctx, m))

	m.Label = "Final"
	m.End = m.End.Add(15 * time.Minute)
	require.NoError(t, repo.Update(ctx, m))

	got, err := repo.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Label)
	assert.Equal(t, 75*time.Minute, got.Duration())

	require.NoError(t, repo.Delete(ctx, m.ID))
	assert.ErrorIs(t, repo.Delete(ctx, m.ID), ErrNotFound)

	missing := testutil.NewTestMeasurement("ghost")
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestMeasurementRepo_RejectsEndBeforeStart(t *testing.T) {
	repo := NewSQLiteMeasurementRepo(testutil.NewTestDB(t))

	m := testutil.NewTestMeasurement("Backwards", testutil.WithSpan(repoBase, -time.Minute))
	assert.Error(t, repo.Create(context.Background(), m))
}
