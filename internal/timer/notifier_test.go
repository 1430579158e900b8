package timer

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/repository"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdNotifier_OncePerDay(t *testing.T) {
	fired := 0
	n := NewThresholdNotifier("test", func(int, int) { fired++ }, WithLocation(time.UTC))
	ctx := context.Background()

	assert.False(t, n.Observe(ctx, 239, 240, t0))
	assert.Equal(t, 0, fired)

	for i := 0; i < 1000; i++ {
		n.Observe(ctx, 240+i, 240, t0.Add(time.Duration(i)*time.Second))
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, "2024-01-02", n.LastDate())

	assert.True(t, n.Observe(ctx, 300, 240, t0.Add(24*time.Hour)))
	assert.Equal(t, 2, fired, "fires again on the next day")
}

func TestThresholdNotifier_ZeroThresholdIsDisabled(t *testing.T) {
	fired := 0
	n := NewThresholdNotifier("test", func(int, int) { fired++ }, WithLocation(time.UTC))
	ctx := context.Background()

	assert.False(t, n.Observe(ctx, 0, 0, t0))
	assert.False(t, n.Observe(ctx, 500, 0, t0.Add(time.Hour)))
	assert.Equal(t, 0, fired)
	assert.Empty(t, n.LastDate())
}

func TestThresholdNotifier_DayIsComputedInLocation(t *testing.T) {
	fired := 0
	east := time.FixedZone("UTC+10", 10*60*60)
	n := NewThresholdNotifier("test", func(int, int) { fired++ }, WithLocation(east))
	ctx := context.Background()

	// 09:00 and 15:00 UTC fall on different days ten hours east.
	n.Observe(ctx, 10, 1, t0)
	n.Observe(ctx, 10, 1, t0.Add(6*time.Hour))
	assert.Equal(t, 2, fired)
}

func TestThresholdNotifier_PersistedGuardSurvivesRestart(t *testing.T) {
	guards := repository.NewSQLiteGuardRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	fired := 0
	first := NewThresholdNotifier("daily-work", func(int, int) { fired++ },
		WithLocation(time.UTC), WithGuardStore(guards))
	require.NoError(t, first.Load(ctx))
	require.True(t, first.Observe(ctx, 250, 240, t0))

	restarted := NewThresholdNotifier("daily-work", func(int, int) { fired++ },
		WithLocation(time.UTC), WithGuardStore(guards))
	require.NoError(t, restarted.Load(ctx))
	assert.False(t, restarted.Observe(ctx, 260, 240, t0.Add(time.Hour)))
	assert.Equal(t, 1, fired)
}

func TestDailyWorkNotifier_Effects(t *testing.T) {
	fx := &testutil.EffectRecorder{}
	n := NewDailyWorkNotifier(fx, WithLocation(time.UTC))

	n.Observe(context.Background(), 245, 240, t0)

	assert.Equal(t, []string{CueDailyGoal}, fx.Cues())
	require.Len(t, fx.Notices(), 1)
	assert.Contains(t, fx.Notices()[0].Body, "245 minutes")
}
