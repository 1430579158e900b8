package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/focusbox/internal/clock"
	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/alexanderramin/focusbox/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_DrivesMachineFromClock(t *testing.T) {
	clk := clock.Fake(t0)
	fx := &testutil.EffectRecorder{}
	m := NewMachine(&fixedSettings{work: 2 * time.Second, rest: time.Second}, fx, &boxRecorder{})
	m.RequestTransition()

	ctx, cancel := context.WithCancel(context.Background())
	snaps := make(chan Snapshot)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, clk, time.Second, func(now time.Time) {
			snaps <- m.Tick(ctx, now)
		})
	}()
	clk.WaitForTickers(1)

	var states []domain.BoxState
	for i := 0; i < 5; i++ {
		clk.Advance(time.Second)
		states = append(states, (<-snaps).State)
	}
	cancel()

	assert.Equal(t, []domain.BoxState{
		domain.BoxRunning, domain.BoxRunning, domain.BoxRunning,
		domain.BoxFinished, domain.BoxFinished,
	}, states)

	select {
	case err := <-done:
		require.True(t, errors.Is(err, context.Canceled))
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
