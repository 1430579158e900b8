package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func TestFake_NowAndAdvance(t *testing.T) {
	c := Fake(epoch)
	assert.Equal(t, epoch, c.Now())
	c.Advance(90 * time.Second)
	assert.Equal(t, epoch.Add(90*time.Second), c.Now())
}

func TestFake_TickerFiresOnInterval(t *testing.T) {
	c := Fake(epoch)
	tk := c.NewTicker(time.Second)
	defer tk.Stop()

	select {
	case <-tk.C:
		t.Fatal("ticker fired before advancing")
	default:
	}

	c.Advance(time.Second)
	select {
	case got := <-tk.C:
		assert.Equal(t, epoch.Add(time.Second), got)
	default:
		t.Fatal("expected a tick after one interval")
	}
}

func TestFake_TickerDropsOverlappingPulses(t *testing.T) {
	c := Fake(epoch)
	tk := c.NewTicker(time.Second)

	// Five intervals elapse with nobody reading: only one pulse is buffered.
	c.Advance(5 * time.Second)

	require.Len(t, tk.C, 1)
	<-tk.C
	select {
	case <-tk.C:
		t.Fatal("overlapping pulses must be dropped, not queued")
	default:
	}
}

func TestFake_StoppedTickerIsSilent(t *testing.T) {
	c := Fake(epoch)
	tk := c.NewTicker(time.Second)
	tk.Stop()
	c.Advance(3 * time.Second)
	assert.Len(t, tk.C, 0)
}

func TestFake_WaitForTickers(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.WaitForTickers(1)
		close(done)
	}()
	c.NewTicker(time.Second)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForTickers did not return")
	}
}

func TestFake_NewTickerPanicsOnNonPositive(t *testing.T) {
	assert.Panics(t, func() { Fake(epoch).NewTicker(0) })
}
