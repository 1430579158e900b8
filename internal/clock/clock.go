// Package clock is the tick source for the box timer. Production code uses
// Real(); tests use Fake() and advance time explicitly.
package clock

import "time"

// Clock abstracts the time operations the timer needs.
type Clock interface {
	Now() time.Time
	// NewTicker returns a Ticker firing every d. Panics if d <= 0.
	NewTicker(d time.Duration) *Ticker
}

// Ticker delivers periodic pulses on C.
//
// C has capacity 1. A consumer that falls behind sees pulses dropped, never
// queued, so at most one tick is ever waiting to be handled.
type Ticker struct {
	C <-chan time.Time

	stopFunc func()
}

// Stop turns off the ticker. C is not closed.
func (t *Ticker) Stop() { t.stopFunc() }
