package timer

import (
	"context"
	"time"

	"github.com/alexanderramin/focusbox/internal/clock"
)

// Run calls onTick for every pulse of a ticker on clk until ctx is done.
// Pulses that arrive while onTick is still running are dropped by the ticker,
// so onTick never overlaps itself.
func Run(ctx context.Context, clk clock.Clock, interval time.Duration, onTick func(now time.Time)) error {
	ticker := clk.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			onTick(now)
		}
	}
}
