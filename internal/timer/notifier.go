package timer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/focusbox/internal/repository"
)

const dateLayout = "2006-01-02"

// GuardStore persists the last date each named notifier fired.
type GuardStore interface {
	LastDate(ctx context.Context, name string) (string, error)
	SetLastDate(ctx context.Context, name, date string) error
}

// ThresholdNotifier fires at most once per calendar day, the first time an
// observed value reaches its threshold.
type ThresholdNotifier struct {
	name     string
	fire     func(value, threshold int)
	loc      *time.Location
	store    GuardStore
	logger   *slog.Logger
	lastDate string
}

// NotifierOption customizes a ThresholdNotifier.
type NotifierOption func(*ThresholdNotifier)

// WithLocation sets the zone calendar days are computed in.
func WithLocation(loc *time.Location) NotifierOption {
	return func(n *ThresholdNotifier) {
		if loc != nil {
			n.loc = loc
		}
	}
}

// WithGuardStore persists the guard date so a restart on the same day does
// not fire again.
func WithGuardStore(store GuardStore) NotifierOption {
	return func(n *ThresholdNotifier) { n.store = store }
}

func WithNotifierLogger(l *slog.Logger) NotifierOption {
	return func(n *ThresholdNotifier) {
		if l != nil {
			n.logger = l
		}
	}
}

func NewThresholdNotifier(name string, fire func(value, threshold int), opts ...NotifierOption) *ThresholdNotifier {
	n := &ThresholdNotifier{
		name:   name,
		fire:   fire,
		loc:    time.Local,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewDailyWorkNotifier cues and notifies when today's work minutes reach the
// daily goal.
func NewDailyWorkNotifier(effects Effects, opts ...NotifierOption) *ThresholdNotifier {
	return NewThresholdNotifier("daily-work", func(value, threshold int) {
		effects.Cue(CueDailyGoal)
		effects.Notify("Daily goal reached",
			fmt.Sprintf("%d minutes of focused work today (goal %d).", value, threshold))
	}, opts...)
}

// Load reads the persisted guard date, if a store is configured.
func (n *ThresholdNotifier) Load(ctx context.Context) error {
	if n.store == nil {
		return nil
	}
	date, err := n.store.LastDate(ctx, n.name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s guard: %w", n.name, err)
	}
	n.lastDate = date
	return nil
}

// Observe fires the side effect when value >= threshold and the notifier has
// not fired yet on now's calendar day. A threshold of 0 or less disables the
// notifier. It reports whether it fired.
func (n *ThresholdNotifier) Observe(ctx context.Context, value, threshold int, now time.Time) bool {
	if threshold <= 0 || value < threshold {
		return false
	}
	today := now.In(n.loc).Format(dateLayout)
	if today == n.lastDate {
		return false
	}
	n.fire(value, threshold)
	n.lastDate = today
	if n.store != nil {
		if err := n.store.SetLastDate(ctx, n.name, today); err != nil {
			n.logger.Warn("persisting notification guard", "name", n.name, "error", err)
		}
	}
	return true
}

// LastDate is the calendar date the notifier last fired, or "".
func (n *ThresholdNotifier) LastDate() string { return n.lastDate }
