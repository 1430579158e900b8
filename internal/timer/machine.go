// Package timer drives the work/break box cycle and the once-per-day
// threshold notification from clock ticks.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/alexanderramin/focusbox/internal/domain"
	"github.com/google/uuid"
)

// Cue names passed to Effects.Cue.
const (
	CueBegin     = "begin"
	CueWorkEnd   = "work-end"
	CueBreakEnd  = "break-end"
	CueDailyGoal = "daily-goal"
)

// Settings supplies the configured phase durations. Values are read when a
// phase starts, so a reload takes effect from the next phase.
type Settings interface {
	WorkDuration() time.Duration
	BreakDuration() time.Duration
}

// Effects delivers audible cues and notifications. Implementations handle
// their own failures; the machine never waits on them.
type Effects interface {
	Cue(name string)
	Notify(title, body string)
}

// BoxRecorder persists completed boxes.
type BoxRecorder interface {
	AddBox(ctx context.Context, b domain.Box) error
}

// Snapshot is the observable state after a tick.
type Snapshot struct {
	State     domain.BoxState
	Remaining time.Duration
	Pending   *domain.Transition
	// Err is the last box persistence failure, kept until DismissError.
	Err error
}

// Clock formats Remaining as MM:SS.
func (s Snapshot) Clock() string {
	return FormatRemaining(s.Remaining)
}

// FormatRemaining renders d as MM:SS, truncating partial seconds.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

type effectKey struct {
	to      domain.BoxState
	trigger domain.TriggerKind
}

type sideEffect struct {
	cue   string
	title string
	body  string
}

// sideEffects lists every (target, trigger) pair that produces output.
// Pairs not listed produce nothing.
var sideEffects = map[effectKey]sideEffect{
	{domain.BoxFinished, domain.TriggerAutomatic}: {cue: CueWorkEnd, title: "Session finished", body: "Time for a break."},
	{domain.BoxReady, domain.TriggerAutomatic}:    {cue: CueBreakEnd, title: "Ready to focus", body: "Break is over."},
	{domain.BoxRunning, domain.TriggerManual}:     {cue: CueBegin},
}

// Machine is the box state machine. It is not safe for concurrent use; one
// goroutine owns it and calls Tick and RequestTransition in sequence.
type Machine struct {
	state   domain.BoxState
	beganAt *time.Time
	endAt   *time.Time
	pending *domain.Transition

	work     time.Duration
	rest     time.Duration
	lastErr  error
	settings Settings
	effects  Effects
	boxes    BoxRecorder
	logger   *slog.Logger
	strict   bool
}

// MachineOption customizes a Machine.
type MachineOption func(*Machine)

// WithStrict makes invariant violations panic instead of degrading.
func WithStrict(strict bool) MachineOption {
	return func(m *Machine) { m.strict = strict }
}

func WithMachineLogger(l *slog.Logger) MachineOption {
	return func(m *Machine) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewMachine returns a machine in the ready state.
func NewMachine(settings Settings, effects Effects, boxes BoxRecorder, opts ...MachineOption) *Machine {
	m := &Machine{
		state:    domain.BoxReady,
		settings: settings,
		effects:  effects,
		boxes:    boxes,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state without ticking.
func (m *Machine) State() domain.BoxState { return m.state }

// RequestTransition queues a manual move to the next state, replacing any
// transition already queued. It has no other effect until the next Tick.
func (m *Machine) RequestTransition() {
	m.pending = &domain.Transition{To: m.state.Progressed(), Trigger: domain.TriggerManual}
}

// DismissError clears the error reported on snapshots.
func (m *Machine) DismissError() { m.lastErr = nil }

// Tick applies a queued transition, then updates the countdown for now. A
// countdown reaching zero queues an automatic transition for the next tick.
func (m *Machine) Tick(ctx context.Context, now time.Time) Snapshot {
	if m.pending != nil {
		m.apply(ctx, *m.pending, now)
		m.pending = nil
	}

	snap := Snapshot{State: m.state}
	switch m.state {
	case domain.BoxRunning:
		snap.Remaining = m.countdown(m.beganAt, m.work, now, "began_at")
	case domain.BoxFinished:
		snap.Remaining = m.countdown(m.endAt, m.rest, now, "end_at")
	}
	if m.pending != nil {
		p := *m.pending
		snap.Pending = &p
	}
	snap.Err = m.lastErr
	return snap
}

func (m *Machine) apply(ctx context.Context, t domain.Transition, now time.Time) {
	prevBegan := m.beganAt
	workAtStart := m.work
	m.state = t.To

	if t == (domain.Transition{To: domain.BoxRunning, Trigger: domain.TriggerAutomatic}) {
		m.violation("automatic transition into running")
	} else if fx, ok := sideEffects[effectKey{t.To, t.Trigger}]; ok {
		if fx.cue != "" {
			m.effects.Cue(fx.cue)
		}
		if fx.title != "" {
			m.effects.Notify(fx.title, fx.body)
		}
	}

	at := now
	switch t.To {
	case domain.BoxRunning:
		m.beganAt, m.endAt = &at, nil
		m.work = m.settings.WorkDuration()
	case domain.BoxFinished:
		m.beganAt, m.endAt = nil, &at
		m.rest = m.settings.BreakDuration()
	default:
		m.beganAt, m.endAt = nil, nil
	}

	if t.To == domain.BoxFinished {
		m.recordBox(ctx, prevBegan, workAtStart, now)
	}
	m.logger.Debug("box transition", "to", t.To, "trigger", t.Trigger)
}

func (m *Machine) recordBox(ctx context.Context, began *time.Time, work time.Duration, now time.Time) {
	if began == nil {
		m.violation("finished without a began_at timestamp")
		return
	}
	minutes := int(work / time.Minute)
	if !domain.Completed(*began, now, minutes) {
		m.logger.Debug("box too short to record", "elapsed", now.Sub(*began), "work", work)
		return
	}
	b := domain.Box{ID: uuid.New().String(), Start: *began, WorkMinutes: minutes}
	if err := m.boxes.AddBox(ctx, b); err != nil {
		m.logger.Error("saving box", "error", err)
		m.lastErr = fmt.Errorf("saving box: %w", err)
	}
}

func (m *Machine) countdown(since *time.Time, length time.Duration, now time.Time, field string) time.Duration {
	if since == nil {
		m.violation(fmt.Sprintf("%s missing in state %s", field, m.state))
		return 0
	}
	remaining := length - now.Sub(*since)
	if remaining > 0 {
		return remaining
	}
	m.pending = &domain.Transition{To: m.state.Progressed(), Trigger: domain.TriggerAutomatic}
	return 0
}

func (m *Machine) violation(msg string) {
	if m.strict {
		panic("box machine: " + msg)
	}
	m.logger.Error("box machine invariant violated", "detail", msg, "state", m.state)
}
