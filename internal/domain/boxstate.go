package domain

// BoxState is the state of the work/break cycle.
type BoxState string

const (
	BoxReady    BoxState = "ready"
	BoxRunning  BoxState = "running"
	BoxFinished BoxState = "finished"
)

// boxCycle is the single source of truth for the order of the cycle.
var boxCycle = map[BoxState]BoxState{
	BoxReady:    BoxRunning,
	BoxRunning:  BoxFinished,
	BoxFinished: BoxReady,
}

// Progressed returns the state that follows s in the cycle. Unknown states
// restart the cycle at ready.
func (s BoxState) Progressed() BoxState {
	if next, ok := boxCycle[s]; ok {
		return next
	}
	return BoxReady
}

// TriggerKind records who asked for a transition.
type TriggerKind string

const (
	TriggerManual    TriggerKind = "manual"
	TriggerAutomatic TriggerKind = "automatic"
)

// Transition is a buffered next-state request awaiting the next tick.
type Transition struct {
	To      BoxState
	Trigger TriggerKind
}
