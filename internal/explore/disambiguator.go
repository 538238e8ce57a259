package explore

import (
	"sync"
	"time"
)

// DoubleClickWindow is how long after a first click a second click on the
// same node still counts as a double-click.
const DoubleClickWindow = 300 * time.Millisecond

// ClickPhase is the disambiguator state.
type ClickPhase int

const (
	// PhaseIdle means no click sequence is in progress.
	PhaseIdle ClickPhase = iota

	// PhaseArmed means one click was seen and the select timer is running.
	PhaseArmed
)

// ActionKind classifies what a transition emitted.
type ActionKind int

const (
	// ActionNone means the transition emitted nothing.
	ActionNone ActionKind = iota

	// ActionSelect means a single click completed: open the detail view.
	ActionSelect

	// ActionExpand means a double-click completed: expand the node.
	ActionExpand
)

// ClickAction is the effect emitted by one transition.
type ClickAction struct {
	Kind   ActionKind
	NodeID string
}

// ClickState is the full disambiguator state. Transitions are pure
// functions of (state, event, now), so the machine is testable with any
// clock.
type ClickState struct {
	Phase    ClickPhase
	NodeID   string
	Deadline time.Time
}

// Click advances the machine for a click on nodeID at time now.
//
// A second click on the armed node before the deadline emits Expand. A
// click on a different node re-arms for that node without emitting. A
// click arriving after the deadline resolves the overdue sequence as
// Select and arms a fresh sequence for the new click.
func (st ClickState) Click(nodeID string, now time.Time) (ClickState, ClickAction) {
	armed := ClickState{Phase: PhaseArmed, NodeID: nodeID, Deadline: now.Add(DoubleClickWindow)}

	if st.Phase == PhaseIdle {
		return armed, ClickAction{Kind: ActionNone}
	}

	if !now.Before(st.Deadline) {
		// The select timer should have fired already.
		return armed, ClickAction{Kind: ActionSelect, NodeID: st.NodeID}
	}

	if st.NodeID == nodeID {
		return ClickState{Phase: PhaseIdle}, ClickAction{Kind: ActionExpand, NodeID: nodeID}
	}

	return armed, ClickAction{Kind: ActionNone}
}

// Tick advances the machine for a timer check at time now. If an armed
// sequence's deadline has passed, it completes as Select.
func (st ClickState) Tick(now time.Time) (ClickState, ClickAction) {
	if st.Phase != PhaseArmed || now.Before(st.Deadline) {
		return st, ClickAction{Kind: ActionNone}
	}

	return ClickState{Phase: PhaseIdle}, ClickAction{Kind: ActionSelect, NodeID: st.NodeID}
}

// Disambiguator wraps the pure machine with a real timer and dispatches
// the emitted actions to callbacks.
type Disambiguator struct {
	mu    sync.Mutex
	state ClickState
	timer *time.Timer

	now      func() time.Time
	onSelect func(nodeID string)
	onExpand func(nodeID string)
}

// NewDisambiguator creates a disambiguator dispatching to the given
// callbacks. Either callback may be nil.
func NewDisambiguator(onSelect, onExpand func(nodeID string)) *Disambiguator {
	return &Disambiguator{
		now:      time.Now,
		onSelect: onSelect,
		onExpand: onExpand,
	}
}

// Click registers a click on nodeID.
func (d *Disambiguator) Click(nodeID string) {
	d.mu.Lock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	next, action := d.state.Click(nodeID, d.now())
	d.state = next

	if next.Phase == PhaseArmed {
		d.timer = time.AfterFunc(time.Until(next.Deadline), d.fire)
	}

	d.mu.Unlock()

	d.dispatch(action)
}

// Stop cancels any pending select timer without emitting.
func (d *Disambiguator) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	d.state = ClickState{}
}

func (d *Disambiguator) fire() {
	d.mu.Lock()

	next, action := d.state.Tick(d.now())
	d.state = next
	d.timer = nil

	d.mu.Unlock()

	d.dispatch(action)
}

func (d *Disambiguator) dispatch(action ClickAction) {
	switch action.Kind {
	case ActionSelect:
		if d.onSelect != nil {
			d.onSelect(action.NodeID)
		}
	case ActionExpand:
		if d.onExpand != nil {
			d.onExpand(action.NodeID)
		}
	case ActionNone:
	}
}
