// Package flow provides the title/active/paused state machine that decides
// whether the training loop runs on a given tick.
package flow

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

// State is a node of the activation state machine.
type State int

const (
	StateIdle   State = iota // Title screen, nothing running
	StateActive              // Training loop running
	StatePaused              // Training loop suspended, state preserved
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateActive:
		return "Active"
	case StatePaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// ErrInvalidTransition is returned when a transition is not allowed from the current state.
var ErrInvalidTransition = errors.New("flow: invalid transition")

// Handlers holds the callbacks of one state. Any of them may be nil.
type Handlers struct {
	// Enter runs after the machine switches into the state.
	Enter func(from State)
	// Update runs once per tick while the state is current.
	Update func(in core.InputFrame)
	// Exit runs before the machine leaves the state.
	Exit func(to State)
}

// TransitionListener observes every successful transition.
type TransitionListener func(from, to State)

// Machine dispatches per-tick updates and enter/exit hooks for the current state.
type Machine struct {
	current   State
	started   bool
	handlers  map[State]Handlers
	allowed   map[State][]State
	listeners []TransitionListener
}

// NewMachine creates a machine in StateIdle with the standard transitions:
// Idle -> Active, Active <-> Paused.
func NewMachine() *Machine {
	return &Machine{
		current:  StateIdle,
		handlers: make(map[State]Handlers),
		allowed: map[State][]State{
			StateIdle:   {StateActive},
			StateActive: {StatePaused},
			StatePaused: {StateActive},
		},
	}
}

// Handle registers the callbacks for a state, replacing any previous ones.
func (m *Machine) Handle(s State, h Handlers) {
	m.handlers[s] = h
}

// OnTransition registers a listener called after every transition.
func (m *Machine) OnTransition(fn TransitionListener) {
	if fn != nil {
		m.listeners = append(m.listeners, fn)
	}
}

// Start runs the Enter hook of the initial state. Calling it twice is a no-op.
func (m *Machine) Start() {
	if m.started {
		return
	}
	m.started = true
	if h := m.handlers[m.current]; h.Enter != nil {
		h.Enter(m.current)
	}
}

// Current returns the current state.
func (m *Machine) Current() State {
	return m.current
}

// Active reports whether the training loop should run this tick.
func (m *Machine) Active() bool {
	return m.current == StateActive
}

// Can reports whether a transition to the given state is allowed.
func (m *Machine) Can(to State) bool {
	for _, s := range m.allowed[m.current] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the machine to a new state, running the exit hook of the
// old state and the enter hook of the new one.
func (m *Machine) Transition(to State) error {
	if !m.Can(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.current, to)
	}

	from := m.current
	if h := m.handlers[from]; h.Exit != nil {
		h.Exit(to)
	}
	m.current = to
	if h := m.handlers[to]; h.Enter != nil {
		h.Enter(from)
	}
	for _, fn := range m.listeners {
		fn(from, to)
	}
	return nil
}

// Update dispatches one tick to the current state's Update hook.
func (m *Machine) Update(in core.InputFrame) {
	if !m.started {
		m.Start()
	}
	if h := m.handlers[m.current]; h.Update != nil {
		h.Update(in)
	}
}
