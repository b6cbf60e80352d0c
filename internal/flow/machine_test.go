package flow

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-reflex/internal/core"
)

func TestMachineStartsIdle(t *testing.T) {
	m := NewMachine()

	if m.Current() != StateIdle {
		t.Errorf("Current() = %s, expected Idle", m.Current())
	}
	if m.Active() {
		t.Error("Idle machine should not be active")
	}
}

func TestMachineTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []State
		wantErr bool
	}{
		{"start training", []State{StateActive}, false},
		{"pause and resume", []State{StateActive, StatePaused, StateActive}, false},
		{"cannot pause from idle", []State{StatePaused}, true},
		{"cannot return to idle", []State{StateActive, StateIdle}, true},
		{"cannot re-enter active", []State{StateActive, StateActive}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMachine()
			var err error
			for _, s := range tc.path {
				if err = m.Transition(s); err != nil {
					break
				}
			}
			if tc.wantErr {
				if !errors.Is(err, ErrInvalidTransition) {
					t.Errorf("expected ErrInvalidTransition, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Current() != tc.path[len(tc.path)-1] {
				t.Errorf("Current() = %s, expected %s", m.Current(), tc.path[len(tc.path)-1])
			}
		})
	}
}

func TestMachineHooksOrder(t *testing.T) {
	m := NewMachine()
	var calls []string

	m.Handle(StateIdle, Handlers{
		Enter: func(from State) { calls = append(calls, "enter idle") },
		Exit:  func(to State) { calls = append(calls, "exit idle to "+to.String()) },
	})
	m.Handle(StateActive, Handlers{
		Enter: func(from State) { calls = append(calls, "enter active from "+from.String()) },
	})
	m.OnTransition(func(from, to State) {
		calls = append(calls, "listener "+from.String()+"->"+to.String())
	})

	m.Start()
	m.Start() // no-op
	if err := m.Transition(StateActive); err != nil {
		t.Fatalf("Transition() failed: %v", err)
	}

	expected := []string{
		"enter idle",
		"exit idle to Active",
		"enter active from Idle",
		"listener Idle->Active",
	}
	if len(calls) != len(expected) {
		t.Fatalf("calls = %v, expected %v", calls, expected)
	}
	for i := range expected {
		if calls[i] != expected[i] {
			t.Errorf("call %d = %q, expected %q", i, calls[i], expected[i])
		}
	}
}

func TestMachineUpdateDispatchesToCurrentState(t *testing.T) {
	m := NewMachine()
	var idleTicks, activeTicks int

	m.Handle(StateIdle, Handlers{
		Update: func(in core.InputFrame) {
			idleTicks++
			if in.Has(core.ActionConfirm) {
				//nolint:errcheck // Idle -> Active is always allowed
				m.Transition(StateActive)
			}
		},
	})
	m.Handle(StateActive, Handlers{
		Update: func(in core.InputFrame) { activeTicks++ },
	})

	m.Update(core.NewInputFrame())
	confirm := core.NewInputFrame()
	confirm.Set(core.ActionConfirm)
	m.Update(confirm)
	m.Update(core.NewInputFrame())
	m.Update(core.NewInputFrame())

	if idleTicks != 2 {
		t.Errorf("idle updates = %d, expected 2", idleTicks)
	}
	if activeTicks != 2 {
		t.Errorf("active updates = %d, expected 2", activeTicks)
	}
	if !m.Active() {
		t.Error("machine should be active after confirm")
	}
}

func TestFailedTransitionRunsNoHooks(t *testing.T) {
	m := NewMachine()
	exited := false
	m.Handle(StateIdle, Handlers{Exit: func(State) { exited = true }})

	if err := m.Transition(StatePaused); err == nil {
		t.Fatal("expected error")
	}
	if exited {
		t.Error("exit hook should not run on a rejected transition")
	}
	if m.Current() != StateIdle {
		t.Errorf("state changed to %s on rejected transition", m.Current())
	}
}
