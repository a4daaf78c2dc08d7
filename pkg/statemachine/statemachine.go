package statemachine

import (
	"context"
)

// State represents a state in the state chart.
type State interface {
	Name() string
}

// Event represents an event that can trigger a state transition.
type Event interface {
	Name() string
}

// Action executes side effects during state transitions. Returning an error prevents the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Guard evaluates whether a transition should be allowed based on runtime conditions.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Transition defines a state change triggered by an event, with optional guards and actions.
type Transition struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard  // All must pass for transition to proceed
	Actions []Action // Executed in order before the new state is returned
}

// Chart validates and resolves transitions for entities that carry their own
// current state, such as transaction records loaded from storage. Unlike a
// classic FSM instance it holds no current state itself, so a single Chart can
// serve any number of entities concurrently.
type Chart interface {
	Fire(ctx context.Context, from State, event Event, data any) (State, error)
	CanFire(ctx context.Context, from State, event Event, data any) bool
	IsTerminal(state State) bool
	AddTransition(from, to State, event Event, guards []Guard, actions []Action) error
}

// StringState provides a simple string-based state implementation for basic use cases.
type StringState string

func (s StringState) Name() string {
	return string(s)
}

// StringEvent provides a simple string-based event implementation for basic use cases.
type StringEvent string

func (e StringEvent) Name() string {
	return string(e)
}
