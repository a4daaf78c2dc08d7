package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// SimpleChart provides a thread-safe in-memory transition chart.
// Uses a nested map structure for O(1) transition lookups: [fromState][event][]Transition
type SimpleChart struct {
	transitions map[string]map[string][]Transition
	mu          sync.RWMutex
}

func newSimpleChart() *SimpleChart {
	return &SimpleChart{
		transitions: make(map[string]map[string][]Transition),
	}
}

func (c *SimpleChart) AddTransition(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fromStateName := from.Name()
	eventName := event.Name()

	if _, ok := c.transitions[fromStateName]; !ok {
		c.transitions[fromStateName] = make(map[string][]Transition)
	}

	transition := Transition{
		From:    from,
		To:      to,
		Event:   event,
		Guards:  guards,
		Actions: actions,
	}

	// Multiple transitions allowed for same from/event to support guard-based branching
	c.transitions[fromStateName][eventName] = append(c.transitions[fromStateName][eventName], transition)
	return nil
}

// Fire resolves the transition from the given state for the given event and
// returns the resulting state. The caller is responsible for persisting it.
func (c *SimpleChart) Fire(ctx context.Context, from State, event Event, data any) (State, error) {
	if from == nil {
		return nil, ErrInvalidState
	}
	if event == nil {
		return nil, ErrInvalidEvent
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	fromStateName := from.Name()
	eventName := event.Name()

	if _, ok := c.transitions[fromStateName]; !ok {
		return nil, NewErrNoTransitionAvailable(fromStateName, eventName)
	}

	transitions, ok := c.transitions[fromStateName][eventName]
	if !ok || len(transitions) == 0 {
		return nil, NewErrNoTransitionAvailable(fromStateName, eventName)
	}

	// First transition with passing guards wins (enables priority ordering)
	var validTransition *Transition
	for i, t := range transitions {
		allGuardsPassed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, from, event, data) {
				allGuardsPassed = false
				break
			}
		}
		if allGuardsPassed {
			validTransition = &transitions[i]
			break
		}
	}

	if validTransition == nil {
		return nil, NewErrTransitionRejected(fromStateName, eventName)
	}

	// Execute actions before returning the new state; any failure aborts the transition
	for _, action := range validTransition.Actions {
		if action != nil {
			if err := action(ctx, from, validTransition.To, event, data); err != nil {
				return nil, fmt.Errorf("action failed: %w", err)
			}
		}
	}

	return validTransition.To, nil
}

func (c *SimpleChart) CanFire(ctx context.Context, from State, event Event, data any) bool {
	if from == nil || event == nil {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	fromStateName := from.Name()
	eventName := event.Name()

	if _, ok := c.transitions[fromStateName]; !ok {
		return false
	}

	transitions, ok := c.transitions[fromStateName][eventName]
	if !ok || len(transitions) == 0 {
		return false
	}

	// Return true if any transition's guards would allow it
	for _, t := range transitions {
		allGuardsPassed := true
		for _, guard := range t.Guards {
			if guard != nil && !guard(ctx, from, event, data) {
				allGuardsPassed = false
				break
			}
		}
		if allGuardsPassed {
			return true
		}
	}

	return false
}

// IsTerminal reports whether a state has no outgoing transitions.
// Terminal states act as sinks: once an entity reaches one, no event moves it.
func (c *SimpleChart) IsTerminal(state State) bool {
	if state == nil {
		return false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	events, ok := c.transitions[state.Name()]
	return !ok || len(events) == 0
}
