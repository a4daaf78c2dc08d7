package statemachine

import (
	"fmt"
)

// Option configures a chart during construction.
type Option func(*SimpleChart) error

// TransitionOption configures a single transition with guards and actions.
type TransitionOption func(*transitionConfig)

// TransitionDef defines a transition between states.
type TransitionDef struct {
	From    State
	To      State
	Event   Event
	Guards  []Guard
	Actions []Action
}

type transitionConfig struct {
	guards  []Guard
	actions []Action
}

// New creates a new transition chart with the given options.
func New(opts ...Option) (Chart, error) {
	c := newSimpleChart()

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// MustNew creates a new transition chart with the given options.
// Panics if any option fails to apply.
func MustNew(opts ...Option) Chart {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to create state chart: %v", err))
	}
	return c
}

// WithTransition adds a single transition to the chart.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(c *SimpleChart) error {
		cfg := &transitionConfig{}
		for _, opt := range opts {
			opt(cfg)
		}

		return c.AddTransition(from, to, event, cfg.guards, cfg.actions)
	}
}

// WithTransitions adds multiple transitions to the chart at once.
func WithTransitions(transitions []TransitionDef) Option {
	return func(c *SimpleChart) error {
		for i, t := range transitions {
			if err := c.AddTransition(t.From, t.To, t.Event, t.Guards, t.Actions); err != nil {
				// Handle nil states/events safely in error message
				fromName := "<nil>"
				toName := "<nil>"
				eventName := "<nil>"

				if t.From != nil {
					fromName = t.From.Name()
				}
				if t.To != nil {
					toName = t.To.Name()
				}
				if t.Event != nil {
					eventName = t.Event.Name()
				}

				return fmt.Errorf("failed to add transition[%d] %s->%s on %s: %w",
					i, fromName, toName, eventName, err)
			}
		}
		return nil
	}
}

// WithGuard adds a single guard to a transition.
func WithGuard(guard Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		if guard != nil {
			cfg.guards = append(cfg.guards, guard)
		}
	}
}

// WithAction adds a single action to a transition.
func WithAction(action Action) TransitionOption {
	return func(cfg *transitionConfig) {
		if action != nil {
			cfg.actions = append(cfg.actions, action)
		}
	}
}
