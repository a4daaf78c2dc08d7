// Package statemachine provides a stateless, thread-safe transition chart for
// entities that carry their own current state.
//
// The package revolves around two minimal interfaces – State and Event – that
// give you full freedom to model domain specific states and events while the
// library handles:
//  1. Transition validation and lookup
//  2. Optional Guard evaluation to accept or reject transitions
//  3. Execution of side-effect Actions during transitions
//  4. Concurrency-safe access to the transition map
//
// Unlike a classic FSM instance, a Chart does not track a current state.
// Callers load an entity (for example a payment transaction), ask the chart to
// resolve the transition from the entity's stored state, and persist the
// result. A single Chart therefore serves any number of entities concurrently.
//
// Ready-made helpers such as StringState and StringEvent let you get started
// quickly for simple scenarios, while custom struct types can satisfy the
// interfaces when additional data is required.
//
// # Usage
//
//	const (
//	    Pending   = statemachine.StringState("Pending")
//	    Completed = statemachine.StringState("Completed")
//	    Complete  = statemachine.StringEvent("complete")
//	)
//
//	chart := statemachine.MustNew(
//	    statemachine.WithTransition(Pending, Completed, Complete),
//	)
//
//	next, err := chart.Fire(ctx, Pending, Complete, nil)
//
// Rich error types with helper predicates (e.g. IsNoTransitionAvailableError)
// allow callers to differentiate between "transition not defined" and
// "guard rejected" cases. IsTerminal reports sink states that have no outgoing
// transitions.
package statemachine
