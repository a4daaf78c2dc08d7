package transactions

import (
	"time"

	"github.com/aasthachits/chitfund/pkg/statemachine"
)

// Status is a transaction's lifecycle state. Pending is the only
// non-terminal state; Completed, Failed and Cancelled are sinks.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
	StatusFailed    Status = "Failed"
	StatusCancelled Status = "Cancelled"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

func (s Status) state() statemachine.State {
	return statemachine.StringState(s)
}

// Transaction is a member's monthly payment record for a chit plan.
// Status is mutated only through Service.Transition.
type Transaction struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user" json:"userId"`
	PlanID    string    `bson:"chitPlan" json:"chitPlanId"`
	Amount    float64   `bson:"amount" json:"amount"`
	Status    Status    `bson:"status" json:"status"`
	Date      time.Time `bson:"date" json:"date"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

var (
	eventComplete = statemachine.StringEvent("complete")
	eventFail     = statemachine.StringEvent("fail")
	eventCancel   = statemachine.StringEvent("cancel")

	// eventForTarget maps a requested target status to the event that
	// drives the chart there.
	eventForTarget = map[Status]statemachine.Event{
		StatusCompleted: eventComplete,
		StatusFailed:    eventFail,
		StatusCancelled: eventCancel,
	}
)

// newLifecycleChart builds the transition chart: Pending fans out to the
// three terminal states, which have no outgoing transitions.
func newLifecycleChart() statemachine.Chart {
	return statemachine.MustNew(
		statemachine.WithTransitions([]statemachine.TransitionDef{
			{From: StatusPending.state(), To: StatusCompleted.state(), Event: eventComplete},
			{From: StatusPending.state(), To: StatusFailed.state(), Event: eventFail},
			{From: StatusPending.state(), To: StatusCancelled.state(), Event: eventCancel},
		}),
	)
}
