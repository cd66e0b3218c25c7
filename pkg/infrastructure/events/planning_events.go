package events

import (
	"mrpkit/pkg/domain/entities"
)

const (
	RunStartedEvent      = "plan.run.started"
	RunCompletedEvent    = "plan.run.completed"
	RunFailedEvent       = "plan.run.failed"
	LevelCompletedEvent  = "plan.level.completed"
	OrderPlannedEvent    = "order.planned"
	ExceptionRaisedEvent = "exception.raised"
)

// RunStarted is published when a plan transitions to Running.
type RunStarted struct {
	PlanID   string `json:"plan_id"`
	PlanName string `json:"plan_name"`
	Demands  int    `json:"demands"`
	Periods  int    `json:"periods"`
	MaxLevel int    `json:"max_level"`
}

// RunCompleted is published on the Completed transition.
type RunCompleted struct {
	PlanID        string `json:"plan_id"`
	PlannedOrders int    `json:"planned_orders"`
	Exceptions    int    `json:"exceptions"`
}

// RunFailed is published on the Failed transition.
type RunFailed struct {
	PlanID string `json:"plan_id"`
	Reason string `json:"reason"`
}

// LevelCompleted is published after each BOM level's barrier-then-merge.
type LevelCompleted struct {
	PlanID        string `json:"plan_id"`
	Level         int    `json:"level"`
	Items         int    `json:"items"`
	PlannedOrders int    `json:"planned_orders"`
}

// OrderPlanned is published for every emitted planned order.
type OrderPlanned struct {
	PlanID string                `json:"plan_id"`
	Order  entities.PlannedOrder `json:"order"`
}

// ExceptionRaised is published for every recorded exception.
type ExceptionRaised struct {
	PlanID    string             `json:"plan_id"`
	Exception entities.Exception `json:"exception"`
}

func NewRunStartedEvent(plan *entities.Plan) Event {
	return NewEvent(RunStartedEvent, plan.ID.String(), RunStarted{
		PlanID:   plan.ID.String(),
		PlanName: plan.Name,
		Demands:  len(plan.Demands),
		Periods:  len(plan.Horizon),
		MaxLevel: plan.MaxLevel,
	})
}

func NewRunCompletedEvent(planID string, plannedOrders, exceptions int) Event {
	return NewEvent(RunCompletedEvent, planID, RunCompleted{
		PlanID:        planID,
		PlannedOrders: plannedOrders,
		Exceptions:    exceptions,
	})
}

func NewRunFailedEvent(planID, reason string) Event {
	return NewEvent(RunFailedEvent, planID, RunFailed{PlanID: planID, Reason: reason})
}

func NewLevelCompletedEvent(planID string, level, items, plannedOrders int) Event {
	return NewEvent(LevelCompletedEvent, planID, LevelCompleted{
		PlanID:        planID,
		Level:         level,
		Items:         items,
		PlannedOrders: plannedOrders,
	})
}

func NewOrderPlannedEvent(planID string, order entities.PlannedOrder) Event {
	return NewEvent(OrderPlannedEvent, planID, OrderPlanned{PlanID: planID, Order: order})
}

func NewExceptionRaisedEvent(planID string, exception entities.Exception) Event {
	return NewEvent(ExceptionRaisedEvent, planID, ExceptionRaised{PlanID: planID, Exception: exception})
}
