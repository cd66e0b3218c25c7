package dto

import (
	"time"

	"mrpkit/pkg/domain/entities"
)

// MRPCalculationResult contains the complete output of a planning run.
// Success reflects only fatal input errors: a run full of exceptions is
// still successful, callers branch on Success first and inspect
// Exceptions regardless.
type MRPCalculationResult struct {
	PlanID               string                       `json:"plan_id"`
	Success              bool                         `json:"success"`
	TotalItemsProcessed  int                          `json:"total_items_processed"`
	PlannedOrdersCreated int                          `json:"planned_orders_created"`
	ExceptionsGenerated  int                          `json:"exceptions_generated"`
	ExecutionTime        time.Duration                `json:"execution_time"`
	Requirements         []entities.Requirement       `json:"requirements"`
	PlannedOrders        []entities.PlannedOrder      `json:"planned_orders"`
	Exceptions           []entities.Exception         `json:"exceptions"`
	ErrorMessage         string                       `json:"error_message,omitempty"`
}

// NewFailedResult builds the result of a run aborted by input validation:
// nothing partial, only the error message.
func NewFailedResult(planID string, executionTime time.Duration, errorMessage string) *MRPCalculationResult {
	return &MRPCalculationResult{
		PlanID:        planID,
		Success:       false,
		ExecutionTime: executionTime,
		ErrorMessage:  errorMessage,
	}
}
