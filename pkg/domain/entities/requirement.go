package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Demand represents top-level external demand for an item, the input to a
// planning run.
type Demand struct {
	ItemID   ItemID
	Quantity decimal.Decimal
	NeedDate time.Time
	Source   string
}

// NewDemand creates a validated Demand
func NewDemand(itemID ItemID, quantity decimal.Decimal, needDate time.Time, source string) (*Demand, error) {
	if string(itemID) == "" {
		return nil, fmt.Errorf("demand item id cannot be empty")
	}
	if quantity.Sign() <= 0 {
		return nil, fmt.Errorf("demand quantity must be positive, got %s", quantity)
	}
	if needDate.IsZero() {
		return nil, fmt.Errorf("demand need date cannot be zero")
	}
	return &Demand{
		ItemID:   itemID,
		Quantity: quantity,
		NeedDate: needDate,
		Source:   source,
	}, nil
}

// ScheduledReceipt is an open order or other inbound supply already on the
// books, consumed by netting before any new order is planned.
type ScheduledReceipt struct {
	ItemID   ItemID
	Quantity decimal.Decimal
	DueDate  time.Time
	Source   string
}

// Requirement is the time-phased netting result for one item in one
// period. OnHand holds the quantity available at the start of the bucket:
// the item's static on-hand for the first bucket, the projected available
// balance carried from the prior bucket (possibly negative) afterwards.
type Requirement struct {
	ItemID             ItemID
	Level              int
	PeriodIndex        int
	Period             Period
	GrossRequirement   decimal.Decimal
	OnHand             decimal.Decimal
	ScheduledReceipts  decimal.Decimal
	SafetyStock        decimal.Decimal
	NetRequirement     decimal.Decimal
	ProjectedAvailable decimal.Decimal
}
