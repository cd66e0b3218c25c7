package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OrderType represents the type of planned order
type OrderType int

const (
	Production OrderType = iota
	Purchase
)

// String method for OrderType enum
func (o OrderType) String() string {
	switch o {
	case Production:
		return "Production"
	case Purchase:
		return "Purchase"
	default:
		return "Unknown"
	}
}

// PlannedOrder is the engine's proposed purchase or production order
// covering a net requirement. ReleaseDate may lie in the past or even
// after DueDate when lead times are infeasible or negative; the engine
// reports such orders together with an exception instead of adjusting
// them.
type PlannedOrder struct {
	ItemID            ItemID
	Quantity          decimal.Decimal
	ReleaseDate       time.Time
	DueDate           time.Time
	OrderType         OrderType
	Level             int
	SourcePeriodIndex int
	Source            string
}

// NewPlannedOrder creates a validated PlannedOrder
func NewPlannedOrder(
	itemID ItemID,
	quantity decimal.Decimal,
	releaseDate, dueDate time.Time,
	orderType OrderType,
	level, sourcePeriodIndex int,
	source string,
) (*PlannedOrder, error) {
	if string(itemID) == "" {
		return nil, fmt.Errorf("order item id cannot be empty")
	}
	if quantity.Sign() <= 0 {
		return nil, fmt.Errorf("order quantity must be positive, got %s", quantity)
	}
	if dueDate.IsZero() {
		return nil, fmt.Errorf("order due date cannot be zero")
	}

	return &PlannedOrder{
		ItemID:            itemID,
		Quantity:          quantity,
		ReleaseDate:       releaseDate,
		DueDate:           dueDate,
		OrderType:         orderType,
		Level:             level,
		SourcePeriodIndex: sourcePeriodIndex,
		Source:            source,
	}, nil
}

// Ref returns a stable human-readable reference for exception reporting.
func (o *PlannedOrder) Ref() string {
	return fmt.Sprintf("%s@%s", o.ItemID, o.DueDate.Format("2006-01-02"))
}
