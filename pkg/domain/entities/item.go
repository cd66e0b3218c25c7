package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ItemID is a unique item master identifier
type ItemID string

// LotSizingMethod represents the lot sizing method for an item
type LotSizingMethod int

const (
	LotForLot LotSizingMethod = iota
	FixedOrderQuantity
	EconomicOrderQuantity
	PeriodsOfSupply
)

// String method for LotSizingMethod enum
func (m LotSizingMethod) String() string {
	switch m {
	case LotForLot:
		return "LotForLot"
	case FixedOrderQuantity:
		return "FixedOrderQuantity"
	case EconomicOrderQuantity:
		return "EconomicOrderQuantity"
	case PeriodsOfSupply:
		return "PeriodsOfSupply"
	default:
		return "Unknown"
	}
}

// ParseLotSizingMethod converts a string (as used in CSV and YAML scenario
// files) into a LotSizingMethod.
func ParseLotSizingMethod(s string) (LotSizingMethod, error) {
	switch s {
	case "lot_for_lot", "LotForLot":
		return LotForLot, nil
	case "fixed_order_qty", "FixedOrderQuantity":
		return FixedOrderQuantity, nil
	case "economic_order_qty", "EconomicOrderQuantity":
		return EconomicOrderQuantity, nil
	case "periods_of_supply", "PeriodsOfSupply":
		return PeriodsOfSupply, nil
	default:
		return LotForLot, fmt.Errorf("unknown lot sizing method: %q", s)
	}
}

// LotSizingPolicy bundles a lot sizing method with its sizing parameters.
// Zero-valued constraints are treated as absent: MinQty and MaxQty of zero
// mean unconstrained, an OrderMultiple of one or less means no rounding.
type LotSizingPolicy struct {
	Method           LotSizingMethod
	MinQty           decimal.Decimal
	MaxQty           decimal.Decimal
	OrderMultiple    decimal.Decimal
	EconomicOrderQty decimal.Decimal
	PeriodsOfSupply  int
}

// Item represents item master data as seen by the planning engine. The
// engine only ever reads items; nothing here is mutated by a planning run.
type Item struct {
	ID                 ItemID
	Description        string
	LeadTimeDays       int
	SafetyLeadTimeDays int
	SafetyStock        decimal.Decimal
	OnHand             decimal.Decimal
	Policy             LotSizingPolicy
	Purchased          bool
	Manufactured       bool
	UnitOfMeasure      string
}

// NewItem creates a validated Item
func NewItem(
	id ItemID,
	description string,
	leadTimeDays, safetyLeadTimeDays int,
	safetyStock, onHand decimal.Decimal,
	policy LotSizingPolicy,
	purchased, manufactured bool,
	unitOfMeasure string,
) (*Item, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("item id cannot be empty")
	}
	if safetyStock.IsNegative() {
		return nil, fmt.Errorf("safety stock cannot be negative, got %s", safetyStock)
	}
	if onHand.IsNegative() {
		return nil, fmt.Errorf("on-hand quantity cannot be negative, got %s", onHand)
	}
	if !purchased && !manufactured {
		return nil, fmt.Errorf("item %s must be purchased, manufactured, or both", id)
	}

	return &Item{
		ID:                 id,
		Description:        description,
		LeadTimeDays:       leadTimeDays,
		SafetyLeadTimeDays: safetyLeadTimeDays,
		SafetyStock:        safetyStock,
		OnHand:             onHand,
		Policy:             policy,
		Purchased:          purchased,
		Manufactured:       manufactured,
		UnitOfMeasure:      unitOfMeasure,
	}, nil
}
