package entities

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// BOMLine represents a single line in a Bill of Materials. A phantom line
// marks the component as a transient sub-assembly: the component itself is
// never stocked or ordered, its own BOM lines attach directly to the
// parent's demand. EffectiveFrom/EffectiveTo bound the line's validity;
// nil means open ended.
type BOMLine struct {
	ParentID      ItemID
	ComponentID   ItemID
	QuantityPer   decimal.Decimal
	ScrapFactor   decimal.Decimal
	Phantom       bool
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
}

// NewBOMLine creates a validated BOMLine. A zero scrap factor is
// normalized to one (no scrap).
func NewBOMLine(
	parentID, componentID ItemID,
	quantityPer, scrapFactor decimal.Decimal,
	phantom bool,
	effectiveFrom, effectiveTo *time.Time,
) (*BOMLine, error) {
	if string(parentID) == "" {
		return nil, fmt.Errorf("parent item id cannot be empty")
	}
	if string(componentID) == "" {
		return nil, fmt.Errorf("component item id cannot be empty")
	}
	if parentID == componentID {
		return nil, fmt.Errorf("parent and component cannot be the same item: %s", parentID)
	}
	if quantityPer.Sign() <= 0 {
		return nil, fmt.Errorf("quantity per must be positive, got %s", quantityPer)
	}
	if scrapFactor.IsZero() {
		scrapFactor = decimal.NewFromInt(1)
	}
	if scrapFactor.LessThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("scrap factor must be at least 1, got %s", scrapFactor)
	}
	if effectiveFrom != nil && effectiveTo != nil && effectiveTo.Before(*effectiveFrom) {
		return nil, fmt.Errorf("effective-to %v precedes effective-from %v", effectiveTo, effectiveFrom)
	}

	return &BOMLine{
		ParentID:      parentID,
		ComponentID:   componentID,
		QuantityPer:   quantityPer,
		ScrapFactor:   scrapFactor,
		Phantom:       phantom,
		EffectiveFrom: effectiveFrom,
		EffectiveTo:   effectiveTo,
	}, nil
}

// EffectiveAt reports whether the line is active at the given date.
func (l *BOMLine) EffectiveAt(t time.Time) bool {
	if l.EffectiveFrom != nil && t.Before(*l.EffectiveFrom) {
		return false
	}
	if l.EffectiveTo != nil && t.After(*l.EffectiveTo) {
		return false
	}
	return true
}

// ExtendedQuantityPer returns quantity per parent unit including scrap.
func (l *BOMLine) ExtendedQuantityPer() decimal.Decimal {
	return l.QuantityPer.Mul(l.ScrapFactor)
}

// BOMExplosionItem is one node of an exploded product structure. Level 0 is
// the exploded root; ParentItemID is empty at level 0 and otherwise names
// the nearest non-phantom ancestor. Instances are created fresh per
// explosion call and never mutated afterwards.
type BOMExplosionItem struct {
	Level              int
	ItemID             ItemID
	ParentItemID       ItemID
	RequiredQuantity   decimal.Decimal
	CumulativeQuantity decimal.Decimal
	LeadTimeDays       int
	Phantom            bool
	Purchased          bool
	Manufactured       bool
}
