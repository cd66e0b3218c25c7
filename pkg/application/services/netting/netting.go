// Package netting implements time-phased net requirement calculation:
// gross demand netted against available inventory, scheduled receipts,
// and safety stock, carrying the projected available balance across
// periods.
package netting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

// CalculateNetRequirement nets one item in one time bucket.
//
//	net = max(0, gross - available - receipts + safetyStock)
//
// available is the quantity on hand at the start of the bucket: the
// item's static on-hand for the first bucket of a run, the carried
// projected balance afterwards. The projected balance deliberately
// ignores safety stock and may go negative; a negative balance carries
// the shortfall into the next bucket's net requirement instead of
// silently absorbing it.
func CalculateNetRequirement(
	item *entities.Item,
	level, periodIndex int,
	period entities.Period,
	gross, available, receipts decimal.Decimal,
) entities.Requirement {
	net := gross.Sub(available).Sub(receipts).Add(item.SafetyStock)
	if net.IsNegative() {
		net = decimal.Zero
	}
	projected := available.Add(receipts).Sub(gross)

	return entities.Requirement{
		ItemID:             item.ID,
		Level:              level,
		PeriodIndex:        periodIndex,
		Period:             period,
		GrossRequirement:   gross,
		OnHand:             available,
		ScheduledReceipts:  receipts,
		SafetyStock:        item.SafetyStock,
		NetRequirement:     net,
		ProjectedAvailable: projected,
	}
}

// CalculateAcrossHorizon nets one item over the whole horizon, in period
// order, threading the projected available balance from each bucket into
// the next. gross and receipts are per-period vectors aligned with the
// horizon.
func CalculateAcrossHorizon(
	item *entities.Item,
	level int,
	horizon entities.Horizon,
	gross, receipts []decimal.Decimal,
) ([]entities.Requirement, error) {
	if len(gross) != len(horizon) {
		return nil, fmt.Errorf("gross vector has %d buckets, horizon has %d", len(gross), len(horizon))
	}
	if len(receipts) != len(horizon) {
		return nil, fmt.Errorf("receipts vector has %d buckets, horizon has %d", len(receipts), len(horizon))
	}

	requirements := make([]entities.Requirement, 0, len(horizon))
	available := item.OnHand
	for i, period := range horizon {
		req := CalculateNetRequirement(item, level, i, period, gross[i], available, receipts[i])
		requirements = append(requirements, req)
		available = req.ProjectedAvailable
	}
	return requirements, nil
}
