// Package lotsizing converts net requirements into order quantities
// under the item's lot sizing policy. The methods form a closed set
// dispatched by a pure function; no policy carries hidden state.
package lotsizing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

var one = decimal.NewFromInt(1)

// Apply sizes an order for the given net requirement. The returned
// exceptions are feasibility and arithmetic anomalies; the quantity is
// always usable, degraded policies fall back to lot-for-lot for the
// occurrence.
//
// Constraint order after method sizing is fixed: round up to the order
// multiple, then clamp to the minimum (even when that exceeds the
// rounded value), then clamp to the maximum. A maximum clamp that leaves
// the order short of the net requirement records an UnresolvedShortage.
func Apply(
	itemID entities.ItemID,
	periodIndex int,
	policy entities.LotSizingPolicy,
	net decimal.Decimal,
) (decimal.Decimal, []entities.Exception) {
	if net.Sign() <= 0 {
		return decimal.Zero, nil
	}

	var exceptions []entities.Exception
	qty := net

	switch policy.Method {
	case entities.LotForLot, entities.PeriodsOfSupply:
		// Periods-of-supply input already reflects the window sum; both
		// methods order exactly what is required.
		qty = net

	case entities.FixedOrderQuantity:
		if policy.EconomicOrderQty.Sign() <= 0 {
			exceptions = append(exceptions, entities.NewNegativeInputException(itemID, periodIndex,
				fmt.Sprintf("fixed order quantity sizing requires a positive economic order quantity, got %s; falling back to lot-for-lot", policy.EconomicOrderQty)))
			qty = net
			break
		}
		qty = roundUpToMultiple(net, policy.EconomicOrderQty)

	case entities.EconomicOrderQuantity:
		if policy.EconomicOrderQty.Sign() <= 0 {
			exceptions = append(exceptions, entities.NewNegativeInputException(itemID, periodIndex,
				fmt.Sprintf("economic order quantity must be positive, got %s; falling back to lot-for-lot", policy.EconomicOrderQty)))
			qty = net
			break
		}
		if net.LessThanOrEqual(policy.EconomicOrderQty) {
			qty = policy.EconomicOrderQty
		} else {
			qty = roundUpToMultiple(net, policy.EconomicOrderQty)
		}

	default:
		qty = net
	}

	if policy.OrderMultiple.GreaterThan(one) {
		qty = roundUpToMultiple(qty, policy.OrderMultiple)
	}
	if policy.MinQty.Sign() > 0 && qty.LessThan(policy.MinQty) {
		qty = policy.MinQty
	}
	if policy.MaxQty.Sign() > 0 && qty.GreaterThan(policy.MaxQty) {
		qty = policy.MaxQty
		if qty.LessThan(net) {
			exceptions = append(exceptions, entities.NewUnresolvedShortageException(itemID, periodIndex,
				fmt.Sprintf("max order quantity %s cannot cover net requirement %s in one order", policy.MaxQty, net)))
		}
	}

	return qty, exceptions
}

// roundUpToMultiple returns the smallest multiple of lot covering qty.
func roundUpToMultiple(qty, lot decimal.Decimal) decimal.Decimal {
	return qty.Div(lot).Ceil().Mul(lot)
}
