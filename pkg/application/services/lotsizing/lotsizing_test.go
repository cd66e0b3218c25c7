package lotsizing

import (
	"testing"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

func qty(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

func TestApply_LotForLot(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.LotForLot}

	got, excs := Apply("WIDGET", 0, policy, qty(75))
	if !got.Equal(qty(75)) {
		t.Errorf("Expected 75, got %s", got)
	}
	if len(excs) != 0 {
		t.Errorf("Expected no exceptions, got %d", len(excs))
	}
}

func TestApply_NonPositiveNetOrdersNothing(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.FixedOrderQuantity, EconomicOrderQty: qty(50)}

	for _, net := range []decimal.Decimal{qty(0), qty(-10)} {
		got, excs := Apply("WIDGET", 0, policy, net)
		if !got.IsZero() {
			t.Errorf("Expected zero for net %s, got %s", net, got)
		}
		if len(excs) != 0 {
			t.Errorf("Expected no exceptions for net %s, got %d", net, len(excs))
		}
	}
}

func TestApply_FixedOrderQuantity(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.FixedOrderQuantity, EconomicOrderQty: qty(50)}

	tests := []struct {
		name string
		net  int64
		want int64
	}{
		{name: "rounds_up_to_two_lots", net: 75, want: 100},
		{name: "exact_lot", net: 50, want: 50},
		{name: "below_one_lot", net: 10, want: 50},
		{name: "three_lots", net: 101, want: 150},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, excs := Apply("WIDGET", 0, policy, qty(tt.net))
			if !got.Equal(qty(tt.want)) {
				t.Errorf("Expected %d, got %s", tt.want, got)
			}
			if len(excs) != 0 {
				t.Errorf("Expected no exceptions, got %d", len(excs))
			}
		})
	}
}

func TestApply_FixedOrderQuantityZeroLotFallsBack(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.FixedOrderQuantity}

	got, excs := Apply("WIDGET", 3, policy, qty(75))
	if !got.Equal(qty(75)) {
		t.Errorf("Expected lot-for-lot fallback of 75, got %s", got)
	}
	if len(excs) != 1 {
		t.Fatalf("Expected 1 exception, got %d", len(excs))
	}
	if excs[0].Kind != entities.NegativeInput {
		t.Errorf("Expected NegativeInput, got %s", excs[0].Kind)
	}
	if excs[0].PeriodIndex != 3 {
		t.Errorf("Expected period index 3, got %d", excs[0].PeriodIndex)
	}
}

func TestApply_EconomicOrderQuantity(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.EconomicOrderQuantity, EconomicOrderQty: qty(50)}

	tests := []struct {
		name string
		net  int64
		want int64
	}{
		{name: "net_below_eoq_orders_eoq", net: 30, want: 50},
		{name: "net_equals_eoq", net: 50, want: 50},
		{name: "net_above_eoq_rounds_up", net: 75, want: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, excs := Apply("WIDGET", 0, policy, qty(tt.net))
			if !got.Equal(qty(tt.want)) {
				t.Errorf("Expected %d, got %s", tt.want, got)
			}
			if len(excs) != 0 {
				t.Errorf("Expected no exceptions, got %d", len(excs))
			}
		})
	}
}

func TestApply_EconomicOrderQuantityZeroEOQFallsBack(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.EconomicOrderQuantity}

	got, excs := Apply("WIDGET", 0, policy, qty(42))
	if !got.Equal(qty(42)) {
		t.Errorf("Expected lot-for-lot fallback of 42, got %s", got)
	}
	if len(excs) != 1 || excs[0].Kind != entities.NegativeInput {
		t.Errorf("Expected one NegativeInput exception, got %v", excs)
	}
}

func TestApply_PeriodsOfSupplyOrdersWindowSum(t *testing.T) {
	// The caller pre-sums the window, so the policy passes the quantity
	// through unchanged.
	policy := entities.LotSizingPolicy{Method: entities.PeriodsOfSupply, PeriodsOfSupply: 3}

	got, excs := Apply("WIDGET", 0, policy, qty(90))
	if !got.Equal(qty(90)) {
		t.Errorf("Expected 90, got %s", got)
	}
	if len(excs) != 0 {
		t.Errorf("Expected no exceptions, got %d", len(excs))
	}
}

func TestApply_OrderMultipleRounding(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.LotForLot, OrderMultiple: qty(10)}

	got, _ := Apply("WIDGET", 0, policy, qty(75))
	if !got.Equal(qty(80)) {
		t.Errorf("Expected 80, got %s", got)
	}
}

func TestApply_MinQtyClamp(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.LotForLot, MinQty: qty(25)}

	got, excs := Apply("WIDGET", 0, policy, qty(5))
	if !got.Equal(qty(25)) {
		t.Errorf("Expected 25, got %s", got)
	}
	if len(excs) != 0 {
		t.Errorf("Expected no exceptions, got %d", len(excs))
	}
}

func TestApply_MaxQtyClampRecordsShortage(t *testing.T) {
	policy := entities.LotSizingPolicy{Method: entities.LotForLot, MaxQty: qty(100)}

	got, excs := Apply("WIDGET", 2, policy, qty(120))
	if !got.Equal(qty(100)) {
		t.Errorf("Expected clamp to 100, got %s", got)
	}
	if len(excs) != 1 {
		t.Fatalf("Expected 1 exception, got %d", len(excs))
	}
	if excs[0].Kind != entities.UnresolvedShortage {
		t.Errorf("Expected UnresolvedShortage, got %s", excs[0].Kind)
	}
	if excs[0].PeriodIndex != 2 {
		t.Errorf("Expected period index 2, got %d", excs[0].PeriodIndex)
	}
}

func TestApply_MaxQtyClampWithoutShortage(t *testing.T) {
	// Rounding pushed the quantity above max, but max still covers net.
	policy := entities.LotSizingPolicy{Method: entities.LotForLot, OrderMultiple: qty(50), MaxQty: qty(60)}

	got, excs := Apply("WIDGET", 0, policy, qty(55))
	if !got.Equal(qty(60)) {
		t.Errorf("Expected clamp to 60, got %s", got)
	}
	if len(excs) != 0 {
		t.Errorf("Expected no exceptions since max covers net, got %d", len(excs))
	}
}

func TestApply_ConstraintOrder(t *testing.T) {
	// Method sizing, then multiple rounding, then min clamp: 35 sizes to
	// 60 (two lots of 30), rounds to 75 (multiple 25), clamps up to 80.
	policy := entities.LotSizingPolicy{
		Method:           entities.FixedOrderQuantity,
		EconomicOrderQty: qty(30),
		OrderMultiple:    qty(25),
		MinQty:           qty(80),
	}

	got, excs := Apply("WIDGET", 0, policy, qty(35))
	if !got.Equal(qty(80)) {
		t.Errorf("Expected 80, got %s", got)
	}
	if len(excs) != 0 {
		t.Errorf("Expected no exceptions, got %d", len(excs))
	}
}

func TestApply_FractionalLotRounding(t *testing.T) {
	policy := entities.LotSizingPolicy{
		Method:           entities.FixedOrderQuantity,
		EconomicOrderQty: decimal.RequireFromString("2.5"),
	}

	got, _ := Apply("WIDGET", 0, policy, decimal.RequireFromString("6.1"))
	if !got.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("Expected 7.5, got %s", got)
	}
}
