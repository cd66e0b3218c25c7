package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewItem_Validation(t *testing.T) {
	tests := []struct {
		name        string
		id          ItemID
		safetyStock decimal.Decimal
		onHand      decimal.Decimal
		purchased   bool
		manufactured bool
		wantErr     bool
	}{
		{
			name:         "valid_manufactured",
			id:           "WIDGET",
			safetyStock:  decimal.Zero,
			onHand:       decimal.Zero,
			manufactured: true,
		},
		{
			name:      "valid_purchased",
			id:        "BOLT",
			safetyStock: decimal.NewFromInt(10),
			onHand:    decimal.NewFromInt(100),
			purchased: true,
		},
		{
			name:         "empty_id",
			id:           "",
			safetyStock:  decimal.Zero,
			onHand:       decimal.Zero,
			manufactured: true,
			wantErr:      true,
		},
		{
			name:         "negative_safety_stock",
			id:           "WIDGET",
			safetyStock:  decimal.NewFromInt(-1),
			onHand:       decimal.Zero,
			manufactured: true,
			wantErr:      true,
		},
		{
			name:         "negative_on_hand",
			id:           "WIDGET",
			safetyStock:  decimal.Zero,
			onHand:       decimal.NewFromInt(-5),
			manufactured: true,
			wantErr:      true,
		},
		{
			name:        "neither_purchased_nor_manufactured",
			id:          "WIDGET",
			safetyStock: decimal.Zero,
			onHand:      decimal.Zero,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewItem(tt.id, "test item", 5, 0, tt.safetyStock, tt.onHand,
				LotSizingPolicy{Method: LotForLot}, tt.purchased, tt.manufactured, "EA")
			if tt.wantErr && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestParseLotSizingMethod(t *testing.T) {
	tests := []struct {
		input   string
		want    LotSizingMethod
		wantErr bool
	}{
		{input: "lot_for_lot", want: LotForLot},
		{input: "LotForLot", want: LotForLot},
		{input: "fixed_order_qty", want: FixedOrderQuantity},
		{input: "FixedOrderQuantity", want: FixedOrderQuantity},
		{input: "economic_order_qty", want: EconomicOrderQuantity},
		{input: "periods_of_supply", want: PeriodsOfSupply},
		{input: "bogus", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLotSizingMethod(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q, got nil", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLotSizingMethod_String(t *testing.T) {
	if LotForLot.String() != "LotForLot" {
		t.Errorf("Expected LotForLot, got %s", LotForLot.String())
	}
	if PeriodsOfSupply.String() != "PeriodsOfSupply" {
		t.Errorf("Expected PeriodsOfSupply, got %s", PeriodsOfSupply.String())
	}
}
