package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewBOMLine_Validation(t *testing.T) {
	one := decimal.NewFromInt(1)

	tests := []struct {
		name        string
		parentID    ItemID
		componentID ItemID
		quantityPer decimal.Decimal
		scrapFactor decimal.Decimal
		wantErr     bool
	}{
		{
			name:        "valid_line",
			parentID:    "BIKE",
			componentID: "WHEEL",
			quantityPer: decimal.NewFromInt(2),
			scrapFactor: one,
		},
		{
			name:        "empty_parent",
			parentID:    "",
			componentID: "WHEEL",
			quantityPer: one,
			scrapFactor: one,
			wantErr:     true,
		},
		{
			name:        "empty_component",
			parentID:    "BIKE",
			componentID: "",
			quantityPer: one,
			scrapFactor: one,
			wantErr:     true,
		},
		{
			name:        "self_reference",
			parentID:    "BIKE",
			componentID: "BIKE",
			quantityPer: one,
			scrapFactor: one,
			wantErr:     true,
		},
		{
			name:        "zero_quantity_per",
			parentID:    "BIKE",
			componentID: "WHEEL",
			quantityPer: decimal.Zero,
			scrapFactor: one,
			wantErr:     true,
		},
		{
			name:        "scrap_factor_below_one",
			parentID:    "BIKE",
			componentID: "WHEEL",
			quantityPer: one,
			scrapFactor: decimal.RequireFromString("0.9"),
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBOMLine(tt.parentID, tt.componentID, tt.quantityPer, tt.scrapFactor, false, nil, nil)
			if tt.wantErr && err == nil {
				t.Errorf("Expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestNewBOMLine_ZeroScrapDefaultsToOne(t *testing.T) {
	line, err := NewBOMLine("BIKE", "WHEEL", decimal.NewFromInt(2), decimal.Zero, false, nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !line.ScrapFactor.Equal(decimal.NewFromInt(1)) {
		t.Errorf("Expected scrap factor 1, got %s", line.ScrapFactor)
	}
}

func TestBOMLine_EffectiveAt(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	line, err := NewBOMLine("BIKE", "WHEEL", decimal.NewFromInt(2), decimal.Zero, false, &from, &to)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if line.EffectiveAt(time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected line to be inactive before effective-from")
	}
	if !line.EffectiveAt(from) {
		t.Errorf("Expected line to be active on effective-from")
	}
	if !line.EffectiveAt(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected line to be active inside the window")
	}
	if !line.EffectiveAt(to) {
		t.Errorf("Expected line to be active on effective-to")
	}
	if line.EffectiveAt(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected line to be inactive after effective-to")
	}
}

func TestNewBOMLine_EffectivityWindowOrdering(t *testing.T) {
	from := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := NewBOMLine("BIKE", "WHEEL", decimal.NewFromInt(1), decimal.Zero, false, &from, &to)
	if err == nil {
		t.Errorf("Expected error for inverted effectivity window")
	}
}

func TestBOMLine_ExtendedQuantityPer(t *testing.T) {
	line, err := NewBOMLine("BIKE", "SPOKE", decimal.NewFromInt(32), decimal.RequireFromString("1.05"), false, nil, nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := decimal.RequireFromString("33.6")
	if !line.ExtendedQuantityPer().Equal(want) {
		t.Errorf("Expected extended quantity %s, got %s", want, line.ExtendedQuantityPer())
	}
}
