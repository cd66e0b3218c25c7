package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNewCyclicBOMException_PathFormat(t *testing.T) {
	exc := NewCyclicBOMException("ALPHA", []ItemID{"ALPHA", "BETA"})

	if exc.Kind != CyclicBOM {
		t.Errorf("Expected CyclicBOM kind, got %s", exc.Kind)
	}
	if exc.Severity != SeverityError {
		t.Errorf("Expected Error severity, got %s", exc.Severity)
	}
	if exc.PeriodIndex != -1 {
		t.Errorf("Expected unscoped period index -1, got %d", exc.PeriodIndex)
	}
	want := "cyclic BOM: ALPHA -> BETA -> ALPHA"
	if exc.Detail != want {
		t.Errorf("Expected detail %q, got %q", want, exc.Detail)
	}
}

func TestNewPastDueOrderException_CarriesOrderRef(t *testing.T) {
	due := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	order, err := NewPlannedOrder("WHEEL", decimal.NewFromInt(10), due.AddDate(0, 0, -7), due, Purchase, 1, 2, "test")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	exc := NewPastDueOrderException(order, "release before plan date")
	if exc.Kind != PastDueOrder {
		t.Errorf("Expected PastDueOrder kind, got %s", exc.Kind)
	}
	if exc.Severity != SeverityWarning {
		t.Errorf("Expected Warning severity, got %s", exc.Severity)
	}
	if exc.OrderRef != "WHEEL@2024-03-11" {
		t.Errorf("Expected order ref WHEEL@2024-03-11, got %s", exc.OrderRef)
	}
	if exc.PeriodIndex != 2 {
		t.Errorf("Expected period index 2, got %d", exc.PeriodIndex)
	}
}
