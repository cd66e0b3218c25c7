package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

func TestScheduledReceiptRepository_SumsWithinPeriod(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	period := entities.Period{Start: start, End: start.AddDate(0, 0, 7)}

	repo := NewScheduledReceiptRepository(3)
	receipts := []*entities.ScheduledReceipt{
		{ItemID: "WHEEL", Quantity: decimal.NewFromInt(40), DueDate: start.AddDate(0, 0, 1), Source: "PO-1"},
		{ItemID: "WHEEL", Quantity: decimal.NewFromInt(25), DueDate: start.AddDate(0, 0, 5), Source: "PO-2"},
		{ItemID: "WHEEL", Quantity: decimal.NewFromInt(100), DueDate: start.AddDate(0, 0, 7), Source: "PO-3"},
		{ItemID: "RIM", Quantity: decimal.NewFromInt(10), DueDate: start.AddDate(0, 0, 2), Source: "PO-4"},
	}
	if err := repo.LoadReceipts(receipts); err != nil {
		t.Fatalf("LoadReceipts failed: %v", err)
	}

	total, err := repo.GetScheduledReceipts("WHEEL", period)
	if err != nil {
		t.Fatalf("GetScheduledReceipts failed: %v", err)
	}
	// PO-3 is due on the period end instant and belongs to the next bucket.
	if !total.Equal(decimal.NewFromInt(65)) {
		t.Errorf("Expected 65, got %s", total)
	}
}

func TestScheduledReceiptRepository_NoReceipts(t *testing.T) {
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	period := entities.Period{Start: start, End: start.AddDate(0, 0, 7)}

	repo := NewScheduledReceiptRepository(0)
	total, err := repo.GetScheduledReceipts("WHEEL", period)
	if err != nil {
		t.Fatalf("GetScheduledReceipts failed: %v", err)
	}
	if !total.IsZero() {
		t.Errorf("Expected zero for an item with no receipts, got %s", total)
	}
}

func TestScheduledReceiptRepository_GetAllReceipts(t *testing.T) {
	repo := NewScheduledReceiptRepository(1)
	repo.AddReceipt(entities.ScheduledReceipt{
		ItemID:   "WHEEL",
		Quantity: decimal.NewFromInt(40),
		DueDate:  time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Source:   "PO-1",
	})

	all, err := repo.GetAllReceipts()
	if err != nil {
		t.Fatalf("GetAllReceipts failed: %v", err)
	}
	if len(all) != 1 || all[0].Source != "PO-1" {
		t.Errorf("Expected the loaded receipt back, got %v", all)
	}
}
