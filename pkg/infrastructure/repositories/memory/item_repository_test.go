package memory

import (
	"testing"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

func testItems() []*entities.Item {
	return []*entities.Item{
		{
			ID:           "BIKE",
			Description:  "City Bicycle",
			LeadTimeDays: 5,
			Policy:       entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured: true,
		},
		{
			ID:           "WHEEL",
			Description:  "Wheel Assembly",
			LeadTimeDays: 7,
			SafetyStock:  decimal.NewFromInt(20),
			Policy:       entities.LotSizingPolicy{Method: entities.FixedOrderQuantity, EconomicOrderQty: decimal.NewFromInt(50)},
			Purchased:    true,
		},
	}
}

func TestItemRepository_LoadAndGet(t *testing.T) {
	repo := NewItemRepository(2)
	if err := repo.LoadItems(testItems()); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}

	item, err := repo.GetItem("WHEEL")
	if err != nil {
		t.Fatalf("GetItem failed: %v", err)
	}
	if item.Description != "Wheel Assembly" {
		t.Errorf("Expected Wheel Assembly, got %s", item.Description)
	}
	if item.Policy.Method != entities.FixedOrderQuantity {
		t.Errorf("Expected FixedOrderQuantity policy, got %s", item.Policy.Method)
	}
}

func TestItemRepository_GetMissingItem(t *testing.T) {
	repo := NewItemRepository(0)

	if _, err := repo.GetItem("NO_SUCH_ITEM"); err == nil {
		t.Errorf("Expected error for missing item")
	}
}

func TestItemRepository_RejectsDuplicates(t *testing.T) {
	repo := NewItemRepository(2)
	items := testItems()
	items = append(items, items[0])

	if err := repo.LoadItems(items); err == nil {
		t.Errorf("Expected error for duplicate item id")
	}
}

func TestItemRepository_GetAllItems(t *testing.T) {
	repo := NewItemRepository(2)
	if err := repo.LoadItems(testItems()); err != nil {
		t.Fatalf("LoadItems failed: %v", err)
	}

	all, err := repo.GetAllItems()
	if err != nil {
		t.Fatalf("GetAllItems failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 items, got %d", len(all))
	}
}
