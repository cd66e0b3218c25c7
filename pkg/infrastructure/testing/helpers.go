package testing

import (
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/infrastructure/repositories/memory"
)

// Qty converts an int into a decimal quantity for test data.
func Qty(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}

// BuildWeeklyHorizon builds n consecutive 7-day periods starting at start.
func BuildWeeklyHorizon(start time.Time, n int) entities.Horizon {
	periods := make([]entities.Period, 0, n)
	for i := 0; i < n; i++ {
		periods = append(periods, entities.Period{
			Start: start.AddDate(0, 0, i*7),
			End:   start.AddDate(0, 0, (i+1)*7),
		})
	}
	return entities.Horizon(periods)
}

// BuildBicycleTestData builds a three-level product structure:
//
//	BIKE (manufactured)
//	├── FRAME  x1 (manufactured)
//	│   └── TUBE_SET x4 (purchased)
//	└── WHEEL  x2 (manufactured)
//	    ├── RIM   x1 (purchased)
//	    └── SPOKE x32 (purchased)
func BuildBicycleTestData() (*memory.ItemRepository, *memory.BOMRepository, *memory.ScheduledReceiptRepository) {
	itemRepo := memory.NewItemRepository(6)
	bomRepo := memory.NewBOMRepository(5)
	receiptRepo := memory.NewScheduledReceiptRepository(0)

	items := []*entities.Item{
		{
			ID:            "BIKE",
			Description:   "City Bicycle",
			LeadTimeDays:  5,
			SafetyStock:   Qty(0),
			OnHand:        Qty(0),
			Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured:  true,
			UnitOfMeasure: "EA",
		},
		{
			ID:            "FRAME",
			Description:   "Welded Frame",
			LeadTimeDays:  10,
			SafetyStock:   Qty(0),
			OnHand:        Qty(0),
			Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured:  true,
			UnitOfMeasure: "EA",
		},
		{
			ID:            "WHEEL",
			Description:   "Wheel Assembly",
			LeadTimeDays:  7,
			SafetyStock:   Qty(0),
			OnHand:        Qty(0),
			Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured:  true,
			UnitOfMeasure: "EA",
		},
		{
			ID:            "TUBE_SET",
			Description:   "Frame Tube Set",
			LeadTimeDays:  14,
			SafetyStock:   Qty(0),
			OnHand:        Qty(0),
			Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
			Purchased:     true,
			UnitOfMeasure: "EA",
		},
		{
			ID:            "RIM",
			Description:   "Alloy Rim",
			LeadTimeDays:  21,
			SafetyStock:   Qty(0),
			OnHand:        Qty(0),
			Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
			Purchased:     true,
			UnitOfMeasure: "EA",
		},
		{
			ID:            "SPOKE",
			Description:   "Stainless Spoke",
			LeadTimeDays:  21,
			SafetyStock:   Qty(0),
			OnHand:        Qty(0),
			Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
			Purchased:     true,
			UnitOfMeasure: "EA",
		},
	}
	if err := itemRepo.LoadItems(items); err != nil {
		panic(err)
	}

	one := Qty(1)
	lines := []*entities.BOMLine{
		{ParentID: "BIKE", ComponentID: "FRAME", QuantityPer: Qty(1), ScrapFactor: one},
		{ParentID: "BIKE", ComponentID: "WHEEL", QuantityPer: Qty(2), ScrapFactor: one},
		{ParentID: "FRAME", ComponentID: "TUBE_SET", QuantityPer: Qty(4), ScrapFactor: one},
		{ParentID: "WHEEL", ComponentID: "RIM", QuantityPer: Qty(1), ScrapFactor: one},
		{ParentID: "WHEEL", ComponentID: "SPOKE", QuantityPer: Qty(32), ScrapFactor: one},
	}
	if err := bomRepo.LoadBOMLines(lines); err != nil {
		panic(err)
	}

	return itemRepo, bomRepo, receiptRepo
}

// BuildPhantomTestData builds a structure with a phantom mid-level:
//
//	PUMP (manufactured)
//	└── SEAL_KIT x3 (phantom)
//	    └── GASKET x2 (purchased)
func BuildPhantomTestData() (*memory.ItemRepository, *memory.BOMRepository, *memory.ScheduledReceiptRepository) {
	itemRepo := memory.NewItemRepository(3)
	bomRepo := memory.NewBOMRepository(2)
	receiptRepo := memory.NewScheduledReceiptRepository(0)

	items := []*entities.Item{
		{
			ID:           "PUMP",
			Description:  "Hydraulic Pump",
			LeadTimeDays: 3,
			SafetyStock:  Qty(0),
			OnHand:       Qty(0),
			Policy:       entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured: true,
		},
		{
			ID:           "SEAL_KIT",
			Description:  "Seal Kit (phantom)",
			LeadTimeDays: 0,
			SafetyStock:  Qty(0),
			OnHand:       Qty(0),
			Policy:       entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured: true,
		},
		{
			ID:           "GASKET",
			Description:  "Rubber Gasket",
			LeadTimeDays: 7,
			SafetyStock:  Qty(0),
			OnHand:       Qty(0),
			Policy:       entities.LotSizingPolicy{Method: entities.LotForLot},
			Purchased:    true,
		},
	}
	if err := itemRepo.LoadItems(items); err != nil {
		panic(err)
	}

	one := Qty(1)
	lines := []*entities.BOMLine{
		{ParentID: "PUMP", ComponentID: "SEAL_KIT", QuantityPer: Qty(3), ScrapFactor: one, Phantom: true},
		{ParentID: "SEAL_KIT", ComponentID: "GASKET", QuantityPer: Qty(2), ScrapFactor: one},
	}
	if err := bomRepo.LoadBOMLines(lines); err != nil {
		panic(err)
	}

	return itemRepo, bomRepo, receiptRepo
}

// BuildCyclicTestData builds a deliberately cyclic structure: ALPHA
// contains BETA and BETA contains ALPHA.
func BuildCyclicTestData() (*memory.ItemRepository, *memory.BOMRepository, *memory.ScheduledReceiptRepository) {
	itemRepo := memory.NewItemRepository(2)
	bomRepo := memory.NewBOMRepository(2)
	receiptRepo := memory.NewScheduledReceiptRepository(0)

	items := []*entities.Item{
		{
			ID:           "ALPHA",
			Description:  "Alpha Assembly",
			LeadTimeDays: 1,
			SafetyStock:  Qty(0),
			OnHand:       Qty(0),
			Policy:       entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured: true,
		},
		{
			ID:           "BETA",
			Description:  "Beta Assembly",
			LeadTimeDays: 1,
			SafetyStock:  Qty(0),
			OnHand:       Qty(0),
			Policy:       entities.LotSizingPolicy{Method: entities.LotForLot},
			Manufactured: true,
		},
	}
	if err := itemRepo.LoadItems(items); err != nil {
		panic(err)
	}

	one := Qty(1)
	lines := []*entities.BOMLine{
		{ParentID: "ALPHA", ComponentID: "BETA", QuantityPer: Qty(1), ScrapFactor: one},
		{ParentID: "BETA", ComponentID: "ALPHA", QuantityPer: Qty(1), ScrapFactor: one},
	}
	if err := bomRepo.LoadBOMLines(lines); err != nil {
		panic(err)
	}

	return itemRepo, bomRepo, receiptRepo
}
