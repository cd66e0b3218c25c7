package main

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/application/services/planning"
	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/infrastructure/repositories/memory"
)

func main() {
	ctx := context.Background()

	itemRepo := memory.NewItemRepository(4)
	bomRepo := memory.NewBOMRepository(3)
	receiptRepo := memory.NewScheduledReceiptRepository(1)

	setupBicycleData(itemRepo, bomRepo, receiptRepo)

	orchestrator := planning.NewOrchestrator(itemRepo, bomRepo, receiptRepo)

	// Four weekly buckets starting 2024-03-04
	start := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	periods := make([]entities.Period, 4)
	for i := range periods {
		periodStart := start.AddDate(0, 0, i*7)
		period, err := entities.NewPeriod(periodStart, periodStart.AddDate(0, 0, 7))
		if err != nil {
			fmt.Printf("invalid period: %v\n", err)
			return
		}
		periods[i] = *period
	}
	horizon, err := entities.NewHorizon(periods)
	if err != nil {
		fmt.Printf("invalid horizon: %v\n", err)
		return
	}

	needDate := start.AddDate(0, 0, 16)
	demand, err := entities.NewDemand("BIKE", decimal.NewFromInt(100), needDate, "SPRING_FORECAST")
	if err != nil {
		fmt.Printf("invalid demand: %v\n", err)
		return
	}

	plan := entities.NewPlan("bicycle demo", []entities.Demand{*demand}, horizon, 0, start)

	fmt.Println("Running MRP for the spring bicycle forecast...")
	fmt.Printf("Demand: 100 bikes needed by %s\n\n", needDate.Format("2006-01-02"))

	result, err := orchestrator.ExecutePlan(ctx, plan)
	if err != nil {
		fmt.Printf("planning failed: %v\n", err)
		return
	}
	if !result.Success {
		fmt.Printf("plan failed: %s\n", result.ErrorMessage)
		return
	}

	fmt.Println("Results:")
	fmt.Printf("  Items Processed: %d\n", result.TotalItemsProcessed)
	fmt.Printf("  Planned Orders: %d\n", result.PlannedOrdersCreated)
	fmt.Printf("  Exceptions: %d\n", result.ExceptionsGenerated)
	fmt.Println()

	if len(result.PlannedOrders) > 0 {
		fmt.Println("Planned Orders:")
		for _, order := range result.PlannedOrders {
			fmt.Printf("  %s: %s units, release %s, due %s (%s)\n",
				order.ItemID,
				order.Quantity.String(),
				order.ReleaseDate.Format("2006-01-02"),
				order.DueDate.Format("2006-01-02"),
				order.OrderType.String())
		}
		fmt.Println()
	}

	for _, exc := range result.Exceptions {
		fmt.Printf("  [%s] %s\n", exc.Kind.String(), exc.Detail)
	}
}

func setupBicycleData(itemRepo *memory.ItemRepository, bomRepo *memory.BOMRepository, receiptRepo *memory.ScheduledReceiptRepository) {
	itemRepo.AddItem(entities.Item{
		ID:            "BIKE",
		Description:   "City Bicycle",
		LeadTimeDays:  5,
		OnHand:        decimal.NewFromInt(10),
		Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
		Manufactured:  true,
		UnitOfMeasure: "EA",
	})
	itemRepo.AddItem(entities.Item{
		ID:            "FRAME",
		Description:   "Welded Frame",
		LeadTimeDays:  10,
		Policy:        entities.LotSizingPolicy{Method: entities.LotForLot},
		Manufactured:  true,
		UnitOfMeasure: "EA",
	})
	itemRepo.AddItem(entities.Item{
		ID:           "WHEEL",
		Description:  "Assembled Wheel",
		LeadTimeDays: 7,
		SafetyStock:  decimal.NewFromInt(20),
		Policy: entities.LotSizingPolicy{
			Method:           entities.FixedOrderQuantity,
			EconomicOrderQty: decimal.NewFromInt(50),
		},
		Purchased:     true,
		UnitOfMeasure: "EA",
	})

	bomRepo.AddBOMLine(entities.BOMLine{
		ParentID:    "BIKE",
		ComponentID: "FRAME",
		QuantityPer: decimal.NewFromInt(1),
		ScrapFactor: decimal.NewFromInt(1),
	})
	bomRepo.AddBOMLine(entities.BOMLine{
		ParentID:    "BIKE",
		ComponentID: "WHEEL",
		QuantityPer: decimal.NewFromInt(2),
		ScrapFactor: decimal.NewFromInt(1),
	})

	receiptRepo.AddReceipt(entities.ScheduledReceipt{
		ItemID:   "WHEEL",
		Quantity: decimal.NewFromInt(40),
		DueDate:  time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC),
		Source:   "PO-1042",
	})
}
