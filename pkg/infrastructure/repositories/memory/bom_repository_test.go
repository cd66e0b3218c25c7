package memory

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

func loadedBOMRepo(t *testing.T) *BOMRepository {
	t.Helper()
	one := decimal.NewFromInt(1)
	cutover := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	lines := []*entities.BOMLine{
		{ParentID: "BIKE", ComponentID: "FRAME", QuantityPer: one, ScrapFactor: one},
		{ParentID: "BIKE", ComponentID: "WHEEL", QuantityPer: decimal.NewFromInt(2), ScrapFactor: one},
		{ParentID: "WHEEL", ComponentID: "RIM", QuantityPer: one, ScrapFactor: one, EffectiveTo: &cutover},
	}

	repo := NewBOMRepository(len(lines))
	if err := repo.LoadBOMLines(lines); err != nil {
		t.Fatalf("LoadBOMLines failed: %v", err)
	}
	return repo
}

func TestBOMRepository_GetBOMLines(t *testing.T) {
	repo := loadedBOMRepo(t)

	lines, err := repo.GetBOMLines("BIKE")
	if err != nil {
		t.Fatalf("GetBOMLines failed: %v", err)
	}
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0].ComponentID != "FRAME" || lines[1].ComponentID != "WHEEL" {
		t.Errorf("Expected lines in load order, got %s then %s",
			lines[0].ComponentID, lines[1].ComponentID)
	}

	lines, err = repo.GetBOMLines("RIM")
	if err != nil {
		t.Fatalf("GetBOMLines failed: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected no lines for a leaf item, got %d", len(lines))
	}
}

func TestBOMRepository_GetEffectiveLines(t *testing.T) {
	repo := loadedBOMRepo(t)
	cutover := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	active, err := repo.GetEffectiveLines("WHEEL", cutover.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("GetEffectiveLines failed: %v", err)
	}
	if len(active) != 1 {
		t.Errorf("Expected 1 effective line before cutover, got %d", len(active))
	}

	expired, err := repo.GetEffectiveLines("WHEEL", cutover.AddDate(0, 0, 30))
	if err != nil {
		t.Fatalf("GetEffectiveLines failed: %v", err)
	}
	if len(expired) != 0 {
		t.Errorf("Expected no effective lines after cutover, got %d", len(expired))
	}
}

func TestBOMRepository_WhereUsed(t *testing.T) {
	repo := loadedBOMRepo(t)

	parents, err := repo.WhereUsed("WHEEL")
	if err != nil {
		t.Fatalf("WhereUsed failed: %v", err)
	}
	if len(parents) != 1 || parents[0].ParentID != "BIKE" {
		t.Errorf("Expected WHEEL used by BIKE, got %v", parents)
	}

	parents, err = repo.WhereUsed("BIKE")
	if err != nil {
		t.Fatalf("WhereUsed failed: %v", err)
	}
	if len(parents) != 0 {
		t.Errorf("Expected no parents for the top-level item, got %d", len(parents))
	}
}

func TestBOMRepository_GetAllBOMLines(t *testing.T) {
	repo := loadedBOMRepo(t)

	all, err := repo.GetAllBOMLines()
	if err != nil {
		t.Fatalf("GetAllBOMLines failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 lines, got %d", len(all))
	}
}
