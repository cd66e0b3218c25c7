package repositories

import (
	"time"

	"mrpkit/pkg/domain/entities"
)

// BOMRepository provides read access to Bill of Materials data
type BOMRepository interface {
	GetBOMLines(parentID entities.ItemID) ([]*entities.BOMLine, error)

	// GetEffectiveLines returns the parent's BOM lines whose effectivity
	// range covers the given date.
	GetEffectiveLines(parentID entities.ItemID, asOf time.Time) ([]*entities.BOMLine, error)

	// WhereUsed returns every BOM line that consumes the given component.
	WhereUsed(componentID entities.ItemID) ([]*entities.BOMLine, error)

	GetAllBOMLines() ([]*entities.BOMLine, error)
	LoadBOMLines(lines []*entities.BOMLine) error
}
