package memory

import (
	"time"

	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/domain/repositories"
)

// BOMRepository provides in-memory BOM storage. Lines are stored once in
// a flat slice with parent and component indexes over it, which keeps
// where-used queries as cheap as forward lookups.
type BOMRepository struct {
	lines            []entities.BOMLine
	parentIndexes    map[entities.ItemID][]int
	componentIndexes map[entities.ItemID][]int
}

// NewBOMRepository creates a new in-memory BOM repository
func NewBOMRepository(expectedLines int) *BOMRepository {
	return &BOMRepository{
		lines:            make([]entities.BOMLine, 0, expectedLines),
		parentIndexes:    make(map[entities.ItemID][]int),
		componentIndexes: make(map[entities.ItemID][]int),
	}
}

// Verify interface compliance
var _ repositories.BOMRepository = (*BOMRepository)(nil)

// LoadBOMLines loads BOM lines into the repository
func (r *BOMRepository) LoadBOMLines(lines []*entities.BOMLine) error {
	for _, line := range lines {
		r.AddBOMLine(*line)
	}
	return nil
}

// AddBOMLine adds a BOM line to the repository
func (r *BOMRepository) AddBOMLine(line entities.BOMLine) {
	index := len(r.lines)
	r.lines = append(r.lines, line)
	r.parentIndexes[line.ParentID] = append(r.parentIndexes[line.ParentID], index)
	r.componentIndexes[line.ComponentID] = append(r.componentIndexes[line.ComponentID], index)
}

// GetBOMLines returns all BOM lines for a parent item
func (r *BOMRepository) GetBOMLines(parentID entities.ItemID) ([]*entities.BOMLine, error) {
	return r.collect(r.parentIndexes[parentID]), nil
}

// GetEffectiveLines returns the parent's BOM lines active at the given date
func (r *BOMRepository) GetEffectiveLines(parentID entities.ItemID, asOf time.Time) ([]*entities.BOMLine, error) {
	var effective []*entities.BOMLine
	for _, index := range r.parentIndexes[parentID] {
		line := r.lines[index]
		if line.EffectiveAt(asOf) {
			effective = append(effective, &line)
		}
	}
	return effective, nil
}

// WhereUsed returns every BOM line consuming the component
func (r *BOMRepository) WhereUsed(componentID entities.ItemID) ([]*entities.BOMLine, error) {
	return r.collect(r.componentIndexes[componentID]), nil
}

// GetAllBOMLines returns all BOM lines
func (r *BOMRepository) GetAllBOMLines() ([]*entities.BOMLine, error) {
	all := make([]*entities.BOMLine, 0, len(r.lines))
	for i := range r.lines {
		line := r.lines[i]
		all = append(all, &line)
	}
	return all, nil
}

func (r *BOMRepository) collect(indexes []int) []*entities.BOMLine {
	var lines []*entities.BOMLine
	for _, index := range indexes {
		line := r.lines[index]
		lines = append(lines, &line)
	}
	return lines
}
