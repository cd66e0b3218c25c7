// Package explosion implements recursive Bill-of-Materials explosion:
// expanding a top-level item and quantity into a flat, level-ordered list
// of component requirements with cycle detection and phantom handling.
package explosion

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/domain/repositories"
)

// Engine performs BOM explosions over caller-supplied repositories. It is
// stateless apart from the repositories and safe for concurrent use as
// long as they are.
type Engine struct {
	itemRepo repositories.ItemRepository
	bomRepo  repositories.BOMRepository
}

// NewEngine creates a new explosion engine
func NewEngine(itemRepo repositories.ItemRepository, bomRepo repositories.BOMRepository) *Engine {
	return &Engine{
		itemRepo: itemRepo,
		bomRepo:  bomRepo,
	}
}

// Result holds the outcome of one explosion call. Items are grouped by
// ascending level and, within a level, ordered by first discovery. The
// orchestrator relies on that ordering to net a level fully before
// descending. Exceptions carry any cycles found; a cycle truncates its
// branch without aborting the rest of the explosion.
type Result struct {
	Items      []entities.BOMExplosionItem
	Exceptions []entities.Exception
}

// explodeState carries the per-call traversal state: level buckets for
// the ordering guarantee and the path-local visited set for cycle
// detection. The visited set is per path, not global, because the same
// item may legitimately appear in multiple independent sub-trees.
type explodeState struct {
	levels     [][]entities.BOMExplosionItem
	exceptions []entities.Exception
	path       []entities.ItemID
	onPath     map[entities.ItemID]bool
	asOf       time.Time
	maxLevel   int
}

// Explode expands the product structure below rootID for the given
// quantity. maxLevel bounds the depth (level 0 is the root itself);
// reaching it truncates quietly, it is not an error. A non-positive
// maxLevel falls back to entities.DefaultMaxLevel.
func (e *Engine) Explode(
	ctx context.Context,
	rootID entities.ItemID,
	quantity decimal.Decimal,
	maxLevel int,
) (*Result, error) {
	return e.ExplodeAsOf(ctx, rootID, quantity, maxLevel, time.Now())
}

// ExplodeAsOf is Explode with an explicit effectivity date for BOM line
// filtering.
func (e *Engine) ExplodeAsOf(
	ctx context.Context,
	rootID entities.ItemID,
	quantity decimal.Decimal,
	maxLevel int,
	asOf time.Time,
) (*Result, error) {
	if quantity.Sign() <= 0 {
		return nil, fmt.Errorf("explosion quantity must be positive, got %s", quantity)
	}
	if maxLevel <= 0 {
		maxLevel = entities.DefaultMaxLevel
	}

	root, err := e.itemRepo.GetItem(rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item %s: %w", rootID, err)
	}

	st := &explodeState{
		levels:   make([][]entities.BOMExplosionItem, maxLevel+1),
		onPath:   map[entities.ItemID]bool{rootID: true},
		path:     []entities.ItemID{rootID},
		asOf:     asOf,
		maxLevel: maxLevel,
	}

	st.emit(entities.BOMExplosionItem{
		Level:              0,
		ItemID:             rootID,
		RequiredQuantity:   quantity,
		CumulativeQuantity: quantity,
		LeadTimeDays:       root.LeadTimeDays,
		Purchased:          root.Purchased,
		Manufactured:       root.Manufactured,
	})

	if err := e.expandChildren(ctx, rootID, rootID, 1, quantity, st); err != nil {
		return nil, err
	}

	result := &Result{Exceptions: st.exceptions}
	for _, bucket := range st.levels {
		result.Items = append(result.Items, bucket...)
	}
	return result, nil
}

// expandChildren walks the BOM lines of ownerID and emits the children at
// childLevel. attributedParent is the nearest non-phantom ancestor: it is
// what emitted nodes report as their parent, and it differs from ownerID
// only while passing through phantoms.
func (e *Engine) expandChildren(
	ctx context.Context,
	ownerID, attributedParent entities.ItemID,
	childLevel int,
	parentQuantity decimal.Decimal,
	st *explodeState,
) error {
	if childLevel > st.maxLevel {
		// Soft truncation, the caller bounded the depth.
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	lines, err := e.bomRepo.GetEffectiveLines(ownerID, st.asOf)
	if err != nil {
		return fmt.Errorf("failed to get BOM lines for %s: %w", ownerID, err)
	}

	for _, line := range lines {
		childID := line.ComponentID
		if st.onPath[childID] {
			st.exceptions = append(st.exceptions, entities.NewCyclicBOMException(childID, st.path))
			continue
		}

		child, err := e.itemRepo.GetItem(childID)
		if err != nil {
			return fmt.Errorf("failed to get item %s: %w", childID, err)
		}

		childQuantity := parentQuantity.Mul(line.QuantityPer).Mul(line.ScrapFactor)

		st.onPath[childID] = true
		st.path = append(st.path, childID)

		if line.Phantom {
			// The phantom itself is never emitted; its own lines expand at
			// the level the phantom would have occupied, attributed to the
			// nearest non-phantom ancestor.
			err = e.expandChildren(ctx, childID, attributedParent, childLevel, childQuantity, st)
		} else {
			st.emit(entities.BOMExplosionItem{
				Level:              childLevel,
				ItemID:             childID,
				ParentItemID:       attributedParent,
				RequiredQuantity:   childQuantity,
				CumulativeQuantity: childQuantity,
				LeadTimeDays:       child.LeadTimeDays,
				Phantom:            false,
				Purchased:          child.Purchased,
				Manufactured:       child.Manufactured,
			})
			err = e.expandChildren(ctx, childID, childID, childLevel+1, childQuantity, st)
		}

		st.path = st.path[:len(st.path)-1]
		delete(st.onPath, childID)

		if err != nil {
			return err
		}
	}
	return nil
}

func (st *explodeState) emit(item entities.BOMExplosionItem) {
	st.levels[item.Level] = append(st.levels[item.Level], item)
}

// WhereUsed answers the inverse query: every BOM line consuming the
// component, independent of any planning run.
func (e *Engine) WhereUsed(ctx context.Context, componentID entities.ItemID) ([]*entities.BOMLine, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lines, err := e.bomRepo.WhereUsed(componentID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up where-used for %s: %w", componentID, err)
	}
	return lines, nil
}
