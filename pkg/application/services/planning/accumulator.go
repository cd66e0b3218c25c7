package planning

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

// levelAccumulator aggregates gross requirements per item per period for
// one BOM level. It is plain data handed between orchestration steps and
// only ever merged at level barriers, so the per-item calculations never
// share mutable state.
type levelAccumulator struct {
	buckets int
	gross   map[entities.ItemID][]decimal.Decimal
}

func newLevelAccumulator(buckets int) *levelAccumulator {
	return &levelAccumulator{
		buckets: buckets,
		gross:   make(map[entities.ItemID][]decimal.Decimal),
	}
}

// Add accumulates quantity onto an item's bucket.
func (a *levelAccumulator) Add(id entities.ItemID, periodIndex int, quantity decimal.Decimal) {
	vector, ok := a.gross[id]
	if !ok {
		vector = make([]decimal.Decimal, a.buckets)
		a.gross[id] = vector
	}
	vector[periodIndex] = vector[periodIndex].Add(quantity)
}

// Empty reports whether the level has any demand at all.
func (a *levelAccumulator) Empty() bool {
	return len(a.gross) == 0
}

// SortedItemIDs returns the level's items in a stable order so that the
// merge after the level barrier is deterministic regardless of how the
// parallel work was scheduled.
func (a *levelAccumulator) SortedItemIDs() []entities.ItemID {
	ids := make([]entities.ItemID, 0, len(a.gross))
	for id := range a.gross {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Gross returns the item's per-period gross requirement vector.
func (a *levelAccumulator) Gross(id entities.ItemID) []decimal.Decimal {
	return a.gross[id]
}

// derivedDemand is one planned order's component demand contribution,
// fed into the next level's accumulator.
type derivedDemand struct {
	itemID   entities.ItemID
	quantity decimal.Decimal
	needDate time.Time
}
