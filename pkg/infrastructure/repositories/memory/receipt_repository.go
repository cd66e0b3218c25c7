package memory

import (
	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
	"mrpkit/pkg/domain/repositories"
)

// ScheduledReceiptRepository provides in-memory scheduled receipt
// storage indexed by item.
type ScheduledReceiptRepository struct {
	receipts []entities.ScheduledReceipt
	indexes  map[entities.ItemID][]int
}

// NewScheduledReceiptRepository creates a new in-memory receipt repository
func NewScheduledReceiptRepository(expectedReceipts int) *ScheduledReceiptRepository {
	return &ScheduledReceiptRepository{
		receipts: make([]entities.ScheduledReceipt, 0, expectedReceipts),
		indexes:  make(map[entities.ItemID][]int),
	}
}

// Verify interface compliance
var _ repositories.ScheduledReceiptRepository = (*ScheduledReceiptRepository)(nil)

// LoadReceipts loads scheduled receipts into the repository
func (r *ScheduledReceiptRepository) LoadReceipts(receipts []*entities.ScheduledReceipt) error {
	for _, receipt := range receipts {
		r.AddReceipt(*receipt)
	}
	return nil
}

// AddReceipt adds a scheduled receipt to the repository
func (r *ScheduledReceiptRepository) AddReceipt(receipt entities.ScheduledReceipt) {
	index := len(r.receipts)
	r.receipts = append(r.receipts, receipt)
	r.indexes[receipt.ItemID] = append(r.indexes[receipt.ItemID], index)
}

// GetScheduledReceipts returns the item's total supply due inside the period
func (r *ScheduledReceiptRepository) GetScheduledReceipts(id entities.ItemID, period entities.Period) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, index := range r.indexes[id] {
		receipt := r.receipts[index]
		if period.Contains(receipt.DueDate) {
			total = total.Add(receipt.Quantity)
		}
	}
	return total, nil
}

// GetAllReceipts returns all scheduled receipts
func (r *ScheduledReceiptRepository) GetAllReceipts() ([]*entities.ScheduledReceipt, error) {
	all := make([]*entities.ScheduledReceipt, 0, len(r.receipts))
	for i := range r.receipts {
		all = append(all, &r.receipts[i])
	}
	return all, nil
}
