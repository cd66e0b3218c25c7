package repositories

import (
	"github.com/shopspring/decimal"

	"mrpkit/pkg/domain/entities"
)

// ScheduledReceiptRepository provides read access to open order and
// scheduled receipt feeds
type ScheduledReceiptRepository interface {
	// GetScheduledReceipts returns the total supply already on the books
	// for the item that lands inside the period.
	GetScheduledReceipts(id entities.ItemID, period entities.Period) (decimal.Decimal, error)

	GetAllReceipts() ([]*entities.ScheduledReceipt, error)
	LoadReceipts(receipts []*entities.ScheduledReceipt) error
}
