package repositories

import "mrpkit/pkg/domain/entities"

// ItemRepository provides read access to item master data
type ItemRepository interface {
	GetItem(id entities.ItemID) (*entities.Item, error)
	GetAllItems() ([]*entities.Item, error)
	LoadItems(items []*entities.Item) error
}
