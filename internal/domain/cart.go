package domain

import "time"

// CartItem is a single product line in a buyer's cart. UnitPrice is the price
// snapshotted when the item was added; billing uses it, not the live product
// price, so a catalog price change never reprices an existing cart.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	StoreID   int64   `json:"store_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total sums unit price * quantity across all items.
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}
