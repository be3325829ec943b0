package store

import (
	"storefront/model"
)

// OrderHistory is a most-recent-first view over completed orders. Entries are
// never pruned.
type OrderHistory struct {
	orders []models.Order
}

// NewOrderHistory returns an empty history.
func NewOrderHistory() *OrderHistory {
	return &OrderHistory{}
}

// Push records o as the newest entry.
func (h *OrderHistory) Push(o models.Order) {
	h.orders = append(h.orders, o)
}

// All returns the orders newest first.
func (h *OrderHistory) All() []models.Order {
	out := make([]models.Order, len(h.orders))
	for i, o := range h.orders {
		out[len(h.orders)-1-i] = o
	}
	return out
}

// Len returns the number of recorded orders.
func (h *OrderHistory) Len() int {
	return len(h.orders)
}
