package store

import (
	"storefront/model"
)

// cartQueue is a FIFO sequence of line items.
type cartQueue struct {
	items []models.CartItem
}

func (q *cartQueue) enqueue(it models.CartItem) {
	q.items = append(q.items, it)
}

func (q *cartQueue) dequeue() (models.CartItem, bool) {
	if len(q.items) == 0 {
		return models.CartItem{}, false
	}
	it := q.items[0]
	q.items = q.items[1:]
	return it, true
}

func (q *cartQueue) clear() {
	q.items = nil
}

func (q *cartQueue) snapshot() []models.CartItem {
	out := make([]models.CartItem, len(q.items))
	copy(out, q.items)
	return out
}

// CartStore holds one FIFO cart per user id. Carts are created lazily on
// first access and live for the process lifetime; clearing empties a cart
// without deleting it.
type CartStore struct {
	carts map[string]*cartQueue
}

// NewCartStore returns an empty cart store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*cartQueue)}
}

func (c *CartStore) cart(userID string) *cartQueue {
	q, ok := c.carts[userID]
	if !ok {
		q = &cartQueue{}
		c.carts[userID] = q
	}
	return q
}

// Add appends it to the tail of the user's cart.
func (c *CartStore) Add(userID string, it models.CartItem) {
	c.cart(userID).enqueue(it)
}

// RemoveOldest removes and returns the head of the user's cart. The second
// return value is false when the cart is missing or empty.
func (c *CartStore) RemoveOldest(userID string) (models.CartItem, bool) {
	q, ok := c.carts[userID]
	if !ok {
		return models.CartItem{}, false
	}
	return q.dequeue()
}

// Clear empties the user's cart.
func (c *CartStore) Clear(userID string) {
	c.cart(userID).clear()
}

// Items returns the user's line items oldest first.
func (c *CartStore) Items(userID string) []models.CartItem {
	q, ok := c.carts[userID]
	if !ok {
		return []models.CartItem{}
	}
	return q.snapshot()
}

// IsEmpty reports whether the user has no line items. A user with no cart at
// all counts as empty.
func (c *CartStore) IsEmpty(userID string) bool {
	q, ok := c.carts[userID]
	return !ok || len(q.items) == 0
}

// Len returns the number of line items in the user's cart.
func (c *CartStore) Len(userID string) int {
	q, ok := c.carts[userID]
	if !ok {
		return 0
	}
	return len(q.items)
}
