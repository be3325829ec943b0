// Package store provides the in-memory data structures backing the catalog
// service: an ordered product index, the stock ledger, the order log, the
// recent-orders history and the per-user cart store.
package store

// Memory owns one instance of each structure. Construct it once at process
// start and pass it by reference; the structures themselves are not
// synchronized, callers serialize access.
type Memory struct {
	Products *ProductTree
	Stock    *StockLedger
	Orders   *OrderLog
	Recent   *OrderHistory
	Carts    *CartStore

	lastOrderID int
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		Products: NewProductTree(),
		Stock:    NewStockLedger(),
		Orders:   NewOrderLog(),
		Recent:   NewOrderHistory(),
		Carts:    NewCartStore(),
	}
}

// NextOrderID returns the next order id. Ids come from a monotonic counter
// rather than the log length, so removing an order from the log can never
// cause id reuse.
func (m *Memory) NextOrderID() int {
	m.lastOrderID++
	return m.lastOrderID
}
