package store

// StockLedger maps a product id to its quantity on hand. It is the
// authoritative stock store; the Stock field on a product record is only a
// display cache. The ledger does no bounds checking — callers validate
// sufficiency before decrementing.
type StockLedger struct {
	stock map[int]int
}

// NewStockLedger returns an empty ledger.
func NewStockLedger() *StockLedger {
	return &StockLedger{stock: make(map[int]int)}
}

// Upsert inserts the quantity for id, overwriting any existing entry.
func (l *StockLedger) Upsert(id, qty int) {
	l.stock[id] = qty
}

// Get returns the quantity for id. The second return value is false when the
// ledger has no entry for id.
func (l *StockLedger) Get(id int) (int, bool) {
	qty, ok := l.stock[id]
	return qty, ok
}

// Remove deletes the entry for id, if any.
func (l *StockLedger) Remove(id int) {
	delete(l.stock, id)
}

// All returns a snapshot of every entry.
func (l *StockLedger) All() map[int]int {
	out := make(map[int]int, len(l.stock))
	for id, qty := range l.stock {
		out[id] = qty
	}
	return out
}
