// Package service implements the catalog service: the sole entry point the
// HTTP layer uses to read and mutate the in-memory store.
package service

import (
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"storefront/model"
	"storefront/store"
)

// Service orchestrates the store's structures and applies the business rules:
// stock sufficiency, cart-to-order conversion, search. A single mutex
// serializes all operations so that no concurrent checkout can interleave its
// stock decrement between another checkout's validation and application.
type Service struct {
	mu    sync.Mutex
	store *store.Memory
	now   func() time.Time
}

// NewService returns a service backed by st.
func NewService(st *store.Memory) *Service {
	return &Service{store: st, now: time.Now}
}

// Bootstrap inserts product descriptors into the index and the ledger.
// A descriptor whose id is already present is skipped entirely, keeping index
// and ledger consistent. Returns the number of products loaded.
func (s *Service) Bootstrap(products []models.Product) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded := 0
	for _, p := range products {
		if _, ok := s.store.Products.Search(p.ID); ok {
			continue
		}
		s.store.Products.Insert(p.ID, p)
		s.store.Stock.Upsert(p.ID, p.Stock)
		loaded++
	}
	return loaded
}

// ListProducts returns the catalog ascending by id with each record's stock
// overlaid from the ledger. A record with no ledger entry keeps its cached
// stock value.
func (s *Service) ListProducts() []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listLocked()
}

func (s *Service) listLocked() []models.Product {
	products := s.store.Products.InOrder()
	for i := range products {
		if qty, ok := s.store.Stock.Get(products[i].ID); ok {
			products[i].Stock = qty
		}
	}
	return products
}

// GetProduct returns the product stored under id with its live stock, or
// ErrNotFound.
func (s *Service) GetProduct(id int) (models.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Products.Search(id)
	if !ok {
		return models.Product{}, ErrNotFound
	}
	if qty, ok := s.store.Stock.Get(id); ok {
		p.Stock = qty
	}
	return p, nil
}

// Search returns products whose name or description contains query,
// case-insensitively, ascending by id. An empty query matches everything.
func (s *Service) Search(query string) []models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	q := strings.ToLower(query)
	out := []models.Product{}
	for _, p := range s.listLocked() {
		if strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Description), q) {
			out = append(out, p)
		}
	}
	return out
}

// Inventory returns a snapshot of the ledger.
func (s *Service) Inventory() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Stock.All()
}

// AddToCart snapshots the product's current price, name and category into a
// line item and appends it to the user's cart. A quantity below 1 is treated
// as unspecified and defaults to 1. Fails with ErrNotFound for an unknown
// product and with InsufficientStockError when the ledger cannot cover the
// requested quantity; nothing is mutated on failure.
func (s *Service) AddToCart(userID string, productID, quantity int) (models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.store.Products.Search(productID)
	if !ok {
		return models.CartItem{}, ErrNotFound
	}
	avail, ok := s.store.Stock.Get(productID)
	if !ok || avail < quantity {
		return models.CartItem{}, &InsufficientStockError{
			ProductID: productID,
			Name:      p.Name,
			Requested: quantity,
			Available: avail,
		}
	}

	item := models.CartItem{
		ProductID: productID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  quantity,
		Category:  p.Category,
	}
	s.store.Carts.Add(userID, item)
	return item, nil
}

// RemoveFromCart dequeues and returns the oldest line item in the user's
// cart. Fails with ErrEmptyCart when the cart is missing or empty.
func (s *Service) RemoveFromCart(userID string) (models.CartItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.store.Carts.RemoveOldest(userID)
	if !ok {
		return models.CartItem{}, ErrEmptyCart
	}
	return it, nil
}

// Cart returns the user's line items oldest first and their total, rounded to
// two decimal places.
func (s *Service) Cart(userID string) ([]models.CartItem, decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.store.Carts.Items(userID)
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return items, total.Round(2)
}

// ClearCart empties the user's cart without deleting it.
func (s *Service) ClearCart(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Carts.Clear(userID)
}

// Checkout converts the user's cart into an order. Validation covers the
// cumulative quantity of every line item before any stock is decremented; if
// any product falls short the ledger, log, history and cart are left exactly
// as they were. On success stock is decremented per item, the order is
// appended to the log and pushed to the history, and the cart is cleared.
func (s *Service) Checkout(userID string) (models.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.store.Carts.IsEmpty(userID) {
		return models.Order{}, ErrEmptyCart
	}
	items := s.store.Carts.Items(userID)

	// Phase one: validate every item. Quantities are summed per product so a
	// cart holding the same product twice cannot drive the ledger negative.
	required := make(map[int]int)
	for _, it := range items {
		required[it.ProductID] += it.Quantity
		avail, ok := s.store.Stock.Get(it.ProductID)
		if !ok || avail < required[it.ProductID] {
			return models.Order{}, &InsufficientStockError{
				ProductID: it.ProductID,
				Name:      it.Name,
				Requested: required[it.ProductID],
				Available: avail,
			}
		}
	}

	// Phase two: apply.
	total := decimal.Zero
	for _, it := range items {
		avail, _ := s.store.Stock.Get(it.ProductID)
		s.store.Stock.Upsert(it.ProductID, avail-it.Quantity)
		total = total.Add(it.Subtotal())
	}

	order := models.Order{
		ID:        s.store.NextOrderID(),
		UserID:    userID,
		Items:     items,
		Total:     total.Round(2),
		Timestamp: s.now(),
		Status:    models.StatusConfirmed,
	}
	s.store.Orders.Append(order)
	s.store.Recent.Push(order)
	s.store.Carts.Clear(userID)
	return order, nil
}

// Orders returns all completed orders in insertion order.
func (s *Service) Orders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Orders.All()
}

// RecentOrders returns all completed orders newest first.
func (s *Service) RecentOrders() []models.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Recent.All()
}

// RemoveOrder deletes the first structurally-equal entry from the order log.
// The recent-orders history is never pruned.
func (s *Service) RemoveOrder(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Orders.Remove(o)
}

// Counts reports the catalog and order totals for the health endpoint.
func (s *Service) Counts() (products, orders int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Products.Len(), s.store.Orders.Len()
}
