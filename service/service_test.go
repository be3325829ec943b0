package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"storefront/model"
	"storefront/store"
)

func product(id int, name, desc, price string, stock int) models.Product {
	return models.Product{
		ID:          id,
		Name:        name,
		Description: desc,
		Category:    "Test",
		Price:       decimal.RequireFromString(price),
		Stock:       stock,
	}
}

func newTestService(products ...models.Product) (*Service, *store.Memory) {
	st := store.NewMemory()
	svc := NewService(st)
	svc.Bootstrap(products)
	svc.now = func() time.Time { return time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) }
	return svc, st
}

func TestBootstrapSkipsDuplicateIDs(t *testing.T) {
	svc, st := newTestService(
		product(1, "first", "", "10.00", 5),
		product(1, "second", "", "99.00", 9),
	)

	list := svc.ListProducts()
	if len(list) != 1 {
		t.Fatalf("expected 1 product, got %d", len(list))
	}
	if list[0].Name != "first" {
		t.Fatalf("expected first write to win, got %q", list[0].Name)
	}
	if qty, _ := st.Stock.Get(1); qty != 5 {
		t.Fatalf("expected ledger stock 5 from the kept descriptor, got %d", qty)
	}
}

func TestListProductsOverlaysLedgerStock(t *testing.T) {
	svc, st := newTestService(
		product(1, "a", "", "10.00", 5),
		product(2, "b", "", "20.00", 7),
	)

	st.Stock.Upsert(1, 3)
	list := svc.ListProducts()
	if list[0].Stock != 3 {
		t.Fatalf("expected overlaid stock 3, got %d", list[0].Stock)
	}

	// a record missing from the ledger falls back to its cached value
	st.Stock.Remove(2)
	list = svc.ListProducts()
	if list[1].Stock != 7 {
		t.Fatalf("expected cached stock 7 fallback, got %d", list[1].Stock)
	}
}

func TestListProductsAscendingByID(t *testing.T) {
	svc, _ := newTestService(
		product(30, "c", "", "1.00", 1),
		product(10, "a", "", "1.00", 1),
		product(20, "b", "", "1.00", 1),
	)

	list := svc.ListProducts()
	if len(list) != 3 || list[0].ID != 10 || list[1].ID != 20 || list[2].ID != 30 {
		t.Fatalf("expected ascending ids, got %+v", list)
	}
}

func TestGetProductNotFound(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 5))

	if _, err := svc.GetProduct(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	p, err := svc.GetProduct(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "a" {
		t.Fatalf("unexpected product: %+v", p)
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 5))

	if _, err := svc.AddToCart("u", 42, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddToCartInsufficientStockMutatesNothing(t *testing.T) {
	svc, st := newTestService(product(1, "a", "", "10.00", 5))

	_, err := svc.AddToCart("u", 1, 6)
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != 1 || stockErr.Name != "a" {
		t.Fatalf("error must name the offending product: %+v", stockErr)
	}
	if items, _ := svc.Cart("u"); len(items) != 0 {
		t.Fatalf("cart must be untouched on failure, got %+v", items)
	}
	if qty, _ := st.Stock.Get(1); qty != 5 {
		t.Fatalf("ledger must be untouched on failure, got %d", qty)
	}
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 5))

	it, err := svc.AddToCart("u", 1, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.Quantity != 1 {
		t.Fatalf("expected default quantity 1, got %d", it.Quantity)
	}
}

func TestAddToCartSnapshotsProductFields(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "desc", "10.00", 5))

	it, err := svc.AddToCart("u", 1, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if it.ProductID != 1 || it.Name != "a" || it.Category != "Test" || it.Quantity != 2 {
		t.Fatalf("unexpected snapshot: %+v", it)
	}

	items, total := svc.Cart("u")
	if len(items) != 1 || !items[0].Price.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("unexpected cart: %+v", items)
	}
	if !total.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("expected total 20.00, got %s", total)
	}
}

func TestRemoveFromCartEmpty(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 5))

	// no cart at all
	if _, err := svc.RemoveFromCart("ghost"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	// emptied cart
	if _, err := svc.AddToCart("u", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.RemoveFromCart("u"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.RemoveFromCart("u"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCartRoundTripFIFO(t *testing.T) {
	svc, _ := newTestService(
		product(1, "a", "", "1.00", 10),
		product(2, "b", "", "2.00", 10),
		product(3, "c", "", "3.00", 10),
	)

	for id := 1; id <= 3; id++ {
		if _, err := svc.AddToCart("u", id, 1); err != nil {
			t.Fatalf("add %d: %v", id, err)
		}
	}
	for id := 1; id <= 3; id++ {
		it, err := svc.RemoveFromCart("u")
		if err != nil {
			t.Fatalf("remove %d: %v", id, err)
		}
		if it.ProductID != id {
			t.Fatalf("expected FIFO removal of %d, got %d", id, it.ProductID)
		}
	}
	if items, _ := svc.Cart("u"); len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

// The §8-style end-to-end walk: bootstrap two products, one out of stock.
func TestCheckoutScenario(t *testing.T) {
	svc, _ := newTestService(
		product(1, "widget", "", "10.00", 5),
		product(2, "gadget", "", "20.00", 0),
	)

	if _, err := svc.AddToCart("u", 1, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, _ := svc.Cart("u")
	if len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("unexpected cart: %+v", items)
	}

	var stockErr *InsufficientStockError
	if _, err := svc.AddToCart("u", 2, 1); !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}

	order, err := svc.Checkout("u")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if !order.Total.Equal(decimal.RequireFromString("30.00")) {
		t.Fatalf("expected total 30.00, got %s", order.Total)
	}
	if order.ID != 1 {
		t.Fatalf("expected order id 1, got %d", order.ID)
	}
	if order.Status != models.StatusConfirmed {
		t.Fatalf("expected confirmed status, got %q", order.Status)
	}
	if qty := svc.Inventory()[1]; qty != 2 {
		t.Fatalf("expected ledger stock 2 after checkout, got %d", qty)
	}
	orders := svc.Orders()
	if len(orders) != 1 || !orders[0].Equal(order) {
		t.Fatalf("unexpected order log: %+v", orders)
	}
	recent := svc.RecentOrders()
	if len(recent) != 1 || !recent[0].Equal(order) {
		t.Fatalf("unexpected recent orders: %+v", recent)
	}
	if items, _ := svc.Cart("u"); len(items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", items)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 5))

	if _, err := svc.Checkout("ghost"); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutAllOrNothing(t *testing.T) {
	svc, st := newTestService(
		product(1, "a", "", "10.00", 5),
		product(2, "b", "", "20.00", 2),
	)

	if _, err := svc.AddToCart("u", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddToCart("u", 2, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// stock for product 2 drains between add and checkout
	st.Stock.Upsert(2, 1)

	_, err := svc.Checkout("u")
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if stockErr.ProductID != 2 || stockErr.Name != "b" {
		t.Fatalf("error must name the offending item: %+v", stockErr)
	}

	// nothing moved: ledger, log, history and cart are all pre-call state
	if qty, _ := st.Stock.Get(1); qty != 5 {
		t.Fatalf("ledger[1] changed: %d", qty)
	}
	if qty, _ := st.Stock.Get(2); qty != 1 {
		t.Fatalf("ledger[2] changed: %d", qty)
	}
	if len(svc.Orders()) != 0 || len(svc.RecentOrders()) != 0 {
		t.Fatalf("order stores must be untouched")
	}
	if items, _ := svc.Cart("u"); len(items) != 2 {
		t.Fatalf("cart must be untouched, got %+v", items)
	}
}

func TestCheckoutValidatesCumulativeQuantityPerProduct(t *testing.T) {
	svc, st := newTestService(product(1, "a", "", "10.00", 3))

	// two line items of 2 each pass add-time validation individually
	if _, err := svc.AddToCart("u", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddToCart("u", 1, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	// but together they exceed stock, so checkout must refuse rather than
	// drive the ledger negative
	_, err := svc.Checkout("u")
	var stockErr *InsufficientStockError
	if !errors.As(err, &stockErr) {
		t.Fatalf("expected InsufficientStockError, got %v", err)
	}
	if qty, _ := st.Stock.Get(1); qty != 3 {
		t.Fatalf("ledger must be untouched, got %d", qty)
	}
}

func TestOrderIDsSurviveLogRemoval(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 10))

	if _, err := svc.AddToCart("u1", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	first, err := svc.Checkout("u1")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if first.ID != 1 {
		t.Fatalf("expected id 1, got %d", first.ID)
	}

	svc.RemoveOrder(first)
	if len(svc.Orders()) != 0 {
		t.Fatalf("expected empty log after removal")
	}

	// length-based assignment would hand out id 1 again here; the monotonic
	// counter must not reuse it
	if _, err := svc.AddToCart("u2", 1, 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	second, err := svc.Checkout("u2")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if second.ID != 2 {
		t.Fatalf("expected id 2 after log removal, got %d", second.ID)
	}

	// the history keeps both orders, newest first
	recent := svc.RecentOrders()
	if len(recent) != 2 || recent[0].ID != 2 || recent[1].ID != 1 {
		t.Fatalf("unexpected history: %+v", recent)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "10.00", 10))

	for _, user := range []string{"u1", "u2", "u3"} {
		if _, err := svc.AddToCart(user, 1, 1); err != nil {
			t.Fatalf("add: %v", err)
		}
		if _, err := svc.Checkout(user); err != nil {
			t.Fatalf("checkout: %v", err)
		}
	}

	recent := svc.RecentOrders()
	if len(recent) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(recent))
	}
	if recent[0].UserID != "u3" || recent[1].UserID != "u2" || recent[2].UserID != "u1" {
		t.Fatalf("expected newest first, got %+v", recent)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	svc, _ := newTestService(
		product(1, "Reading Light", "Adjustable LED Desk Lamp", "32.75", 30),
		product(2, "Ceramic Mug", "350ml ceramic mug", "9.99", 200),
	)

	for _, q := range []string{"lamp", "LAMP", "Desk La"} {
		got := svc.Search(q)
		if len(got) != 1 || got[0].ID != 1 {
			t.Fatalf("query %q: expected exactly product 1, got %+v", q, got)
		}
	}

	if got := svc.Search("granite"); len(got) != 0 {
		t.Fatalf("expected no matches, got %+v", got)
	}
}

func TestSearchEmptyQueryMatchesEverything(t *testing.T) {
	svc, _ := newTestService(
		product(2, "b", "", "1.00", 1),
		product(1, "a", "", "1.00", 1),
	)

	got := svc.Search("")
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("expected all products ascending, got %+v", got)
	}
}

func TestCheckoutTimestampAndRounding(t *testing.T) {
	svc, _ := newTestService(product(1, "a", "", "3.333", 10))

	if _, err := svc.AddToCart("u", 1, 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	order, err := svc.Checkout("u")
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	// 3 * 3.333 = 9.999, rounded to two places
	if !order.Total.Equal(decimal.RequireFromString("10.00")) {
		t.Fatalf("expected total 10.00, got %s", order.Total)
	}
	want := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)
	if !order.Timestamp.Equal(want) {
		t.Fatalf("expected timestamp %v, got %v", want, order.Timestamp)
	}
}
