package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatusConfirmed is the status assigned to every order at checkout.
const StatusConfirmed = "confirmed"

// Product is a catalog record. Stock is a display cache refreshed from the
// stock ledger on read; the ledger value is authoritative.
type Product struct {
	ID          int             `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
}

// CartItem is a denormalized snapshot of a product taken at add-to-cart time.
// Later catalog changes do not affect items already in a cart.
type CartItem struct {
	ProductID int             `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Category  string          `json:"category"`
}

// Subtotal returns price multiplied by quantity.
func (it CartItem) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Equal reports field-wise equality. Prices compare by numeric value.
func (it CartItem) Equal(other CartItem) bool {
	return it.ProductID == other.ProductID &&
		it.Name == other.Name &&
		it.Quantity == other.Quantity &&
		it.Category == other.Category &&
		it.Price.Equal(other.Price)
}

// Order is an immutable record of a completed checkout. It owns a copy of the
// cart items that produced it.
type Order struct {
	ID        int             `json:"order_id"`
	UserID    string          `json:"user_id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Timestamp time.Time       `json:"timestamp"`
	Status    string          `json:"status"`
}

// Equal reports structural equality of two orders.
func (o Order) Equal(other Order) bool {
	if o.ID != other.ID || o.UserID != other.UserID || o.Status != other.Status {
		return false
	}
	if !o.Total.Equal(other.Total) || !o.Timestamp.Equal(other.Timestamp) {
		return false
	}
	if len(o.Items) != len(other.Items) {
		return false
	}
	for i := range o.Items {
		if !o.Items[i].Equal(other.Items[i]) {
			return false
		}
	}
	return true
}
