package service

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the product id is unknown to the index.
var ErrNotFound = errors.New("product not found")

// ErrEmptyCart indicates an operation that requires a non-empty cart, but the
// cart is missing or has no items.
var ErrEmptyCart = errors.New("cart is empty")

// InsufficientStockError reports a requested quantity exceeding the ledger's
// quantity on hand for a product.
type InsufficientStockError struct {
	ProductID int
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (product %d): requested %d, available %d",
		e.Name, e.ProductID, e.Requested, e.Available)
}
