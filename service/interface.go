package service

import (
	"github.com/shopspring/decimal"

	"storefront/model"
)

// ServiceInterface is the surface consumed by the HTTP layer.
type ServiceInterface interface {
	ListProducts() []models.Product
	GetProduct(id int) (models.Product, error)
	Search(query string) []models.Product
	Inventory() map[int]int

	AddToCart(userID string, productID, quantity int) (models.CartItem, error)
	RemoveFromCart(userID string) (models.CartItem, error)
	Cart(userID string) ([]models.CartItem, decimal.Decimal)
	ClearCart(userID string)

	Checkout(userID string) (models.Order, error)
	Orders() []models.Order
	RecentOrders() []models.Order

	Counts() (products, orders int)
}
