// Package handler is the HTTP layer that maps routes onto the catalog
// service and translates results to responses and status codes.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"storefront/internal/metrics"
	"storefront/service"
)

// Handler talks to service.ServiceInterface.
type Handler struct {
	svc     service.ServiceInterface
	log     *zap.Logger
	metrics *metrics.Registry
}

// NewHandler returns a Handler instance.
func NewHandler(svc service.ServiceInterface, log *zap.Logger, m *metrics.Registry) *Handler {
	return &Handler{svc: svc, log: log, metrics: m}
}

// RegisterRoutes registers all routes on the provided router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	// Products
	api.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{id:[0-9]+}", h.GetProduct).Methods(http.MethodGet)
	api.HandleFunc("/inventory", h.Inventory).Methods(http.MethodGet)
	api.HandleFunc("/search", h.SearchProducts).Methods(http.MethodGet)

	// Cart
	api.HandleFunc("/cart/{user}", h.GetCart).Methods(http.MethodGet)
	api.HandleFunc("/cart/{user}/add", h.AddToCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/{user}/remove", h.RemoveFromCart).Methods(http.MethodPost)
	api.HandleFunc("/cart/{user}/clear", h.ClearCart).Methods(http.MethodPost)

	// Checkout and orders
	api.HandleFunc("/checkout", h.Checkout).Methods(http.MethodPost)
	api.HandleFunc("/orders", h.ListOrders).Methods(http.MethodGet)
	api.HandleFunc("/recent-orders", h.RecentOrders).Methods(http.MethodGet)

	api.HandleFunc("/health", h.Health).Methods(http.MethodGet)
}

// --- request shapes ---

type addToCartReq struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity,omitempty"`
}

type checkoutReq struct {
	UserID string `json:"user_id"`
}

// --- helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeServiceErr maps the service's failure kinds to status codes.
func writeServiceErr(w http.ResponseWriter, err error) {
	var stockErr *service.InsufficientStockError
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &stockErr):
		writeErr(w, http.StatusBadRequest, err.Error())
	default:
		writeErr(w, http.StatusInternalServerError, err.Error())
	}
}

// --- handlers ---

// ListProducts returns the catalog with live stock.
// @Summary List products
// @Produce json
// @Success 200 {array} models.Product
// @Router /api/products [get]
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.ListProducts())
}

// GetProduct returns a single product by id.
// @Summary Get product
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} models.Product
// @Router /api/products/{id} [get]
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid product id")
		return
	}
	p, err := h.svc.GetProduct(id)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// Inventory returns all stock levels.
// @Summary Inventory snapshot
// @Produce json
// @Success 200 {object} map[int]int
// @Router /api/inventory [get]
func (h *Handler) Inventory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Inventory())
}

// SearchProducts filters the catalog by a case-insensitive substring query.
// @Summary Search products
// @Produce json
// @Param q query string false "Query"
// @Success 200 {array} models.Product
// @Router /api/search [get]
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Search(r.URL.Query().Get("q")))
}

// GetCart returns the user's cart with total and item count.
// @Summary Get cart
// @Produce json
// @Param user path string true "User ID"
// @Success 200
// @Router /api/cart/{user} [get]
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	items, total := h.svc.Cart(user)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":      items,
		"total":      total,
		"item_count": len(items),
	})
}

// AddToCart enqueues a line item onto the user's cart.
// @Summary Add to cart
// @Accept json
// @Produce json
// @Param user path string true "User ID"
// @Param item body addToCartReq true "Item"
// @Success 200
// @Router /api/cart/{user}/add [post]
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	var req addToCartReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if _, err := h.svc.AddToCart(user, req.ProductID, req.Quantity); err != nil {
		writeServiceErr(w, err)
		return
	}
	h.metrics.CartAdds.Inc()
	items, _ := h.svc.Cart(user)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product added to cart",
		"cart":    items,
	})
}

// RemoveFromCart dequeues the oldest line item from the user's cart.
// @Summary Remove oldest cart item
// @Produce json
// @Param user path string true "User ID"
// @Success 200
// @Router /api/cart/{user}/remove [post]
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	removed, err := h.svc.RemoveFromCart(user)
	if err != nil {
		writeServiceErr(w, err)
		return
	}
	items, _ := h.svc.Cart(user)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Product removed from cart",
		"removed": removed,
		"cart":    items,
	})
}

// ClearCart empties the user's cart.
// @Summary Clear cart
// @Produce json
// @Param user path string true "User ID"
// @Success 200
// @Router /api/cart/{user}/clear [post]
func (h *Handler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearCart(mux.Vars(r)["user"])
	writeJSON(w, http.StatusOK, map[string]string{"message": "Cart cleared"})
}

// Checkout converts the user's cart into an order.
// @Summary Checkout
// @Accept json
// @Produce json
// @Param body body checkoutReq true "User"
// @Success 201 {object} models.Order
// @Router /api/checkout [post]
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req checkoutReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.UserID == "" {
		writeErr(w, http.StatusBadRequest, "user_id required")
		return
	}
	order, err := h.svc.Checkout(req.UserID)
	if err != nil {
		h.metrics.CheckoutFailures.Inc()
		writeServiceErr(w, err)
		return
	}
	h.metrics.OrdersPlaced.Inc()
	h.log.Info("order placed",
		zap.Int("order_id", order.ID),
		zap.String("user_id", order.UserID),
		zap.String("total", order.Total.String()),
	)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOrders returns all orders in insertion order.
// @Summary List orders
// @Produce json
// @Success 200 {array} models.Order
// @Router /api/orders [get]
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Orders())
}

// RecentOrders returns all orders newest first.
// @Summary Recent orders
// @Produce json
// @Success 200 {array} models.Order
// @Router /api/recent-orders [get]
func (h *Handler) RecentOrders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.RecentOrders())
}

// Health reports liveness and store counts.
// @Summary Health check
// @Produce json
// @Success 200
// @Router /api/health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	products, orders := h.svc.Counts()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "healthy",
		"products": products,
		"orders":   orders,
	})
}
