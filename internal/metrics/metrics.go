package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry bundles the storefront's Prometheus collectors behind a private
// registry.
type Registry struct {
	reg *prometheus.Registry

	OrdersPlaced     prometheus.Counter
	CheckoutFailures prometheus.Counter
	CartAdds         prometheus.Counter
	ProductsLoaded   prometheus.Gauge

	HTTPRequests   prometheus.Counter
	HTTPLatencySec prometheus.Histogram
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	ordersPlaced := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_orders_placed_total"})
	checkoutFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_checkout_failures_total"})
	cartAdds := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_cart_adds_total"})
	productsLoaded := prometheus.NewGauge(prometheus.GaugeOpts{Name: "storefront_products_loaded"})

	httpRequests := prometheus.NewCounter(prometheus.CounterOpts{Name: "storefront_http_requests_total"})
	httpLatency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "storefront_http_latency_seconds",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(ordersPlaced, checkoutFailures, cartAdds, productsLoaded, httpRequests, httpLatency)
	return &Registry{
		reg:              r,
		OrdersPlaced:     ordersPlaced,
		CheckoutFailures: checkoutFailures,
		CartAdds:         cartAdds,
		ProductsLoaded:   productsLoaded,
		HTTPRequests:     httpRequests,
		HTTPLatencySec:   httpLatency,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
