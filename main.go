package main

import (
	"context"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.opentelemetry.io/otel"
	stdouttrace "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"storefront/catalog"
	"storefront/handler"
	"storefront/internal/metrics"
	"storefront/pkg/logger"
	"storefront/service"
	"storefront/store"
)

// @title Storefront API
// @version 1.0
// @description In-process catalog and order store for a small storefront
// @BasePath /
func main() {
	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Tracing
	exp, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		log.Fatal("init tracing", zap.Error(err))
	}
	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))
	otel.SetTracerProvider(tp)
	defer tp.Shutdown(context.Background())

	m := metrics.NewRegistry()

	// Store and service
	st := store.NewMemory()
	svc := service.NewService(st)

	// Bootstrap catalog
	path := os.Getenv("PRODUCTS_FILE")
	if path == "" {
		path = "products.json"
	}
	products, err := catalog.LoadFile(path)
	if err != nil {
		log.Warn("loading catalog, starting empty", zap.String("path", path), zap.Error(err))
	}
	loaded := svc.Bootstrap(products)
	m.ProductsLoaded.Set(float64(loaded))
	log.Info("catalog loaded", zap.Int("products", loaded))

	// Handlers
	h := handler.NewHandler(svc, log, m)

	// Router
	r := mux.NewRouter()
	r.Use(
		handler.RequestID(),
		handler.Trace(otel.Tracer("storefront")),
		handler.AccessLog(log),
		handler.Observe(m),
	)
	h.RegisterRoutes(r)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8082"
	}
	log.Info("server running", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
