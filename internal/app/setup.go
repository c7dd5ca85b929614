// Package app wires the catalog service together.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/service"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/transport/rest"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/abgdnv/gocatalog/pkg/server"
	"github.com/go-chi/chi/v5"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
)

// GrpcServiceName is the name reported by the gRPC health service.
const GrpcServiceName = "catalog.v1.CatalogService"

type Dependencies struct {
	ProductService service.ProductService
	OrderService   service.OrderService
	// Warm pre-loads the order index. It reports how many orders were loaded.
	Warm           func(ctx context.Context) (int, error)
	MetricsHandler http.Handler
	APIKey         string
	Logger         *slog.Logger
}

// SetupDependencies builds the cache coordinators on top of the given store.
// metricsHandler may be nil, in which case /metrics is not mounted.
func SetupDependencies(s store.Store, publisher messaging.Publisher, metricsHandler http.Handler, apiKey string, logger *slog.Logger) *Dependencies {
	products := service.NewProductService(s, publisher, logger)
	orders := service.NewOrderService(s, products, publisher, logger)

	return &Dependencies{
		ProductService: products,
		OrderService:   orders,
		Warm:           orders.Warm,
		MetricsHandler: metricsHandler,
		APIKey:         apiKey,
		Logger:         logger,
	}
}

// SetupHttpHandler builds the router with every route of the service.
// Used by E2E tests to run the service in-process.
func SetupHttpHandler(deps *Dependencies) http.Handler {
	mux := server.NewChiRouter(deps.Logger)
	wireRoutes(mux, deps)
	return mux
}

func wireRoutes(mux *chi.Mux, deps *Dependencies) {
	handler := rest.NewHandler(deps.ProductService, deps.OrderService, deps.APIKey, deps.Logger)
	handler.RegisterRoutes(mux)
	if deps.MetricsHandler != nil {
		mux.Handle("/metrics", deps.MetricsHandler)
	}
}

// SetupHttpServer creates the HTTP server for the catalog service.
func SetupHttpServer(deps *Dependencies, cfg *config.Config) *http.Server {
	mux := SetupHttpHandler(deps)

	httpCfg := server.HTTPConfig{
		Port:           cfg.HTTPServer.Port,
		MaxHeaderBytes: cfg.HTTPServer.MaxHeaderBytes,
		ReadTimeout:    cfg.HTTPServer.Timeout.Read,
		WriteTimeout:   cfg.HTTPServer.Timeout.Write,
		IdleTimeout:    cfg.HTTPServer.Timeout.Idle,
		ReadHeader:     cfg.HTTPServer.Timeout.ReadHeader,
	}

	return server.NewHTTPServer(httpCfg, "catalog-http", mux)
}

// SetupGrpcServer creates the gRPC server exposing the standard health service.
func SetupGrpcServer(hs *health.Server, reflectionEnabled bool) *grpc.Server {
	return server.NewGRPCServer(reflectionEnabled, server.WithHealth(hs, GrpcServiceName))
}
