// Package main runs the catalog service: products and orders served through a read-through cache.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/abgdnv/gocatalog/internal/app"
	"github.com/abgdnv/gocatalog/internal/config"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/store/migrations"
	"github.com/abgdnv/gocatalog/pkg/bootstrap"
	pkgconfig "github.com/abgdnv/gocatalog/pkg/config"
	"github.com/abgdnv/gocatalog/pkg/config/configloader"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	natsclient "github.com/abgdnv/gocatalog/pkg/nats"
	"github.com/abgdnv/gocatalog/pkg/telemetry"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
)

const serviceName = "catalog"

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Printf("application run failed: %v", err)
		os.Exit(1)
	}
	log.Println("application stopped gracefully")
}

// run loads the configuration, opens the store and event publisher, and serves HTTP, gRPC and pprof until ctx ends.
func run(ctx context.Context) error {
	cfg, cfgErr := configloader.Load[*config.Config](serviceName)
	if cfgErr != nil {
		return fmt.Errorf("failed to load configuration: %w", cfgErr)
	}
	log.Printf("Configuration loaded: %v", cfg)

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	meterProvider, err := telemetry.NewMeterProvider(serviceName)
	if err != nil {
		return fmt.Errorf("failed to create meter provider: %w", err)
	}

	shutdownTracer := func(context.Context) error { return nil }
	if cfg.Telemetry.Enabled {
		tracerProvider, err := telemetry.NewTracerProvider(ctx, serviceName, cfg.Telemetry)
		if err != nil {
			logger.Error("error creating tracer provider", slog.Any("error", err))
			return err
		}
		shutdownTracer = tracerProvider.Shutdown
	}

	baseStore, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	catalogStore := store.NewBreakerStore(baseStore, store.BreakerSettings{
		ConsecutiveFailures: cfg.Resilience.CircuitBreaker.ConsecutiveFailures,
		ErrorRatePercent:    cfg.Resilience.CircuitBreaker.ErrorRatePercent,
		OpenTimeout:         cfg.Resilience.CircuitBreaker.OpenTimeout,
	}, logger)

	publisher, closePublisher, err := openPublisher(ctx, cfg.NATS, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	deps := app.SetupDependencies(catalogStore, publisher, meterProvider.Handler(), cfg.Auth.APIKey, logger)
	if cfg.Cache.WarmOnStart {
		loaded, err := deps.Warm(ctx)
		if err != nil {
			return fmt.Errorf("failed to warm order cache: %w", err)
		}
		logger.Info("Order cache warmed", slog.Int("orders", loaded))
	}

	httpServer := app.SetupHttpServer(deps, cfg)
	grpcHealth := health.NewServer()
	grpcServer := app.SetupGrpcServer(grpcHealth, cfg.GRPC.ReflectionEnabled)
	pprofServer := &http.Server{
		Addr: cfg.PProf.Addr,
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Start the HTTP server
	g.Go(func() error {
		logger.Info("HTTP server listening", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})
	// gracefully shutdown HTTP server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Start the gRPC server
	g.Go(func() error {
		grpcAddr := ":" + cfg.GRPC.Port
		lis, err := net.Listen("tcp", grpcAddr)
		if err != nil {
			return fmt.Errorf("failed to listen on gRPC port: %w", err)
		}
		logger.Info("gRPC server listening", slog.String("addr", grpcAddr))
		return grpcServer.Serve(lis)
	})
	// gracefully shutdown gRPC server on context cancellation
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down gRPC server...")
		grpcHealth.SetServingStatus("", grpc_health_v1.HealthCheckResponse_NOT_SERVING)
		stopped := make(chan struct{})
		go func() {
			grpcServer.GracefulStop()
			grpcHealth.Shutdown()
			close(stopped)
		}()
		select {
		case <-stopped:
			logger.Info("gRPC server stopped gracefully.")
			return nil
		case <-time.After(cfg.Shutdown.Timeout):
			logger.Warn("gRPC server graceful stop timed out. Forcing stop.")
			grpcServer.Stop()
			return fmt.Errorf("grpc server graceful stop timed out")
		}
	})

	// Start the pprof server if enabled
	if cfg.PProf.Enabled {
		g.Go(func() error {
			logger.Info("Pprof server listening", slog.String("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server failed: %w", err)
			}
			return nil
		})
		// gracefully shutdown pprof server on context cancellation
		g.Go(func() error {
			<-gCtx.Done()
			logger.Info("Shutting down pprof server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
			defer cancel()
			return pprofServer.Shutdown(shutdownCtx)
		})
	}

	// flush traces and metrics
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down telemetry providers")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown.Timeout)
		defer cancel()
		if err := shutdownTracer(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown tracer provider: %w", err)
		}
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("failed to shutdown meter provider: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("errgroup encountered an error: %w", err)
	}
	return nil
}

// openStore returns the durable store selected by storage.driver and a function releasing its resources.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, func(), error) {
	if cfg.Storage.Driver == pkgconfig.StorageDriverMemory {
		logger.Warn("Using in-memory store, data is lost on restart")
		return store.NewMemoryStore(), func() {}, nil
	}

	dbPool, err := bootstrap.NewDbPool(ctx, cfg.Database.URL, cfg.Database.Timeout, bootstrap.RetryPolicy{
		MaxAttempts:    cfg.Resilience.Retry.MaxAttempts,
		InitialBackoff: cfg.Resilience.Retry.InitialBackoff,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	logger.Info("Successfully connected to the database!")

	if cfg.Database.Migrate {
		if err := migrations.Up(cfg.Database.URL); err != nil {
			dbPool.Close()
			return nil, nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		logger.Info("Database migrations applied")
	}
	return store.NewPgStore(dbPool), dbPool.Close, nil
}

// openPublisher connects to NATS JetStream when enabled. Otherwise events are dropped.
func openPublisher(ctx context.Context, cfg pkgconfig.NATSConfig, logger *slog.Logger) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		logger.Info("NATS disabled, events will not be published")
		return messaging.NopPublisher{}, func() {}, nil
	}

	nc, err := natsclient.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := natsclient.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}
	if err := natsclient.EnsureStream(ctx, js, cfg.Stream, messaging.StreamSubjects); err != nil {
		nc.Close()
		return nil, nil, err
	}
	logger.Info("Connected to NATS", slog.String("stream", cfg.Stream))
	return natsclient.NewNatsPublisher(js), nc.Close, nil
}
