// Package pgcontainer starts a disposable PostgreSQL with the catalog schema for integration tests.
package pgcontainer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abgdnv/gocatalog/internal/store/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type Database struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	URL       string
}

// Start runs a postgres:17.5-alpine container, waits for it, connects a pool and applies the migrations.
func Start(ctx context.Context, logger *slog.Logger) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to run PostgreSQL container: %w", err)
	}
	d := &Database{Container: container}

	d.URL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		d.Close(ctx, logger)
		return nil, fmt.Errorf("failed to get connection string: %w", err)
	}

	d.Pool, err = pgxpool.New(ctx, d.URL)
	if err != nil {
		d.Close(ctx, logger)
		return nil, fmt.Errorf("failed to create pgxpool: %w", err)
	}
	for i := range 10 {
		logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		if err = d.Pool.Ping(ctx); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		d.Close(ctx, logger)
		return nil, fmt.Errorf("failed to connect to PostgreSQL after retries: %w", err)
	}

	if err := migrations.Up(d.URL); err != nil {
		d.Close(ctx, logger)
		return nil, err
	}
	logger.Info("Migrations applied")
	return d, nil
}

// Truncate empties every table and restarts the id sequences.
func (d *Database) Truncate(ctx context.Context) error {
	_, err := d.Pool.Exec(ctx, "TRUNCATE TABLE order_items, orders, products RESTART IDENTITY CASCADE")
	return err
}

func (d *Database) Close(ctx context.Context, logger *slog.Logger) {
	if d.Pool != nil {
		d.Pool.Close()
	}
	if d.Container != nil {
		if err := d.Container.Terminate(ctx); err != nil {
			logger.Warn("failed to terminate PostgreSQL container", "error", err)
		}
	}
}
