package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/abgdnv/gocatalog/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewLogger creates a JSON slog.Logger on stdout that also records trace and request ids from the context.
func NewLogger(level string) *slog.Logger {
	return newLogger(os.Stdout, level)
}

func newLogger(w io.Writer, level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	return slog.New(logger.NewContextHandler(slog.NewJSONHandler(w, loggerOpts)))
}

// RetryPolicy controls how many times the initial ping is attempted.
type RetryPolicy struct {
	MaxAttempts    uint
	InitialBackoff time.Duration
}

// NewDbPool creates a database connection pool and pings it, retrying with doubling backoff.
// Each attempt is bounded by connectTimeout.
func NewDbPool(ctx context.Context, url string, connectTimeout time.Duration, retry RetryPolicy) (*pgxpool.Pool, error) {
	dbPool, errPool := pgxpool.New(ctx, url)
	if errPool != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", errPool)
	}

	attempts := max(retry.MaxAttempts, 1)
	backoff := retry.InitialBackoff
	var pingErr error
	for attempt := uint(1); attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
		pingErr = dbPool.Ping(pingCtx)
		cancel()
		if pingErr == nil {
			return dbPool, nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			dbPool.Close()
			return nil, ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	dbPool.Close()
	return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempts, pingErr)
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
