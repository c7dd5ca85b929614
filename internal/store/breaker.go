package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/sony/gobreaker/v2"
)

// BreakerSettings configures the circuit breaker in front of the store.
type BreakerSettings struct {
	ConsecutiveFailures uint32
	ErrorRatePercent    int
	OpenTimeout         time.Duration
}

// BreakerStore guards every call to the wrapped store with a circuit breaker.
// Not-found results are successful calls. While the breaker is open calls fail with gobreaker.ErrOpenState.
type BreakerStore struct {
	next Store
	cb   *gobreaker.CircuitBreaker[any]
}

func NewBreakerStore(next Store, settings BreakerSettings, logger *slog.Logger) *BreakerStore {
	st := gobreaker.Settings{
		Name:        "durable-store",
		MaxRequests: 1,
		Timeout:     settings.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.ConsecutiveFailures >= settings.ConsecutiveFailures {
				return true
			}
			if settings.ErrorRatePercent <= 0 || counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio*100 >= float64(settings.ErrorRatePercent)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
		IsSuccessful: func(err error) bool {
			return err == nil ||
				errors.Is(err, catalogerrors.ErrProductNotFound) ||
				errors.Is(err, catalogerrors.ErrOrderNotFound) ||
				errors.Is(err, context.Canceled)
		},
	}
	return &BreakerStore{next: next, cb: gobreaker.NewCircuitBreaker[any](st)}
}

// State reports the current breaker state.
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func run[T any](b *BreakerStore, fn func() (T, error)) (T, error) {
	res, err := b.cb.Execute(func() (any, error) {
		return fn()
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (b *BreakerStore) CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.Product, error) {
	return run(b, func() (*db.Product, error) { return b.next.CreateProduct(ctx, params) })
}

func (b *BreakerStore) FindProductByID(ctx context.Context, id int64) (*db.Product, error) {
	return run(b, func() (*db.Product, error) { return b.next.FindProductByID(ctx, id) })
}

func (b *BreakerStore) CreateOrder(ctx context.Context, status string, items []db.CreateOrderItemParams) (*db.Order, error) {
	return run(b, func() (*db.Order, error) { return b.next.CreateOrder(ctx, status, items) })
}

func (b *BreakerStore) FindOrderByID(ctx context.Context, id int64) (*db.Order, error) {
	return run(b, func() (*db.Order, error) { return b.next.FindOrderByID(ctx, id) })
}

func (b *BreakerStore) FindAllOrders(ctx context.Context) ([]db.Order, error) {
	return run(b, func() ([]db.Order, error) { return b.next.FindAllOrders(ctx) })
}

func (b *BreakerStore) UpdateOrder(ctx context.Context, params db.UpdateOrderParams) (*db.Order, error) {
	return run(b, func() (*db.Order, error) { return b.next.UpdateOrder(ctx, params) })
}

func (b *BreakerStore) DeleteOrderByID(ctx context.Context, id int64) error {
	_, err := run(b, func() (struct{}, error) { return struct{}{}, b.next.DeleteOrderByID(ctx, id) })
	return err
}

var _ Store = (*BreakerStore)(nil)
