package service

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/stretchr/testify/mock"
)

var testLogger = slog.New(slog.NewJSONHandler(io.Discard, nil))

// countingStore records how often each read reaches the durable store.
type countingStore struct {
	store.Store
	mu    sync.Mutex
	calls map[string]int
}

func newCountingStore() *countingStore {
	return &countingStore{Store: store.NewMemoryStore(), calls: make(map[string]int)}
}

func (c *countingStore) inc(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls[name]++
}

func (c *countingStore) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[name]
}

func (c *countingStore) FindProductByID(ctx context.Context, id int64) (*db.Product, error) {
	c.inc("FindProductByID")
	return c.Store.FindProductByID(ctx, id)
}

func (c *countingStore) FindOrderByID(ctx context.Context, id int64) (*db.Order, error) {
	c.inc("FindOrderByID")
	return c.Store.FindOrderByID(ctx, id)
}

func (c *countingStore) FindAllOrders(ctx context.Context) ([]db.Order, error) {
	c.inc("FindAllOrders")
	return c.Store.FindAllOrders(ctx)
}

// MockPublisher is a mock implementation of messaging.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event messaging.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func newQuietPublisher() *MockPublisher {
	p := new(MockPublisher)
	p.On("Publish", mock.Anything, mock.Anything).Return(nil)
	return p
}

func ptr[T any](v T) *T { return &v }

// gatedStore holds every read until release is closed or the call's ctx ends.
type gatedStore struct {
	*countingStore
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func newGatedStore() *gatedStore {
	return &gatedStore{countingStore: newCountingStore(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedStore) wait(ctx context.Context) error {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (g *gatedStore) FindProductByID(ctx context.Context, id int64) (*db.Product, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	return g.countingStore.FindProductByID(ctx, id)
}

func (g *gatedStore) FindOrderByID(ctx context.Context, id int64) (*db.Order, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	return g.countingStore.FindOrderByID(ctx, id)
}

func (g *gatedStore) FindAllOrders(ctx context.Context) ([]db.Order, error) {
	if err := g.wait(ctx); err != nil {
		return nil, err
	}
	return g.countingStore.FindAllOrders(ctx)
}
