package store

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flakyStore fails every call with err while failing is set, otherwise delegates.
type flakyStore struct {
	Store
	failing bool
	err     error
	calls   int
}

func (f *flakyStore) FindProductByID(ctx context.Context, id int64) (*db.Product, error) {
	f.calls++
	if f.failing {
		return nil, f.err
	}
	return f.Store.FindProductByID(ctx, id)
}

func newTestBreaker(next Store) *BreakerStore {
	return NewBreakerStore(next, BreakerSettings{ConsecutiveFailures: 3, OpenTimeout: time.Hour},
		slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func TestBreakerStore_Contract(t *testing.T) {
	runStoreContract(t, func() Store { return newTestBreaker(NewMemoryStore()) })
}

func TestBreakerStore_OpensAfterConsecutiveFailures(t *testing.T) {
	// given
	ctx := context.Background()
	flaky := &flakyStore{Store: NewMemoryStore(), failing: true, err: errors.New("connection refused")}
	b := newTestBreaker(flaky)

	// when
	for i := 0; i < 3; i++ {
		_, err := b.FindProductByID(ctx, 1)
		require.Error(t, err)
	}
	_, err := b.FindProductByID(ctx, 1)

	// then
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, gobreaker.StateOpen, b.State())
	assert.Equal(t, 3, flaky.calls)
}

func TestBreakerStore_NotFoundDoesNotTrip(t *testing.T) {
	// given
	ctx := context.Background()
	b := newTestBreaker(NewMemoryStore())

	// when
	for i := 0; i < 10; i++ {
		_, err := b.FindProductByID(ctx, 1)
		require.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
	}

	// then
	assert.Equal(t, gobreaker.StateClosed, b.State())
}
