package service

import (
	"context"
	"testing"
	"time"

	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runAbandonedLoad starts leave with a caller that gives up while the store is still busy,
// then stay for the same key with a context that is never cancelled. It returns both errors.
func runAbandonedLoad(t *testing.T, st *gatedStore, leave, stay func(ctx context.Context) error) (leaver, stayer error) {
	t.Helper()
	leaverCtx, cancel := context.WithCancel(context.Background())
	leaverDone := make(chan error, 1)
	go func() { leaverDone <- leave(leaverCtx) }()
	<-st.entered

	stayerDone := make(chan error, 1)
	go func() { stayerDone <- stay(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	cancel()
	leaver = <-leaverDone
	close(st.release)

	select {
	case stayer = <-stayerDone:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "second caller did not return")
	}
	return leaver, stayer
}

func TestProducts_FindByID_AbandonedFillServesOthers(t *testing.T) {
	// given
	st := newGatedStore()
	_, err := st.CreateProduct(context.Background(), db.CreateProductParams{Name: "Lamp", Price: 15})
	require.NoError(t, err)
	svc := NewProductService(st, newQuietPublisher(), testLogger)

	// when
	load := func(ctx context.Context) error {
		_, err := svc.FindByID(ctx, 1)
		return err
	}
	leaver, stayer := runAbandonedLoad(t, st, load, load)

	// then
	assert.ErrorIs(t, leaver, context.Canceled)
	assert.NoError(t, stayer)
	assert.Equal(t, 1, svc.Cached())
	assert.Equal(t, 1, st.count("FindProductByID"))
}

func TestOrders_FindByID_AbandonedFillServesOthers(t *testing.T) {
	// given
	st := newGatedStore()
	ctx := context.Background()
	_, err := st.CreateProduct(ctx, db.CreateProductParams{Name: "Lamp", Price: 15})
	require.NoError(t, err)
	_, err = st.CreateOrder(ctx, StatusPending, []db.CreateOrderItemParams{{ProductID: 1, Quantity: 2}})
	require.NoError(t, err)
	products := NewProductService(st, newQuietPublisher(), testLogger)
	svc := NewOrderService(st, products, newQuietPublisher(), testLogger)

	// when
	var got *OrderDto
	leaver, stayer := runAbandonedLoad(t, st,
		func(ctx context.Context) error {
			_, err := svc.FindByID(ctx, 1)
			return err
		},
		func(ctx context.Context) (err error) {
			got, err = svc.FindByID(ctx, 1)
			return err
		})

	// then
	assert.ErrorIs(t, leaver, context.Canceled)
	require.NoError(t, stayer)
	require.NotNil(t, got)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, 1, svc.Cached())
	assert.Equal(t, 1, st.count("FindOrderByID"))
}

func TestOrders_FindAll_AbandonedReloadServesOthers(t *testing.T) {
	// given
	st := newGatedStore()
	ctx := context.Background()
	_, err := st.CreateProduct(ctx, db.CreateProductParams{Name: "Lamp", Price: 15})
	require.NoError(t, err)
	for q := int32(1); q <= 3; q++ {
		_, err = st.CreateOrder(ctx, StatusPending, []db.CreateOrderItemParams{{ProductID: 1, Quantity: q}})
		require.NoError(t, err)
	}
	svc := NewOrderService(st, NewProductService(st, newQuietPublisher(), testLogger), newQuietPublisher(), testLogger)

	// when
	var got []OrderDto
	leaver, stayer := runAbandonedLoad(t, st,
		func(ctx context.Context) error {
			_, err := svc.FindAll(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			got, err = svc.FindAll(ctx)
			return err
		})

	// then
	assert.ErrorIs(t, leaver, context.Canceled)
	require.NoError(t, stayer)
	assert.Len(t, got, 3)
	assert.Equal(t, 1, st.count("FindAllOrders"))
}
