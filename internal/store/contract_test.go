package store

import (
	"context"
	"testing"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

// runStoreContract checks behaviour every Store implementation must share.
// newStore must return an empty store whose id sequences start at 1.
func runStoreContract(t *testing.T, newStore func() Store) {
	ctx := context.Background()

	seedProducts := func(t *testing.T, s Store, n int) []*db.Product {
		t.Helper()
		out := make([]*db.Product, 0, n)
		for i := 0; i < n; i++ {
			p, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Item", Price: float64(i + 1)})
			require.NoError(t, err)
			out = append(out, p)
		}
		return out
	}

	t.Run("product create and find", func(t *testing.T) {
		// given
		s := newStore()

		// when
		created, err := s.CreateProduct(ctx, db.CreateProductParams{Name: "Widget", Price: 9.99, Description: ptr("blue")})

		// then
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ID)
		found, err := s.FindProductByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created, found)
	})

	t.Run("product not found", func(t *testing.T) {
		s := newStore()

		_, err := s.FindProductByID(ctx, 42)

		assert.ErrorIs(t, err, catalogerrors.ErrProductNotFound)
	})

	t.Run("order create keeps item order", func(t *testing.T) {
		// given
		s := newStore()
		products := seedProducts(t, s, 3)

		// when
		order, err := s.CreateOrder(ctx, "Pending", []db.CreateOrderItemParams{
			{ProductID: products[2].ID, Quantity: 3},
			{ProductID: products[0].ID, Quantity: 1},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Pending", order.Status)
		require.Len(t, order.Items, 2)
		assert.Equal(t, products[2].ID, order.Items[0].ProductID)
		assert.Equal(t, int32(3), order.Items[0].Quantity)
		assert.Equal(t, order.ID, order.Items[1].OrderID)

		found, err := s.FindOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, order, found)
	})

	t.Run("order create rejects unknown product", func(t *testing.T) {
		s := newStore()

		_, err := s.CreateOrder(ctx, "Pending", []db.CreateOrderItemParams{{ProductID: 77, Quantity: 1}})

		assert.ErrorIs(t, err, catalogerrors.ErrCreateOrderItem)
		all, err := s.FindAllOrders(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("find all ordered by id", func(t *testing.T) {
		// given
		s := newStore()
		products := seedProducts(t, s, 1)
		for i := 0; i < 3; i++ {
			_, err := s.CreateOrder(ctx, "Pending", []db.CreateOrderItemParams{{ProductID: products[0].ID, Quantity: int32(i + 1)}})
			require.NoError(t, err)
		}

		// when
		all, err := s.FindAllOrders(ctx)

		// then
		require.NoError(t, err)
		require.Len(t, all, 3)
		for i, o := range all {
			assert.Equal(t, int64(i+1), o.ID)
			require.Len(t, o.Items, 1)
			assert.Equal(t, int32(i+1), o.Items[0].Quantity)
		}
	})

	t.Run("update status only keeps items", func(t *testing.T) {
		// given
		s := newStore()
		products := seedProducts(t, s, 1)
		order, err := s.CreateOrder(ctx, "Pending", []db.CreateOrderItemParams{{ProductID: products[0].ID, Quantity: 2}})
		require.NoError(t, err)

		// when
		updated, err := s.UpdateOrder(ctx, db.UpdateOrderParams{ID: order.ID, Status: ptr("Shipped")})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Shipped", updated.Status)
		assert.Equal(t, order.Items, updated.Items)
	})

	t.Run("update replaces items", func(t *testing.T) {
		// given
		s := newStore()
		products := seedProducts(t, s, 2)
		order, err := s.CreateOrder(ctx, "Pending", []db.CreateOrderItemParams{{ProductID: products[0].ID, Quantity: 2}})
		require.NoError(t, err)

		// when
		updated, err := s.UpdateOrder(ctx, db.UpdateOrderParams{
			ID:    order.ID,
			Items: []db.CreateOrderItemParams{{ProductID: products[1].ID, Quantity: 5}},
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, "Pending", updated.Status)
		require.Len(t, updated.Items, 1)
		assert.Equal(t, products[1].ID, updated.Items[0].ProductID)
		found, err := s.FindOrderByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, found)
	})

	t.Run("update missing order", func(t *testing.T) {
		s := newStore()

		_, err := s.UpdateOrder(ctx, db.UpdateOrderParams{ID: 5, Status: ptr("Shipped")})

		assert.ErrorIs(t, err, catalogerrors.ErrOrderNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		// given
		s := newStore()
		products := seedProducts(t, s, 1)
		order, err := s.CreateOrder(ctx, "Pending", []db.CreateOrderItemParams{{ProductID: products[0].ID, Quantity: 1}})
		require.NoError(t, err)

		// when
		err = s.DeleteOrderByID(ctx, order.ID)

		// then
		require.NoError(t, err)
		_, err = s.FindOrderByID(ctx, order.ID)
		assert.ErrorIs(t, err, catalogerrors.ErrOrderNotFound)
		assert.ErrorIs(t, s.DeleteOrderByID(ctx, order.ID), catalogerrors.ErrOrderNotFound)
	})
}
