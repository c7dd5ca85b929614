// Package store provides the durable store behind the cache: PostgreSQL, in-memory and circuit-breaker backed.
package store

import (
	"context"

	"github.com/abgdnv/gocatalog/internal/store/db"
)

// ProductStore is an interface for product storage operations.
type ProductStore interface {
	// CreateProduct persists a new product and returns it with its assigned ID.
	CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.Product, error)

	// FindProductByID retrieves a single product by its identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindProductByID(ctx context.Context, id int64) (*db.Product, error)
}

// OrderStore is an interface for order storage operations.
// Orders are returned with their items in insertion order.
type OrderStore interface {
	// CreateOrder inserts the order row and every item in one transaction.
	CreateOrder(ctx context.Context, status string, items []db.CreateOrderItemParams) (*db.Order, error)

	// FindOrderByID retrieves a single order by its identifier.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	FindOrderByID(ctx context.Context, id int64) (*db.Order, error)

	// FindAllOrders returns every stored order, ordered by ID.
	// Returns an empty slice if no orders exist.
	FindAllOrders(ctx context.Context) ([]db.Order, error)

	// UpdateOrder changes the status and/or replaces the item list in one transaction.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	UpdateOrder(ctx context.Context, params db.UpdateOrderParams) (*db.Order, error)

	// DeleteOrderByID removes an order and its items.
	// Returns ErrOrderNotFound if no order exists with the given ID.
	DeleteOrderByID(ctx context.Context, id int64) error
}

// Store is the full durable store contract.
type Store interface {
	ProductStore
	OrderStore
}
