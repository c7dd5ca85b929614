package store

import (
	"context"
	"errors"
	"fmt"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgStore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// NewPgStore creates a new Store using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	return &PgStore{
		db: dbp,
		q:  db.New(dbp),
	}
}

func (p *PgStore) CreateProduct(ctx context.Context, params db.CreateProductParams) (*db.Product, error) {
	product, err := p.q.CreateProduct(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", catalogerrors.ErrCreateProduct, err)
	}
	return &product, nil
}

func (p *PgStore) FindProductByID(ctx context.Context, id int64) (*db.Product, error) {
	product, err := p.q.FindProductByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalogerrors.ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: %w", catalogerrors.ErrFailedToFindProduct, err)
	}
	return &product, nil
}

func (p *PgStore) CreateOrder(ctx context.Context, status string, items []db.CreateOrderItemParams) (*db.Order, error) {
	var created db.Order

	txErr := p.withTransaction(ctx, func(qtx *db.Queries) error {
		order, err := qtx.CreateOrder(ctx, status)
		if err != nil {
			return fmt.Errorf("%w: %w", catalogerrors.ErrCreateOrder, err)
		}
		order.Items, err = insertItems(ctx, qtx, order.ID, items)
		if err != nil {
			return err
		}
		created = order
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &created, nil
}

func (p *PgStore) FindOrderByID(ctx context.Context, id int64) (*db.Order, error) {
	var order db.Order

	// Order row and items are read in one transaction so a concurrent update is seen whole or not at all.
	txErr := p.withTransaction(ctx, func(qtx *db.Queries) error {
		o, err := qtx.FindOrderByID(ctx, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerrors.ErrOrderNotFound
			}
			return fmt.Errorf("%w: %w", catalogerrors.ErrFailedToFindOrder, err)
		}
		o.Items, err = qtx.FindOrderItemsByOrderID(ctx, id)
		if err != nil {
			return fmt.Errorf("%w: %w", catalogerrors.ErrFailedToFindOrderItems, err)
		}
		order = o
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

func (p *PgStore) FindAllOrders(ctx context.Context) ([]db.Order, error) {
	var orders []db.Order

	txErr := p.withTransaction(ctx, func(qtx *db.Queries) error {
		var err error
		orders, err = qtx.FindAllOrders(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", catalogerrors.ErrFailedToFindOrders, err)
		}
		items, err := qtx.FindAllOrderItems(ctx)
		if err != nil {
			return fmt.Errorf("%w: %w", catalogerrors.ErrFailedToFindOrderItems, err)
		}
		byOrder := make(map[int64][]db.OrderItem, len(orders))
		for _, item := range items {
			byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
		}
		for i := range orders {
			orders[i].Items = byOrder[orders[i].ID]
			if orders[i].Items == nil {
				orders[i].Items = []db.OrderItem{}
			}
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return orders, nil
}

func (p *PgStore) UpdateOrder(ctx context.Context, params db.UpdateOrderParams) (*db.Order, error) {
	var order db.Order

	txErr := p.withTransaction(ctx, func(qtx *db.Queries) error {
		var err error
		if params.Status != nil {
			order, err = qtx.UpdateOrderStatus(ctx, params.ID, *params.Status)
		} else {
			order, err = qtx.FindOrderByID(ctx, params.ID)
		}
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return catalogerrors.ErrOrderNotFound
			}
			return fmt.Errorf("%w: %w", catalogerrors.ErrUpdateOrder, err)
		}

		if params.Items != nil {
			if err := qtx.DeleteOrderItems(ctx, params.ID); err != nil {
				return fmt.Errorf("%w: %w", catalogerrors.ErrUpdateOrder, err)
			}
			order.Items, err = insertItems(ctx, qtx, params.ID, params.Items)
		} else {
			order.Items, err = qtx.FindOrderItemsByOrderID(ctx, params.ID)
			if err != nil {
				err = fmt.Errorf("%w: %w", catalogerrors.ErrFailedToFindOrderItems, err)
			}
		}
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return &order, nil
}

func (p *PgStore) DeleteOrderByID(ctx context.Context, id int64) error {
	count, err := p.q.DeleteOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("%w: %w", catalogerrors.ErrDeleteOrder, err)
	}
	if count == 0 {
		return catalogerrors.ErrOrderNotFound
	}
	return nil
}

var _ Store = (*PgStore)(nil)

func insertItems(ctx context.Context, qtx *db.Queries, orderID int64, items []db.CreateOrderItemParams) ([]db.OrderItem, error) {
	created := make([]db.OrderItem, 0, len(items))
	for _, item := range items {
		item.OrderID = orderID
		orderItem, err := qtx.CreateOrderItem(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", catalogerrors.ErrCreateOrderItem, err)
		}
		created = append(created, orderItem)
	}
	return created, nil
}

func (p *PgStore) withTransaction(ctx context.Context, fn func(qtx *db.Queries) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", catalogerrors.ErrTransactionBegin, err)
	}
	qtx := p.q.WithTx(tx)

	err = fn(qtx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return catalogerrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: %w", catalogerrors.ErrTransactionCommit, err)
	}

	return nil
}
