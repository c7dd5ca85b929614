package store

import (
	"context"
	"fmt"
	"slices"
	"sync"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/store/db"
)

// MemoryStore implements Store using in-memory maps with sequential ids.
// Foreign keys are checked the way the PostgreSQL schema checks them.
type MemoryStore struct {
	mu            sync.RWMutex
	products      map[int64]db.Product
	orders        map[int64]db.Order
	nextProductID int64
	nextOrderID   int64
	nextItemID    int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:      make(map[int64]db.Product),
		orders:        make(map[int64]db.Order),
		nextProductID: 1,
		nextOrderID:   1,
		nextItemID:    1,
	}
}

func (s *MemoryStore) CreateProduct(_ context.Context, params db.CreateProductParams) (*db.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := db.Product{
		ID:          s.nextProductID,
		Name:        params.Name,
		Price:       params.Price,
		Description: params.Description,
	}
	s.nextProductID++
	s.products[product.ID] = product
	return &product, nil
}

func (s *MemoryStore) FindProductByID(_ context.Context, id int64) (*db.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, catalogerrors.ErrProductNotFound
	}
	return &p, nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, status string, items []db.CreateOrderItemParams) (*db.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkProducts(items); err != nil {
		return nil, err
	}
	order := db.Order{ID: s.nextOrderID, Status: status}
	s.nextOrderID++
	order.Items = s.newItems(order.ID, items)
	s.orders[order.ID] = order
	return cloneOrder(order), nil
}

func (s *MemoryStore) FindOrderByID(_ context.Context, id int64) (*db.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, catalogerrors.ErrOrderNotFound
	}
	return cloneOrder(o), nil
}

func (s *MemoryStore) FindAllOrders(_ context.Context) ([]db.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.orders))
	for id := range s.orders {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	list := make([]db.Order, 0, len(ids))
	for _, id := range ids {
		list = append(list, *cloneOrder(s.orders[id]))
	}
	return list, nil
}

func (s *MemoryStore) UpdateOrder(_ context.Context, params db.UpdateOrderParams) (*db.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[params.ID]
	if !ok {
		return nil, catalogerrors.ErrOrderNotFound
	}
	if params.Items != nil {
		if err := s.checkProducts(params.Items); err != nil {
			return nil, err
		}
		o.Items = s.newItems(o.ID, params.Items)
	}
	if params.Status != nil {
		o.Status = *params.Status
	}
	s.orders[o.ID] = o
	return cloneOrder(o), nil
}

func (s *MemoryStore) DeleteOrderByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[id]; !ok {
		return catalogerrors.ErrOrderNotFound
	}
	delete(s.orders, id)
	return nil
}

func (s *MemoryStore) checkProducts(items []db.CreateOrderItemParams) error {
	for _, item := range items {
		if _, ok := s.products[item.ProductID]; !ok {
			return fmt.Errorf("%w: product %d does not exist", catalogerrors.ErrCreateOrderItem, item.ProductID)
		}
	}
	return nil
}

func (s *MemoryStore) newItems(orderID int64, items []db.CreateOrderItemParams) []db.OrderItem {
	created := make([]db.OrderItem, 0, len(items))
	for _, item := range items {
		created = append(created, db.OrderItem{
			ID:        s.nextItemID,
			OrderID:   orderID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
		s.nextItemID++
	}
	return created
}

func cloneOrder(o db.Order) *db.Order {
	o.Items = slices.Clone(o.Items)
	if o.Items == nil {
		o.Items = []db.OrderItem{}
	}
	return &o
}

var _ Store = (*MemoryStore)(nil)
