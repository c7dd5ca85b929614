package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	catalogerrors "github.com/abgdnv/gocatalog/internal/errors"
	"github.com/abgdnv/gocatalog/internal/index"
	"github.com/abgdnv/gocatalog/internal/store"
	"github.com/abgdnv/gocatalog/internal/store/db"
	"github.com/abgdnv/gocatalog/pkg/messaging"
	"github.com/abgdnv/gocatalog/pkg/messaging/events"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"golang.org/x/sync/singleflight"
)

const reloadKey = "orders:reload"

// OrderService defines the methods for managing orders.
type OrderService interface {
	// Create checks every referenced product, persists the order and caches it.
	// Returns a BusinessRuleError if a product does not exist.
	Create(ctx context.Context, order OrderCreateDto) (*OrderDto, error)

	// FindByID returns the order from the index, or loads it from the store and caches it.
	// Returns an EntityNotFoundError if no order exists with the given ID.
	FindByID(ctx context.Context, id int64) (*OrderDto, error)

	// FindAll returns the cached orders in index order. An empty index is reloaded from the store first.
	FindAll(ctx context.Context) ([]OrderDto, error)

	// Update applies a partial update in the store and refreshes the cached entry.
	// Returns an EntityNotFoundError if no order exists with the given ID,
	// or a BusinessRuleError if a new item references a missing product.
	Update(ctx context.Context, id int64, order OrderUpdateDto) (*OrderDto, error)

	// DeleteByID drops the order from the index, then from the store.
	// Returns an EntityNotFoundError if no order exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}

// Orders implements OrderService on top of an insertion-ordered list index.
type Orders struct {
	store         store.OrderStore
	products      ProductService
	index         *index.List[OrderDto]
	flights       singleflight.Group
	publisher     messaging.Publisher
	metrics       *cacheMetrics
	ordersCounter metric.Int64Counter
	logger        *slog.Logger
}

// NewOrderService creates an OrderService with an empty index. Product references are resolved through products.
func NewOrderService(orderStore store.OrderStore, products ProductService, publisher messaging.Publisher, logger *slog.Logger) *Orders {
	return &Orders{
		store:         orderStore,
		products:      products,
		index:         index.NewList(orderID),
		publisher:     publisher,
		metrics:       newCacheMetrics(),
		ordersCounter: mustCounter(otel.Meter(meterName), "orders_created", "Total number of created orders"),
		logger:        logger.With("component", "order-cache"),
	}
}

func (s *Orders) Create(ctx context.Context, order OrderCreateDto) (*OrderDto, error) {
	for _, item := range order.Items {
		if err := s.checkProduct(ctx, item.ProductID, "Product with ID %d does not exist. Cannot create order."); err != nil {
			return nil, err
		}
	}

	created, err := s.store.CreateOrder(ctx, StatusPending, toItemParams(order.Items))
	if err != nil {
		return nil, err
	}
	dto := toOrderDto(created)
	s.index.Upsert(dto)
	s.ordersCounter.Add(ctx, 1)

	s.publish(ctx, events.OrderCreatedEvent{
		Carrier:   traceCarrier(ctx),
		OrderID:   dto.ID,
		Status:    dto.Status,
		Items:     toEventItems(dto.Items),
		CreatedAt: time.Now().UTC(),
	})
	return detach(dto), nil
}

func (s *Orders) FindByID(ctx context.Context, id int64) (*OrderDto, error) {
	if o, ok := s.index.Find(id); ok {
		s.metrics.hit(ctx, entityOrder)
		return detach(o), nil
	}
	s.metrics.miss(ctx, entityOrder)

	o, err := shared(ctx, &s.flights, "order:"+strconv.FormatInt(id, 10), func(ctx context.Context) (OrderDto, error) {
		if o, ok := s.index.Find(id); ok {
			return o, nil
		}
		row, err := s.store.FindOrderByID(ctx, id)
		if err != nil {
			return OrderDto{}, orderNotFound(err, id)
		}
		dto := toOrderDto(row)
		s.index.Upsert(dto)
		return dto, nil
	})
	if err != nil {
		return nil, err
	}
	return detach(o), nil
}

func (s *Orders) FindAll(ctx context.Context) ([]OrderDto, error) {
	if s.index.IsEmpty() {
		s.metrics.miss(ctx, entityOrder)
		if _, err := s.Warm(ctx); err != nil {
			return nil, err
		}
	} else {
		s.metrics.hit(ctx, entityOrder)
	}
	cached := s.index.All()
	out := make([]OrderDto, 0, len(cached))
	for _, o := range cached {
		out = append(out, *detach(o))
	}
	return out, nil
}

// Warm applies the cold-start rule: when the index is empty every stored order is loaded into it.
// Concurrent callers share one reload. Returns the number of orders loaded, zero if the index was already populated.
func (s *Orders) Warm(ctx context.Context) (int, error) {
	if !s.index.IsEmpty() {
		return 0, nil
	}
	return shared(ctx, &s.flights, reloadKey, func(ctx context.Context) (int, error) {
		if !s.index.IsEmpty() {
			return 0, nil
		}
		rows, err := s.store.FindAllOrders(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to reload orders: %w", err)
		}
		for i := range rows {
			s.index.Upsert(toOrderDto(&rows[i]))
		}
		s.metrics.reloads.Add(ctx, 1)
		s.logger.InfoContext(ctx, "Order index reloaded from store", "orders", len(rows))
		return len(rows), nil
	})
}

func (s *Orders) Update(ctx context.Context, id int64, order OrderUpdateDto) (*OrderDto, error) {
	if _, err := s.store.FindOrderByID(ctx, id); err != nil {
		return nil, orderNotFound(err, id)
	}

	params := db.UpdateOrderParams{ID: id, Status: order.Status}
	if order.Items != nil {
		for _, item := range order.Items {
			if err := s.checkProduct(ctx, item.ProductID, "Product ID %d invalid."); err != nil {
				return nil, err
			}
		}
		params.Items = toItemParams(order.Items)
	}

	updated, err := s.store.UpdateOrder(ctx, params)
	if err != nil {
		return nil, orderNotFound(err, id)
	}
	dto := toOrderDto(updated)
	s.index.Upsert(dto)

	s.publish(ctx, events.OrderUpdatedEvent{
		Carrier:   traceCarrier(ctx),
		OrderID:   dto.ID,
		Status:    dto.Status,
		Items:     toEventItems(dto.Items),
		UpdatedAt: time.Now().UTC(),
	})
	return detach(dto), nil
}

func (s *Orders) DeleteByID(ctx context.Context, id int64) error {
	// Retract the cached entry before the authoritative record disappears.
	s.index.Remove(id)

	if err := s.store.DeleteOrderByID(ctx, id); err != nil {
		return orderNotFound(err, id)
	}

	s.publish(ctx, events.OrderDeletedEvent{
		Carrier:   traceCarrier(ctx),
		OrderID:   id,
		DeletedAt: time.Now().UTC(),
	})
	return nil
}

// Cached reports how many orders the index holds.
func (s *Orders) Cached() int {
	return s.index.Len()
}

// checkProduct resolves a product through the product cache and turns its absence into a business rule violation.
func (s *Orders) checkProduct(ctx context.Context, productID int64, format string) error {
	_, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, catalogerrors.ErrEntityNotFound) {
		return catalogerrors.NewBusinessRule(format, productID)
	}
	return err
}

func (s *Orders) publish(ctx context.Context, event messaging.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish event", "subject", event.Subject(), "error", err)
	}
}

func orderNotFound(err error, id int64) error {
	if errors.Is(err, catalogerrors.ErrOrderNotFound) {
		return catalogerrors.NewEntityNotFound("Order", id)
	}
	return err
}

func toEventItems(items []OrderItemDto) []events.OrderItem {
	out := make([]events.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, events.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return out
}

// traceCarrier captures the active trace context so subscribers can continue the trace.
func traceCarrier(ctx context.Context) map[string]string {
	carrier := make(propagation.MapCarrier)
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if len(carrier) == 0 {
		return nil
	}
	return carrier
}
