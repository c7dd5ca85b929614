package service

import (
	"slices"

	"github.com/abgdnv/gocatalog/internal/store/db"
)

// Order statuses.
const (
	StatusPending   = "Pending"
	StatusShipped   = "Shipped"
	StatusDelivered = "Delivered"
	StatusCancelled = "Cancelled"
)

// ProductDto is the cached, immutable product snapshot returned to callers.
type ProductDto struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

// ProductCreateDto is the input for creating a product. Name is trimmed and title-cased, price rounded to cents.
type ProductCreateDto struct {
	Name        string  `json:"name"        validate:"required,min=2,max=100,notblank"`
	Price       float64 `json:"price"       validate:"gt=0"`
	Description *string `json:"description" validate:"omitnil,max=500"`
}

type OrderItemDto struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// OrderDto is the cached order snapshot returned to callers.
type OrderDto struct {
	ID     int64          `json:"id"`
	Status string         `json:"status"`
	Items  []OrderItemDto `json:"items"`
}

type OrderItemCreateDto struct {
	ProductID int64 `json:"product_id" validate:"gt=0"`
	Quantity  int32 `json:"quantity"   validate:"min=1,max=100"`
}

// OrderCreateDto represents the data transfer object for creating a new order. Product ids must be unique.
type OrderCreateDto struct {
	Items []OrderItemCreateDto `json:"items" validate:"required,min=1,unique=ProductID,dive"`
}

// OrderUpdateDto is a partial update. Nil fields are left unchanged; a non-nil item list replaces the old one.
type OrderUpdateDto struct {
	Status *string              `json:"status" validate:"omitnil,oneof=Pending Shipped Delivered Cancelled"`
	Items  []OrderItemCreateDto `json:"items"  validate:"omitnil,min=1,unique=ProductID,dive"`
}

func productID(p ProductDto) int64 { return p.ID }

func orderID(o OrderDto) int64 { return o.ID }

// toProductDto converts a db.Product to a ProductDto.
func toProductDto(p *db.Product) ProductDto {
	return ProductDto{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
	}
}

// toOrderDto converts a db.Order with its items to an OrderDto.
func toOrderDto(o *db.Order) OrderDto {
	items := make([]OrderItemDto, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDto{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return OrderDto{
		ID:     o.ID,
		Status: o.Status,
		Items:  items,
	}
}

// detach copies the item slice so callers cannot modify the cached entry.
func detach(o OrderDto) *OrderDto {
	o.Items = slices.Clone(o.Items)
	return &o
}

func toItemParams(items []OrderItemCreateDto) []db.CreateOrderItemParams {
	params := make([]db.CreateOrderItemParams, 0, len(items))
	for _, item := range items {
		params = append(params, db.CreateOrderItemParams{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return params
}
