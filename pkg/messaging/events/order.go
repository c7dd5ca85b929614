package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/gocatalog/pkg/messaging"
)

type OrderItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type OrderCreatedEvent struct {
	Carrier   map[string]string `json:"carrier,omitempty"`
	OrderID   int64             `json:"order_id"`
	Status    string            `json:"status"`
	Items     []OrderItem       `json:"items"`
	CreatedAt time.Time         `json:"created_at"`
}

func (o OrderCreatedEvent) Subject() string {
	return messaging.OrdersCreatedSubject
}

func (o OrderCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}

type OrderUpdatedEvent struct {
	Carrier   map[string]string `json:"carrier,omitempty"`
	OrderID   int64             `json:"order_id"`
	Status    string            `json:"status"`
	Items     []OrderItem       `json:"items"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (o OrderUpdatedEvent) Subject() string {
	return messaging.OrdersUpdatedSubject
}

func (o OrderUpdatedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}

type OrderDeletedEvent struct {
	Carrier   map[string]string `json:"carrier,omitempty"`
	OrderID   int64             `json:"order_id"`
	DeletedAt time.Time         `json:"deleted_at"`
}

func (o OrderDeletedEvent) Subject() string {
	return messaging.OrdersDeletedSubject
}

func (o OrderDeletedEvent) Payload() ([]byte, error) {
	return json.Marshal(o)
}
