package messaging

import (
	"context"
)

const (
	OrdersCreatedSubject   = "orders.created"
	OrdersUpdatedSubject   = "orders.updated"
	OrdersDeletedSubject   = "orders.deleted"
	ProductsCreatedSubject = "products.created"
)

// StreamSubjects lists every subject published by the catalog service.
var StreamSubjects = []string{"orders.>", "products.>"}

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards events. Used when messaging is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
