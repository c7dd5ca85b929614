package events

import (
	"encoding/json"
	"time"

	"github.com/abgdnv/gocatalog/pkg/messaging"
)

type ProductCreatedEvent struct {
	Carrier   map[string]string `json:"carrier,omitempty"`
	ProductID int64             `json:"product_id"`
	Name      string            `json:"name"`
	Price     float64           `json:"price"`
	CreatedAt time.Time         `json:"created_at"`
}

func (p ProductCreatedEvent) Subject() string {
	return messaging.ProductsCreatedSubject
}

func (p ProductCreatedEvent) Payload() ([]byte, error) {
	return json.Marshal(p)
}
