package db

type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

type Order struct {
	ID     int64       `json:"id"`
	Status string      `json:"status"`
	Items  []OrderItem `json:"items"`
}

type OrderItem struct {
	ID        int64 `json:"id"`
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

type CreateProductParams struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description *string `json:"description"`
}

type CreateOrderItemParams struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Quantity  int32 `json:"quantity"`
}

// UpdateOrderParams carries a partial update. A nil Status or nil Items leaves that part unchanged.
type UpdateOrderParams struct {
	ID     int64
	Status *string
	Items  []CreateOrderItemParams
}
