package db

import (
	"context"
)

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (status)
VALUES ($1)
RETURNING id, status
`

func (q *Queries) CreateOrder(ctx context.Context, status string) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder, status)
	var i Order
	err := row.Scan(&i.ID, &i.Status)
	return i, err
}

const createOrderItem = `-- name: CreateOrderItem :one
INSERT INTO order_items (order_id, product_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, order_id, product_id, quantity
`

func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem, arg.OrderID, arg.ProductID, arg.Quantity)
	var i OrderItem
	err := row.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity)
	return i, err
}

const findOrderByID = `-- name: FindOrderByID :one
SELECT id, status
FROM orders
WHERE id = $1
`

func (q *Queries) FindOrderByID(ctx context.Context, id int64) (Order, error) {
	row := q.db.QueryRow(ctx, findOrderByID, id)
	var i Order
	err := row.Scan(&i.ID, &i.Status)
	return i, err
}

const findOrderItemsByOrderID = `-- name: FindOrderItemsByOrderID :many
SELECT id, order_id, product_id, quantity
FROM order_items
WHERE order_id = $1
ORDER BY id
`

func (q *Queries) FindOrderItemsByOrderID(ctx context.Context, orderID int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, findOrderItemsByOrderID, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findAllOrders = `-- name: FindAllOrders :many
SELECT id, status
FROM orders
ORDER BY id
`

func (q *Queries) FindAllOrders(ctx context.Context) ([]Order, error) {
	rows, err := q.db.Query(ctx, findAllOrders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []Order{}
	for rows.Next() {
		var i Order
		if err := rows.Scan(&i.ID, &i.Status); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const findAllOrderItems = `-- name: FindAllOrderItems :many
SELECT id, order_id, product_id, quantity
FROM order_items
ORDER BY order_id, id
`

func (q *Queries) FindAllOrderItems(ctx context.Context) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, findAllOrderItems)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := []OrderItem{}
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.Quantity); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOrderStatus = `-- name: UpdateOrderStatus :one
UPDATE orders
SET status = $2
WHERE id = $1
RETURNING id, status
`

func (q *Queries) UpdateOrderStatus(ctx context.Context, id int64, status string) (Order, error) {
	row := q.db.QueryRow(ctx, updateOrderStatus, id, status)
	var i Order
	err := row.Scan(&i.ID, &i.Status)
	return i, err
}

const deleteOrderItems = `-- name: DeleteOrderItems :exec
DELETE FROM order_items
WHERE order_id = $1
`

func (q *Queries) DeleteOrderItems(ctx context.Context, orderID int64) error {
	_, err := q.db.Exec(ctx, deleteOrderItems, orderID)
	return err
}

const deleteOrder = `-- name: DeleteOrder :execrows
DELETE FROM orders
WHERE id = $1
`

func (q *Queries) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.Exec(ctx, deleteOrder, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
