package db

import (
	"context"
)

const createProduct = `-- name: CreateProduct :one
INSERT INTO products (name, price, description)
VALUES ($1, $2, $3)
RETURNING id, name, price, description
`

func (q *Queries) CreateProduct(ctx context.Context, arg CreateProductParams) (Product, error) {
	row := q.db.QueryRow(ctx, createProduct, arg.Name, arg.Price, arg.Description)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Description)
	return i, err
}

const findProductByID = `-- name: FindProductByID :one
SELECT id, name, price, description
FROM products
WHERE id = $1
`

func (q *Queries) FindProductByID(ctx context.Context, id int64) (Product, error) {
	row := q.db.QueryRow(ctx, findProductByID, id)
	var i Product
	err := row.Scan(&i.ID, &i.Name, &i.Price, &i.Description)
	return i, err
}
