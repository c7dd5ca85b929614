// Package errors provides the error values shared by the store, the cache coordinator and the transport layer.
package errors

import (
	"errors"
	"fmt"
)

// Store sentinels.
var ErrProductNotFound = errors.New("product not found")
var ErrCreateProduct = errors.New("failed to create product")
var ErrFailedToFindProduct = errors.New("failed to find product")

var ErrOrderNotFound = errors.New("order not found")
var ErrCreateOrder = errors.New("failed to create order")
var ErrCreateOrderItem = errors.New("failed to create order item")
var ErrUpdateOrder = errors.New("failed to update order")
var ErrDeleteOrder = errors.New("failed to delete order")
var ErrFailedToFindOrder = errors.New("failed to find order")
var ErrFailedToFindOrders = errors.New("failed to find orders")
var ErrFailedToFindOrderItems = errors.New("failed to find order items")

var ErrTransactionBegin = errors.New("failed to begin transaction")
var ErrTransactionCommit = errors.New("failed to commit transaction")
var ErrTransactionRollback = errors.New("failed to rollback transaction")

// Domain sentinels, matched by the typed errors below through errors.Is.
var ErrEntityNotFound = errors.New("entity not found")
var ErrBusinessRule = errors.New("business rule violation")

// EntityNotFoundError reports a product or order absent from both the cache and the store.
type EntityNotFoundError struct {
	Entity string
	ID     any
}

func NewEntityNotFound(entity string, id any) *EntityNotFoundError {
	return &EntityNotFoundError{Entity: entity, ID: id}
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with id/name '%v' was not found.", e.Entity, e.ID)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// BusinessRuleError reports a request that is well formed but not allowed, e.g. an order for an unknown product.
type BusinessRuleError struct {
	Message string
}

func NewBusinessRule(format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

func (e *BusinessRuleError) Error() string {
	return e.Message
}

func (e *BusinessRuleError) Is(target error) bool {
	return target == ErrBusinessRule
}
