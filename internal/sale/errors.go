package sale

import (
	"errors"
	"fmt"
)

// ErrConcurrencyConflict marks a placement that lost a lock or serialization
// race. The transaction had no effect, so callers may retry the same request
// verbatim.
var ErrConcurrencyConflict = errors.New("concurrent sale conflict")

// ErrOrderAlreadyCancelled is returned by a second cancel on the same order.
var ErrOrderAlreadyCancelled = errors.New("order already cancelled")

// InvalidLineItemError rejects a malformed sale request before any
// transaction is opened: empty item list, non-positive quantity, or the same
// product appearing twice.
type InvalidLineItemError struct {
	ProductID int
	Reason    string
}

func (e *InvalidLineItemError) Error() string {
	if e.ProductID != 0 {
		return fmt.Sprintf("invalid line item for product %d: %s", e.ProductID, e.Reason)
	}
	return "invalid line item: " + e.Reason
}

// UnknownProductError reports a line item referencing a product that does not
// exist or is no longer active.
type UnknownProductError struct {
	ProductID int
}

func (e *UnknownProductError) Error() string {
	return fmt.Sprintf("unknown product %d", e.ProductID)
}

// UnknownCustomerError reports a sale for a customer that does not exist or
// is no longer active.
type UnknownCustomerError struct {
	CustomerID int
}

func (e *UnknownCustomerError) Error() string {
	return fmt.Sprintf("unknown customer %d", e.CustomerID)
}

// InsufficientStockError identifies the first line item whose quantity
// exceeds the available stock. The whole placement aborts with no partial
// deduction.
type InsufficientStockError struct {
	ProductID int
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested %d, available %d",
		e.ProductID, e.Requested, e.Available)
}

// Shortfall is how many units were missing.
func (e *InsufficientStockError) Shortfall() int {
	return e.Requested - e.Available
}
