package repo

import "errors"

// ErrProductNotFound is returned when a product is not found in the repository.
var ErrProductNotFound = errors.New("product not found")

// ErrCustomerNotFound is returned when a customer is not found in the repository.
var ErrCustomerNotFound = errors.New("customer not found")

// ErrOrderNotFound is returned when an order is not found in the repository.
var ErrOrderNotFound = errors.New("order not found")

// ErrNegativeStock is returned when a stock adjustment would drop a
// product's quantity below zero.
var ErrNegativeStock = errors.New("stock adjustment would go negative")
