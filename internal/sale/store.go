package sale

import (
	"context"

	"github.com/motopecas/pos-core/internal/models"
)

// SaleTx is the set of operations available inside one atomic unit of work.
// Everything called through a SaleTx becomes durable together on commit or
// not at all.
type SaleTx interface {
	// CustomerExists reports whether the customer exists and is active.
	CustomerExists(ctx context.Context, id int) (bool, error)

	// LockProduct returns the active product row and holds it against
	// concurrent sales until the unit of work ends. Returns
	// repo.ErrProductNotFound for missing or inactive products.
	LockProduct(ctx context.Context, id int) (models.Product, error)

	// DeductStock removes qty units from the product's stock. The caller
	// must have locked the row and verified availability first.
	DeductStock(ctx context.Context, id, qty int) error

	// RestoreStock adds qty units back, used by the compensating
	// cancellation.
	RestoreStock(ctx context.Context, id, qty int) error

	// InsertOrder writes the order header and its line items, returning the
	// assigned order id.
	InsertOrder(ctx context.Context, o models.Order) (int, error)

	// OrderForUpdate loads the order with its items, locking the header row.
	// Returns repo.ErrOrderNotFound when absent.
	OrderForUpdate(ctx context.Context, id int) (models.Order, error)

	SetOrderStatus(ctx context.Context, id int, status string) error

	// LogMovement records one stock audit entry (negative delta for a
	// deduction, positive for a restock).
	LogMovement(ctx context.Context, productID, orderID, delta int) error
}

// SaleStore opens the transactional unit. RunInTx commits when fn returns
// nil and rolls everything back otherwise; an error from fn or from the
// store surfaces to the caller with zero side effects on stock or orders.
type SaleStore interface {
	RunInTx(ctx context.Context, fn func(tx SaleTx) error) error
}
