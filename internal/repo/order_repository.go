package repo

import "github.com/motopecas/pos-core/internal/models"

// OrderFilter narrows order listings. A nil Status means all statuses.
type OrderFilter struct {
	Status     *string
	CustomerID *int
}

// OrderRepository is the read side of the order store. Writes (placement,
// cancellation) only happen through the sale store's transactional unit.
type OrderRepository interface {
	GetByID(id int) (models.Order, error)
	List(f OrderFilter) ([]models.Order, error)
}
