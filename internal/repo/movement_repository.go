package repo

import "github.com/motopecas/pos-core/internal/models"

// MovementRepository is the read side of the stock audit trail. Movement
// rows are only written inside the sale store's transaction, alongside the
// stock change they describe.
type MovementRepository interface {
	GetByProductID(productID int) ([]models.Movement, error)
}
