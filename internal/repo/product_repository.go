package repo

import "github.com/motopecas/pos-core/internal/models"

// ProductRepository defines the read-side operations on the catalog. Stock
// mutation is deliberately absent: quantities only change through the sale
// store's transactional unit.
type ProductRepository interface {
	GetByID(id int) (models.Product, error)
	ListActive() ([]models.Product, error)
}
