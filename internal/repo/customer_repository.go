package repo

import "github.com/motopecas/pos-core/internal/models"

type CustomerRepository interface {
	GetByID(id int) (models.Customer, error)
	ListActive() ([]models.Customer, error)
}
