package repo

import (
	"sync"

	"github.com/motopecas/pos-core/internal/models"
)

type InMemoryCustomerRepository struct {
	mu        sync.RWMutex
	customers []models.Customer
	nextID    int
}

func NewInMemoryCustomerRepository() *InMemoryCustomerRepository {
	return &InMemoryCustomerRepository{nextID: 1}
}

func (r *InMemoryCustomerRepository) GetByID(id int) (models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, ErrCustomerNotFound
}

func (r *InMemoryCustomerRepository) ListActive() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var active []models.Customer
	for _, c := range r.customers {
		if c.Active {
			active = append(active, c)
		}
	}
	return active, nil
}

func (r *InMemoryCustomerRepository) Put(c models.Customer) models.Customer {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == 0 {
		c.ID = r.nextID
		r.nextID++
	} else if c.ID >= r.nextID {
		r.nextID = c.ID + 1
	}
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			r.customers[i] = c
			return c
		}
	}
	r.customers = append(r.customers, c)
	return c
}

func (r *InMemoryCustomerRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = nil
	r.nextID = 1
}
