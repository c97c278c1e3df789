package repo

import (
	"sync"

	"github.com/motopecas/pos-core/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of
// ProductRepository. It also exposes the mutation hooks the in-memory sale
// store needs, guarded by a mutex so concurrent placements behave like they
// do against Postgres.
type InMemoryProductRepository struct {
	mu       sync.RWMutex
	products []models.Product
	nextID   int
}

func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{nextID: 1}
}

func (r *InMemoryProductRepository) GetByID(id int) (models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

func (r *InMemoryProductRepository) ListActive() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var active []models.Product
	for _, p := range r.products {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

// Put inserts the product, assigning an id when it has none. Used to seed
// tests and by catalog tooling.
func (r *InMemoryProductRepository) Put(p models.Product) models.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	for i, existing := range r.products {
		if existing.ID == p.ID {
			r.products[i] = p
			return p
		}
	}
	r.products = append(r.products, p)
	return p
}

// AdjustQuantity applies delta to the product's stock, refusing to go
// negative.
func (r *InMemoryProductRepository) AdjustQuantity(id, delta int) (models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.products {
		if p.ID == id {
			if p.Quantity+delta < 0 {
				return models.Product{}, ErrNegativeStock
			}
			r.products[i].Quantity += delta
			return r.products[i], nil
		}
	}
	return models.Product{}, ErrProductNotFound
}

// Snapshot returns a copy of the current state; Restore puts it back. The
// in-memory sale store uses the pair to roll back aborted transactions.
func (r *InMemoryProductRepository) Snapshot() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]models.Product, len(r.products))
	copy(cp, r.products)
	return cp
}

func (r *InMemoryProductRepository) Restore(products []models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = products
}

func (r *InMemoryProductRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = nil
	r.nextID = 1
}
