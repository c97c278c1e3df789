package repo

import (
	"sync"

	"github.com/motopecas/pos-core/internal/models"
)

type InMemoryOrderRepository struct {
	mu     sync.RWMutex
	orders []models.Order
	nextID int
}

func NewInMemoryOrderRepository() *InMemoryOrderRepository {
	return &InMemoryOrderRepository{nextID: 1}
}

func (r *InMemoryOrderRepository) GetByID(id int) (models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, o := range r.orders {
		if o.ID == id {
			return cloneOrder(o), nil
		}
	}
	return models.Order{}, ErrOrderNotFound
}

func (r *InMemoryOrderRepository) List(f OrderFilter) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Order
	for _, o := range r.orders {
		if f.Status != nil && o.Status != *f.Status {
			continue
		}
		if f.CustomerID != nil && o.CustomerID != *f.CustomerID {
			continue
		}
		out = append(out, cloneOrder(o))
	}
	return out, nil
}

// Insert stores the order with its items and assigns the next id. Ids are
// monotonically increasing and never reused.
func (r *InMemoryOrderRepository) Insert(o models.Order) models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	r.orders = append(r.orders, cloneOrder(o))
	return o
}

func (r *InMemoryOrderRepository) SetStatus(id int, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, o := range r.orders {
		if o.ID == id {
			r.orders[i].Status = status
			return nil
		}
	}
	return ErrOrderNotFound
}

func (r *InMemoryOrderRepository) Snapshot() []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]models.Order, len(r.orders))
	for i, o := range r.orders {
		cp[i] = cloneOrder(o)
	}
	return cp
}

func (r *InMemoryOrderRepository) Restore(orders []models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = orders
}

func (r *InMemoryOrderRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = nil
	r.nextID = 1
}

func cloneOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
