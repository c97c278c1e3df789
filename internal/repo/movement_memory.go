package repo

import (
	"sync"
	"time"

	"github.com/motopecas/pos-core/internal/models"
)

type InMemoryMovementRepository struct {
	mu        sync.RWMutex
	movements []models.Movement
}

func NewInMemoryMovementRepository() *InMemoryMovementRepository {
	return &InMemoryMovementRepository{}
}

func (r *InMemoryMovementRepository) GetByProductID(productID int) ([]models.Movement, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []models.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

// Log appends a movement row. Called by the in-memory sale store inside its
// transactional unit.
func (r *InMemoryMovementRepository) Log(productID, orderID, delta int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, models.Movement{
		ID:        len(r.movements) + 1,
		ProductID: productID,
		OrderID:   orderID,
		Delta:     delta,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (r *InMemoryMovementRepository) Snapshot() []models.Movement {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cp := make([]models.Movement, len(r.movements))
	copy(cp, r.movements)
	return cp
}

func (r *InMemoryMovementRepository) Restore(movements []models.Movement) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = movements
}

func (r *InMemoryMovementRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = nil
}
