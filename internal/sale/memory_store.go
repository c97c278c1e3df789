package sale

import (
	"context"
	"fmt"
	"sync"

	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
)

// MemorySaleStore is the in-memory counterpart of PostgresSaleStore, built
// on the in-memory repositories so handler tests observe engine effects
// through the same read paths. One mutex spans the whole unit of work, which
// is stricter than the row locking Postgres does but honors the same
// contract; snapshots taken at entry provide rollback.
type MemorySaleStore struct {
	mu        sync.Mutex
	products  *repo.InMemoryProductRepository
	customers *repo.InMemoryCustomerRepository
	orders    *repo.InMemoryOrderRepository
	movements *repo.InMemoryMovementRepository
}

func NewMemorySaleStore(
	products *repo.InMemoryProductRepository,
	customers *repo.InMemoryCustomerRepository,
	orders *repo.InMemoryOrderRepository,
	movements *repo.InMemoryMovementRepository,
) *MemorySaleStore {
	return &MemorySaleStore{
		products:  products,
		customers: customers,
		orders:    orders,
		movements: movements,
	}
}

func (s *MemorySaleStore) RunInTx(ctx context.Context, fn func(tx SaleTx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
	}

	productSnap := s.products.Snapshot()
	orderSnap := s.orders.Snapshot()
	movementSnap := s.movements.Snapshot()

	if err := fn(&memSaleTx{store: s}); err != nil {
		s.products.Restore(productSnap)
		s.orders.Restore(orderSnap)
		s.movements.Restore(movementSnap)
		return err
	}
	return nil
}

type memSaleTx struct {
	store *MemorySaleStore
}

func (t *memSaleTx) CustomerExists(_ context.Context, id int) (bool, error) {
	c, err := t.store.customers.GetByID(id)
	if err != nil {
		return false, nil
	}
	return c.Active, nil
}

func (t *memSaleTx) LockProduct(_ context.Context, id int) (models.Product, error) {
	p, err := t.store.products.GetByID(id)
	if err != nil {
		return models.Product{}, err
	}
	if !p.Active {
		return models.Product{}, repo.ErrProductNotFound
	}
	return p, nil
}

func (t *memSaleTx) DeductStock(_ context.Context, id, qty int) error {
	p, err := t.store.products.GetByID(id)
	if err != nil {
		return err
	}
	if p.Quantity < qty {
		return &InsufficientStockError{ProductID: id, Requested: qty, Available: p.Quantity}
	}
	_, err = t.store.products.AdjustQuantity(id, -qty)
	return err
}

func (t *memSaleTx) RestoreStock(_ context.Context, id, qty int) error {
	_, err := t.store.products.AdjustQuantity(id, qty)
	return err
}

func (t *memSaleTx) InsertOrder(_ context.Context, o models.Order) (int, error) {
	return t.store.orders.Insert(o).ID, nil
}

func (t *memSaleTx) OrderForUpdate(_ context.Context, id int) (models.Order, error) {
	return t.store.orders.GetByID(id)
}

func (t *memSaleTx) SetOrderStatus(_ context.Context, id int, status string) error {
	return t.store.orders.SetStatus(id, status)
}

func (t *memSaleTx) LogMovement(_ context.Context, productID, orderID, delta int) error {
	t.store.movements.Log(productID, orderID, delta)
	return nil
}
