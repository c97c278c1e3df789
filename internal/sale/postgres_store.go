package sale

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
)

// PostgresSaleStore runs every unit of work in one read-committed
// transaction. Product rows touched by a sale are locked with FOR UPDATE for
// the validate+deduct window, so two concurrent sales on the same product
// serialize and cannot both observe the same stock.
type PostgresSaleStore struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresSaleStore(db *sql.DB, timeout time.Duration) *PostgresSaleStore {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PostgresSaleStore{db: db, timeout: timeout}
}

func (s *PostgresSaleStore) RunInTx(ctx context.Context, fn func(tx SaleTx) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return translateErr(fmt.Errorf("begin sale transaction: %w", err))
	}
	defer tx.Rollback() // no-op after a successful commit

	// Bound lock waits: a placement stuck behind a conflicting sale aborts
	// with a retryable error instead of holding its own locks indefinitely.
	if _, err := tx.ExecContext(ctx, `SET LOCAL lock_timeout = '3s'`); err != nil {
		return translateErr(err)
	}

	if err := fn(&pgSaleTx{tx: tx}); err != nil {
		return translateErr(err)
	}
	if err := tx.Commit(); err != nil {
		return translateErr(fmt.Errorf("commit sale transaction: %w", err))
	}
	return nil
}

// translateErr maps lock and serialization failures onto the retryable
// ErrConcurrencyConflict; domain errors and plain persistence failures pass
// through unchanged.
func translateErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization failure, deadlock, lock timeout
			return fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrConcurrencyConflict, err)
	}
	return err
}

type pgSaleTx struct {
	tx *sql.Tx
}

func (t *pgSaleTx) CustomerExists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := t.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1 AND active)`, id).Scan(&exists)
	return exists, err
}

func (t *pgSaleTx) LockProduct(ctx context.Context, id int) (models.Product, error) {
	query := `SELECT id, sku, name, cost_price, sale_price, quantity, min_stock, active
		FROM products WHERE id = $1 AND active FOR UPDATE`

	var p models.Product
	err := t.tx.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.SKU, &p.Name, &p.CostPrice, &p.SalePrice, &p.Quantity, &p.MinStock, &p.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, repo.ErrProductNotFound
	}
	return p, err
}

func (t *pgSaleTx) DeductStock(ctx context.Context, id, qty int) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE products SET quantity = quantity - $1, updated_at = $2 WHERE id = $3 AND quantity - $1 >= 0`,
		qty, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		// The row is locked by this transaction, so the guard only fires if
		// the caller skipped validation.
		return &InsufficientStockError{ProductID: id, Requested: qty}
	}
	return nil
}

func (t *pgSaleTx) RestoreStock(ctx context.Context, id, qty int) error {
	_, err := t.tx.ExecContext(ctx,
		`UPDATE products SET quantity = quantity + $1, updated_at = $2 WHERE id = $3`,
		qty, time.Now().UTC(), id)
	return err
}

func (t *pgSaleTx) InsertOrder(ctx context.Context, o models.Order) (int, error) {
	var id int
	err := t.tx.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, placed_at, total, status) VALUES ($1, $2, $3, $4) RETURNING id`,
		o.CustomerID, o.PlacedAt, o.Total, o.Status).Scan(&id)
	if err != nil {
		return 0, err
	}

	for _, it := range o.Items {
		_, err := t.tx.ExecContext(ctx,
			`INSERT INTO order_items (order_id, seq, product_id, quantity, unit_price) VALUES ($1, $2, $3, $4, $5)`,
			id, it.Seq, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return 0, err
		}
	}
	return id, nil
}

func (t *pgSaleTx) OrderForUpdate(ctx context.Context, id int) (models.Order, error) {
	var o models.Order
	err := t.tx.QueryRowContext(ctx,
		`SELECT id, customer_id, placed_at, total, status FROM orders WHERE id = $1 FOR UPDATE`, id).
		Scan(&o.ID, &o.CustomerID, &o.PlacedAt, &o.Total, &o.Status)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Order{}, repo.ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, err
	}

	rows, err := t.tx.QueryContext(ctx,
		`SELECT order_id, seq, product_id, quantity, unit_price FROM order_items WHERE order_id = $1 ORDER BY seq`, id)
	if err != nil {
		return models.Order{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var it models.OrderItem
		if err := rows.Scan(&it.OrderID, &it.Seq, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return models.Order{}, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

func (t *pgSaleTx) SetOrderStatus(ctx context.Context, id int, status string) error {
	_, err := t.tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id)
	return err
}

func (t *pgSaleTx) LogMovement(ctx context.Context, productID, orderID, delta int) error {
	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO movements (product_id, order_id, delta, created_at) VALUES ($1, $2, $3, $4)`,
		productID, orderID, delta, time.Now().UTC())
	return err
}
