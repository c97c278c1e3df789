package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/motopecas/pos-core/internal/models"
)

type PostgresMetricsRepository struct {
	db *sql.DB
}

func NewPostgresMetricsRepository(db *sql.DB) *PostgresMetricsRepository {
	return &PostgresMetricsRepository{db: db}
}

func (r *PostgresMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	var m Metrics

	_ = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products WHERE active`).Scan(&m.TotalProducts)
	_ = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders WHERE status = $1`,
		models.OrderCompleted).Scan(&m.CompletedOrders, &m.TotalRevenue)
	_ = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE active AND quantity <= min_stock`).Scan(&m.LowStockCount)

	_ = r.db.QueryRowContext(ctx, `
		SELECT c.name, SUM(o.total) AS spend
		FROM orders o
		JOIN customers c ON o.customer_id = c.id
		WHERE o.status = $1
		GROUP BY c.name
		ORDER BY spend DESC
		LIMIT 1
	`, models.OrderCompleted).Scan(&m.TopCustomer.Name, &m.TopCustomer.TotalSpend)

	return m, nil
}
