package handlers

import (
	"go.uber.org/zap"

	"github.com/motopecas/pos-core/internal/repo"
	"github.com/motopecas/pos-core/internal/sale"
	"github.com/motopecas/pos-core/internal/view"
)

// LowStockAlerter receives products a committed sale pushed to or below
// their minimum. Implementations must be safe for concurrent use.
type LowStockAlerter interface {
	LowStock(productID int, quantity, minStock int)
}

var (
	engine *sale.Engine

	productRepo  repo.ProductRepository
	orderRepo    repo.OrderRepository
	movementRepo repo.MovementRepository
	metricsRepo  repo.MetricsRepository

	replenishmentSvc *view.ReplenishmentService
	historySvc       *view.HistoryService

	alerter LowStockAlerter
	logger  = zap.NewNop()
)

func SetEngine(e *sale.Engine) {
	engine = e
}

func SetProductRepo(r repo.ProductRepository) {
	productRepo = r
}

func SetOrderRepo(r repo.OrderRepository) {
	orderRepo = r
}

func SetMovementRepo(r repo.MovementRepository) {
	movementRepo = r
}

func SetMetricsRepo(r repo.MetricsRepository) {
	metricsRepo = r
}

func SetReplenishmentService(s *view.ReplenishmentService) {
	replenishmentSvc = s
}

func SetHistoryService(s *view.HistoryService) {
	historySvc = s
}

func SetAlerter(a LowStockAlerter) {
	alerter = a
}

func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}
