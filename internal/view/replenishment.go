package view

import (
	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
)

// StockStatus classifies a product's stock position against its minimum.
type StockStatus string

const (
	StatusCritical StockStatus = "CRITICAL"
	StatusLow      StockStatus = "LOW"
	StatusOK       StockStatus = "OK"
)

// Classify is total over all inputs: CRITICAL at zero stock, LOW at or below
// the minimum, OK above it.
func Classify(stock, minimum int) StockStatus {
	switch {
	case stock == 0:
		return StatusCritical
	case stock <= minimum:
		return StatusLow
	default:
		return StatusOK
	}
}

// NeededQuantity is how many units are missing to reach the minimum.
func NeededQuantity(stock, minimum int) int {
	if n := minimum - stock; n > 0 {
		return n
	}
	return 0
}

type ReplenishmentRow struct {
	ProductID int         `json:"product_id"`
	SKU       string      `json:"sku"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	MinStock  int         `json:"min_stock"`
	Needed    int         `json:"needed"`
	Status    StockStatus `json:"status"`
}

// BuildReplenishment classifies every given product. It is a pure function
// of its input; filtering for alerting is a separate concern (Shortages).
func BuildReplenishment(products []models.Product) []ReplenishmentRow {
	rows := make([]ReplenishmentRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ReplenishmentRow{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  p.Quantity,
			MinStock:  p.MinStock,
			Needed:    NeededQuantity(p.Quantity, p.MinStock),
			Status:    Classify(p.Quantity, p.MinStock),
		})
	}
	return rows
}

// Shortages keeps only the rows that need attention.
func Shortages(rows []ReplenishmentRow) []ReplenishmentRow {
	out := make([]ReplenishmentRow, 0, len(rows))
	for _, r := range rows {
		if r.Status != StatusOK {
			out = append(out, r)
		}
	}
	return out
}

// ReplenishmentService computes the view on demand from current ledger
// state. It never writes back.
type ReplenishmentService struct {
	products repo.ProductRepository
}

func NewReplenishmentService(products repo.ProductRepository) *ReplenishmentService {
	return &ReplenishmentService{products: products}
}

// List returns the rows needing replenishment; with includeOK set it returns
// one row per active product.
func (s *ReplenishmentService) List(includeOK bool) ([]ReplenishmentRow, error) {
	products, err := s.products.ListActive()
	if err != nil {
		return nil, err
	}
	rows := BuildReplenishment(products)
	if includeOK {
		return rows, nil
	}
	return Shortages(rows), nil
}
