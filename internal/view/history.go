package view

import (
	"sort"
	"time"

	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
)

type CustomerHistoryRow struct {
	CustomerID    int       `json:"customer_id"`
	Name          string    `json:"name"`
	OrderCount    int       `json:"order_count"`
	TotalSpend    float64   `json:"total_spend"`
	AverageTicket float64   `json:"average_ticket"`
	LastPurchase  time.Time `json:"last_purchase"`
}

// BuildCustomerHistory aggregates COMPLETED orders per customer. Cancelled
// orders contribute nothing; customers without a completed order are
// omitted, so the average ticket is always well defined. Rows are sorted by
// total spend descending, ties broken by customer id ascending.
func BuildCustomerHistory(customers []models.Customer, orders []models.Order) []CustomerHistoryRow {
	names := make(map[int]string, len(customers))
	for _, c := range customers {
		names[c.ID] = c.Name
	}

	byCustomer := make(map[int]*CustomerHistoryRow)
	for _, o := range orders {
		if o.Status != models.OrderCompleted {
			continue
		}
		row, ok := byCustomer[o.CustomerID]
		if !ok {
			row = &CustomerHistoryRow{CustomerID: o.CustomerID, Name: names[o.CustomerID]}
			byCustomer[o.CustomerID] = row
		}
		row.OrderCount++
		row.TotalSpend += o.Total
		if o.PlacedAt.After(row.LastPurchase) {
			row.LastPurchase = o.PlacedAt
		}
	}

	rows := make([]CustomerHistoryRow, 0, len(byCustomer))
	for _, row := range byCustomer {
		row.AverageTicket = row.TotalSpend / float64(row.OrderCount)
		rows = append(rows, *row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].TotalSpend != rows[j].TotalSpend {
			return rows[i].TotalSpend > rows[j].TotalSpend
		}
		return rows[i].CustomerID < rows[j].CustomerID
	})
	return rows
}

// HistoryService computes the customer history view on demand.
type HistoryService struct {
	customers repo.CustomerRepository
	orders    repo.OrderRepository
}

func NewHistoryService(customers repo.CustomerRepository, orders repo.OrderRepository) *HistoryService {
	return &HistoryService{customers: customers, orders: orders}
}

func (s *HistoryService) List() ([]CustomerHistoryRow, error) {
	customers, err := s.customers.ListActive()
	if err != nil {
		return nil, err
	}
	status := models.OrderCompleted
	orders, err := s.orders.List(repo.OrderFilter{Status: &status})
	if err != nil {
		return nil, err
	}
	return BuildCustomerHistory(customers, orders), nil
}
