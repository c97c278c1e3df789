package repo

import "github.com/motopecas/pos-core/internal/models"

type InMemoryMetricsRepository struct {
	productRepo  ProductRepository
	customerRepo CustomerRepository
	orderRepo    OrderRepository
}

func NewInMemoryMetricsRepository() *InMemoryMetricsRepository {
	return &InMemoryMetricsRepository{}
}

func (i *InMemoryMetricsRepository) SetRepositories(
	productRepo ProductRepository,
	customerRepo CustomerRepository,
	orderRepo OrderRepository,
) {
	i.productRepo = productRepo
	i.customerRepo = customerRepo
	i.orderRepo = orderRepo
}

// GetDashboardMetrics implements MetricsRepository.
func (i *InMemoryMetricsRepository) GetDashboardMetrics() (Metrics, error) {
	m := Metrics{}

	products, err := i.productRepo.ListActive()
	if err != nil {
		return m, err
	}
	m.TotalProducts = len(products)
	for _, p := range products {
		if p.Quantity <= p.MinStock {
			m.LowStockCount++
		}
	}

	status := models.OrderCompleted
	orders, err := i.orderRepo.List(OrderFilter{Status: &status})
	if err != nil {
		return m, err
	}
	m.CompletedOrders = len(orders)

	spendByCustomer := make(map[int]float64)
	for _, o := range orders {
		m.TotalRevenue += o.Total
		spendByCustomer[o.CustomerID] += o.Total
	}

	topID := 0
	for id, spend := range spendByCustomer {
		if spend > m.TopCustomer.TotalSpend || (spend == m.TopCustomer.TotalSpend && topID != 0 && id < topID) {
			m.TopCustomer.TotalSpend = spend
			topID = id
		}
	}
	if topID != 0 {
		if c, err := i.customerRepo.GetByID(topID); err == nil {
			m.TopCustomer.Name = c.Name
		}
	}

	return m, nil
}
