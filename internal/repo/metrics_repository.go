package repo

type TopCustomer struct {
	Name       string  `json:"name"`
	TotalSpend float64 `json:"total_spend"`
}

type Metrics struct {
	TotalProducts   int         `json:"total_products"`
	CompletedOrders int         `json:"completed_orders"`
	TotalRevenue    float64     `json:"total_revenue"`
	LowStockCount   int         `json:"low_stock_count"`
	TopCustomer     TopCustomer `json:"top_customer"`
}

type MetricsRepository interface {
	GetDashboardMetrics() (Metrics, error)
}
