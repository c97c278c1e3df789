package models

// Product represents a catalog product with its current stock position.
// Quantity is only ever mutated through the sale store's deduct/restore
// operations; catalog CRUD lives outside this service.
type Product struct {
	ID        int     `json:"id"`
	SKU       string  `json:"sku"`
	Name      string  `json:"name"`
	CostPrice float64 `json:"cost_price"`
	SalePrice float64 `json:"sale_price"`
	Quantity  int     `json:"quantity"`
	MinStock  int     `json:"min_stock"`
	Active    bool    `json:"active"`
	CreatedAt string  `json:"created_at,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
}
