package models

import "time"

// Order statuses. An order is immutable once COMPLETED except for the
// one-way transition to CANCELLED.
const (
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

type Order struct {
	ID         int         `json:"id"`
	CustomerID int         `json:"customer_id"`
	PlacedAt   time.Time   `json:"placed_at"`
	Total      float64     `json:"total"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. UnitPrice is captured at sale time and
// stays fixed regardless of later catalog price changes.
type OrderItem struct {
	OrderID   int     `json:"order_id"`
	Seq       int     `json:"seq"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// Subtotal is the line value at the captured price.
func (i OrderItem) Subtotal() float64 {
	return float64(i.Quantity) * i.UnitPrice
}
