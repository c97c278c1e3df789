package handlers

import (
	"github.com/motopecas/pos-core/internal/sale"
)

type PlaceOrderRequest struct {
	CustomerID int                `json:"customer_id"`
	Items      []sale.ItemRequest `json:"items"`
}

type OrderItemResponse struct {
	Seq       int     `json:"seq"`
	ProductID int     `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

type OrderResponse struct {
	ID         int                 `json:"id"`
	CustomerID int                 `json:"customer_id"`
	PlacedAt   string              `json:"placed_at"`
	Total      float64             `json:"total"`
	Status     string              `json:"status"`
	Items      []OrderItemResponse `json:"items,omitempty"`
}

type StockErrorResponse struct {
	Error     string `json:"error"`
	ProductID int    `json:"product_id"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
	Shortfall int    `json:"shortfall"`
}

type MovementResponse struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	OrderID   int    `json:"order_id"`
	Delta     int    `json:"delta"`
	CreatedAt string `json:"created_at"`
}

type CancelResult struct {
	Message string `json:"message"`
}
