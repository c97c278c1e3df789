package models

// Movement is one entry of the stock audit trail. Delta is negative for a
// sale deduction and positive for a restock. Movements are written inside
// the same transaction as the stock change they record.
type Movement struct {
	ID        int    `json:"id"`
	ProductID int    `json:"product_id"`
	OrderID   int    `json:"order_id"`
	Delta     int    `json:"delta"`
	CreatedAt string `json:"created_at"`
}
