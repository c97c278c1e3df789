package sale

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
)

// ItemRequest is one (product, quantity) pair of a sale request, in the
// order the caller wants them processed.
type ItemRequest struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// PlacedItem echoes one committed line with the price captured at sale time
// and the stock position after the deduction.
type PlacedItem struct {
	ProductID  int     `json:"product_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	Subtotal   float64 `json:"subtotal"`
	StockAfter int     `json:"stock_after"`
	MinStock   int     `json:"min_stock"`
}

// Receipt is the result of a committed placement.
type Receipt struct {
	OrderID  int          `json:"order_id"`
	Total    float64      `json:"total"`
	PlacedAt time.Time    `json:"placed_at"`
	Items    []PlacedItem `json:"items"`
}

// Engine turns sale requests into durable orders. All stock and order writes
// go through a single SaleStore transaction per call; every error path leaves
// the store untouched.
type Engine struct {
	store SaleStore
	log   *zap.Logger
}

func NewEngine(store SaleStore, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: store, log: log}
}

func validateItems(items []ItemRequest) error {
	if len(items) == 0 {
		return &InvalidLineItemError{Reason: "order must have at least one item"}
	}
	seen := make(map[int]bool, len(items))
	for _, it := range items {
		if it.Quantity <= 0 {
			return &InvalidLineItemError{ProductID: it.ProductID, Reason: "quantity must be greater than zero"}
		}
		if seen[it.ProductID] {
			return &InvalidLineItemError{ProductID: it.ProductID, Reason: "product listed more than once"}
		}
		seen[it.ProductID] = true
	}
	return nil
}

// PlaceOrder validates and commits a multi-item sale as one atomic unit:
// verify the customer, lock and deduct every product in caller order at the
// price current inside the transaction, then write the order header, line
// items and movement log. Placement is not idempotent; resubmitting creates
// a second sale.
func (e *Engine) PlaceOrder(ctx context.Context, customerID int, items []ItemRequest) (Receipt, error) {
	if err := validateItems(items); err != nil {
		return Receipt{}, err
	}

	var receipt Receipt
	err := e.store.RunInTx(ctx, func(tx SaleTx) error {
		ok, err := tx.CustomerExists(ctx, customerID)
		if err != nil {
			return err
		}
		if !ok {
			return &UnknownCustomerError{CustomerID: customerID}
		}

		order := models.Order{
			CustomerID: customerID,
			PlacedAt:   time.Now().UTC(),
			Status:     models.OrderCompleted,
		}
		placed := make([]PlacedItem, 0, len(items))

		for i, req := range items {
			p, err := tx.LockProduct(ctx, req.ProductID)
			if errors.Is(err, repo.ErrProductNotFound) {
				return &UnknownProductError{ProductID: req.ProductID}
			}
			if err != nil {
				return err
			}
			if p.Quantity < req.Quantity {
				return &InsufficientStockError{
					ProductID: p.ID,
					Requested: req.Quantity,
					Available: p.Quantity,
				}
			}
			if err := tx.DeductStock(ctx, p.ID, req.Quantity); err != nil {
				return err
			}

			subtotal := float64(req.Quantity) * p.SalePrice
			order.Total += subtotal
			order.Items = append(order.Items, models.OrderItem{
				Seq:       i + 1,
				ProductID: p.ID,
				Quantity:  req.Quantity,
				UnitPrice: p.SalePrice,
			})
			placed = append(placed, PlacedItem{
				ProductID:  p.ID,
				Quantity:   req.Quantity,
				UnitPrice:  p.SalePrice,
				Subtotal:   subtotal,
				StockAfter: p.Quantity - req.Quantity,
				MinStock:   p.MinStock,
			})
		}

		orderID, err := tx.InsertOrder(ctx, order)
		if err != nil {
			return err
		}
		for _, pi := range placed {
			if err := tx.LogMovement(ctx, pi.ProductID, orderID, -pi.Quantity); err != nil {
				return err
			}
		}

		receipt = Receipt{
			OrderID:  orderID,
			Total:    order.Total,
			PlacedAt: order.PlacedAt,
			Items:    placed,
		}
		return nil
	})
	if err != nil {
		return Receipt{}, err
	}

	e.log.Info("order placed",
		zap.Int("order_id", receipt.OrderID),
		zap.Int("customer_id", customerID),
		zap.Float64("total", receipt.Total),
		zap.Int("items", len(receipt.Items)),
	)
	return receipt, nil
}

// CancelOrder flips a COMPLETED order to CANCELLED. Stock is not restored;
// use CancelOrderRestock for the compensating variant. The transition is
// irreversible.
func (e *Engine) CancelOrder(ctx context.Context, orderID int) error {
	return e.cancel(ctx, orderID, false)
}

// CancelOrderRestock cancels the order and adds every line item's quantity
// back to stock, atomically with the status transition.
func (e *Engine) CancelOrderRestock(ctx context.Context, orderID int) error {
	return e.cancel(ctx, orderID, true)
}

func (e *Engine) cancel(ctx context.Context, orderID int, restock bool) error {
	err := e.store.RunInTx(ctx, func(tx SaleTx) error {
		o, err := tx.OrderForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == models.OrderCancelled {
			return ErrOrderAlreadyCancelled
		}

		if err := tx.SetOrderStatus(ctx, orderID, models.OrderCancelled); err != nil {
			return err
		}
		if restock {
			for _, it := range o.Items {
				if err := tx.RestoreStock(ctx, it.ProductID, it.Quantity); err != nil {
					return err
				}
				if err := tx.LogMovement(ctx, it.ProductID, orderID, it.Quantity); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	e.log.Info("order cancelled", zap.Int("order_id", orderID), zap.Bool("restock", restock))
	return nil
}
