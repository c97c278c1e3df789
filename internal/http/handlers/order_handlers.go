package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
	"github.com/motopecas/pos-core/internal/sale"
)

// PlaceOrderHandler godoc
// @Summary Place a multi-item sale
// @Description Commits customer, line items and stock deduction as one atomic unit
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param order body PlaceOrderRequest true "Sale to place"
// @Success 201 {object} sale.Receipt
// @Failure 400 {string} string "Invalid line items"
// @Failure 409 {object} StockErrorResponse
// @Failure 422 {string} string "Unknown customer or product"
// @Failure 503 {string} string "Concurrent conflict, retry"
// @Router /orders [post]
func PlaceOrderHandler(w http.ResponseWriter, r *http.Request) {
	var req PlaceOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	receipt, err := engine.PlaceOrder(r.Context(), req.CustomerID, req.Items)
	if err != nil {
		writeSaleError(w, err)
		return
	}

	for _, item := range receipt.Items {
		if item.StockAfter <= item.MinStock {
			logger.Warn("product at or below minimum stock after sale",
				zap.Int("product_id", item.ProductID),
				zap.Int("quantity", item.StockAfter),
				zap.Int("min_stock", item.MinStock))
			if alerter != nil {
				alerter.LowStock(item.ProductID, item.StockAfter, item.MinStock)
			}
		}
	}

	_ = writeJSON(w, http.StatusCreated, receipt)
}

// CancelOrderHandler godoc
// @Summary Cancel a completed order
// @Description Transitions COMPLETED to CANCELLED; with restock=true also restores deducted stock atomically
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "Order ID"
// @Param restock query bool false "Restore deducted stock"
// @Success 200 {object} CancelResult
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 409 {string} string "Already cancelled"
// @Router /orders/{id}/cancel [post]
func CancelOrderHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	restock := r.URL.Query().Get("restock") == "true"
	if restock {
		err = engine.CancelOrderRestock(r.Context(), id)
	} else {
		err = engine.CancelOrder(r.Context(), id)
	}
	if err != nil {
		writeSaleError(w, err)
		return
	}

	_ = writeJSON(w, http.StatusOK, CancelResult{Message: "order cancelled"})
}

// GetOrdersHandler godoc
// @Summary List orders
// @Tags orders
// @Produce json
// @Param status query string false "Filter by status (COMPLETED or CANCELLED)"
// @Param customer_id query int false "Filter by customer"
// @Success 200 {array} OrderResponse
// @Failure 400 {string} string "Invalid filter"
// @Failure 500 {string} string "Internal error"
// @Router /orders [get]
func GetOrdersHandler(w http.ResponseWriter, r *http.Request) {
	var filter repo.OrderFilter

	if s := r.URL.Query().Get("status"); s != "" {
		if s != models.OrderCompleted && s != models.OrderCancelled {
			http.Error(w, "status must be COMPLETED or CANCELLED", http.StatusBadRequest)
			return
		}
		filter.Status = &s
	}
	if c := r.URL.Query().Get("customer_id"); c != "" {
		id, err := strconv.Atoi(c)
		if err != nil {
			http.Error(w, "invalid customer_id", http.StatusBadRequest)
			return
		}
		filter.CustomerID = &id
	}

	orders, err := orderRepo.List(filter)
	if err != nil {
		http.Error(w, "could not fetch orders", http.StatusInternalServerError)
		return
	}

	response := make([]OrderResponse, len(orders))
	for i, o := range orders {
		response[i] = toOrderResponse(o)
	}
	_ = writeJSON(w, http.StatusOK, response)
}

// GetOrderByIDHandler godoc
// @Summary Get an order with its line items
// @Tags orders
// @Produce json
// @Param id path int true "Order ID"
// @Success 200 {object} OrderResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Not found"
// @Failure 500 {string} string "Internal error"
// @Router /orders/{id} [get]
func GetOrderByIDHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := orderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repo.ErrOrderNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch order", http.StatusInternalServerError)
		return
	}
	_ = writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(o models.Order) OrderResponse {
	resp := OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		PlacedAt:   o.PlacedAt.Format(time.RFC3339),
		Total:      o.Total,
		Status:     o.Status,
	}
	for _, it := range o.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			Seq:       it.Seq,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return resp
}

// writeSaleError maps the engine's error taxonomy onto HTTP statuses. Every
// branch corresponds to a fully rolled-back placement.
func writeSaleError(w http.ResponseWriter, err error) {
	var invalidItem *sale.InvalidLineItemError
	var unknownCustomer *sale.UnknownCustomerError
	var unknownProduct *sale.UnknownProductError
	var noStock *sale.InsufficientStockError

	switch {
	case errors.As(err, &invalidItem):
		http.Error(w, invalidItem.Error(), http.StatusBadRequest)
	case errors.As(err, &unknownCustomer):
		http.Error(w, unknownCustomer.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &unknownProduct):
		http.Error(w, unknownProduct.Error(), http.StatusUnprocessableEntity)
	case errors.As(err, &noStock):
		_ = writeJSON(w, http.StatusConflict, StockErrorResponse{
			Error:     "insufficient stock",
			ProductID: noStock.ProductID,
			Requested: noStock.Requested,
			Available: noStock.Available,
			Shortfall: noStock.Shortfall(),
		})
	case errors.Is(err, sale.ErrConcurrencyConflict):
		w.Header().Set("Retry-After", "0")
		http.Error(w, "conflicting concurrent sale, retry", http.StatusServiceUnavailable)
	case errors.Is(err, repo.ErrOrderNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, sale.ErrOrderAlreadyCancelled):
		http.Error(w, "order already cancelled", http.StatusConflict)
	default:
		logger.Error("sale operation failed", zap.Error(err))
		http.Error(w, "could not complete operation", http.StatusInternalServerError)
	}
}
