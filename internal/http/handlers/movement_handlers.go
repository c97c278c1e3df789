package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/motopecas/pos-core/internal/repo"
)

// GetMovementsHandler godoc
// @Summary Stock audit trail for a product
// @Description Deductions and restocks written inside the sale transaction
// @Tags movements
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {array} MovementResponse
// @Failure 400 {string} string "Invalid ID"
// @Failure 404 {string} string "Product not found"
// @Failure 500 {string} string "Internal error"
// @Router /products/{id}/movements [get]
func GetMovementsHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		http.Error(w, "invalid product ID", http.StatusBadRequest)
		return
	}

	if _, err := productRepo.GetByID(id); err != nil {
		if errors.Is(err, repo.ErrProductNotFound) {
			http.Error(w, "product not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch product", http.StatusInternalServerError)
		return
	}

	movements, err := movementRepo.GetByProductID(id)
	if err != nil {
		http.Error(w, "could not retrieve movements", http.StatusInternalServerError)
		return
	}

	response := make([]MovementResponse, len(movements))
	for i, m := range movements {
		response[i] = MovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			OrderID:   m.OrderID,
			Delta:     m.Delta,
			CreatedAt: m.CreatedAt,
		}
	}
	_ = writeJSON(w, http.StatusOK, response)
}
