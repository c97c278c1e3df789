package handlers

import (
	"net/http"
)

// GetReplenishmentHandler godoc
// @Summary Products needing replenishment
// @Description CRITICAL at zero stock, LOW at or below minimum; all=true includes OK products
// @Tags views
// @Produce json
// @Param all query bool false "Include products with healthy stock"
// @Success 200 {array} view.ReplenishmentRow
// @Failure 500 {string} string "Internal error"
// @Router /replenishment [get]
func GetReplenishmentHandler(w http.ResponseWriter, r *http.Request) {
	includeOK := r.URL.Query().Get("all") == "true"
	rows, err := replenishmentSvc.List(includeOK)
	if err != nil {
		http.Error(w, "could not compute replenishment view", http.StatusInternalServerError)
		return
	}
	_ = writeJSON(w, http.StatusOK, rows)
}

// GetCustomerHistoryHandler godoc
// @Summary Purchase history aggregated per customer
// @Description Completed orders only; sorted by total spend descending
// @Tags views
// @Produce json
// @Success 200 {array} view.CustomerHistoryRow
// @Failure 500 {string} string "Internal error"
// @Router /customers/history [get]
func GetCustomerHistoryHandler(w http.ResponseWriter, r *http.Request) {
	rows, err := historySvc.List()
	if err != nil {
		http.Error(w, "could not compute customer history", http.StatusInternalServerError)
		return
	}
	_ = writeJSON(w, http.StatusOK, rows)
}
