package http

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/motopecas/pos-core/internal/http/handlers"
	rl "github.com/motopecas/pos-core/internal/http/rate_limiter"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)
		r.With(RateLimitMiddleware).Post("/orders", handlers.PlaceOrderHandler)
		r.Post("/orders/{id}/cancel", handlers.CancelOrderHandler)
	})

	r.Get("/orders", handlers.GetOrdersHandler)
	r.Get("/orders/{id}", handlers.GetOrderByIDHandler)
	r.Get("/replenishment", handlers.GetReplenishmentHandler)
	r.Get("/customers/history", handlers.GetCustomerHistoryHandler)
	r.Get("/products/{id}/movements", handlers.GetMovementsHandler)
	r.Get("/metrics/dashboard", handlers.GetDashboardMetricsHandler)

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	return r
}

// RateLimitMiddleware throttles placement attempts per caller address.
func RateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !rl.GetVisitor(ip).Allow() {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
