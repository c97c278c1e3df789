package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	api "github.com/motopecas/pos-core/internal/http"
	"github.com/motopecas/pos-core/internal/http/handlers"
	rl "github.com/motopecas/pos-core/internal/http/rate_limiter"
	"github.com/motopecas/pos-core/internal/models"
	"github.com/motopecas/pos-core/internal/repo"
	"github.com/motopecas/pos-core/internal/sale"
	"github.com/motopecas/pos-core/internal/view"
)

const testSecret = "test-secret"

type recordedAlert struct {
	ProductID int
	Quantity  int
	MinStock  int
}

type fakeAlerter struct {
	alerts []recordedAlert
}

func (f *fakeAlerter) LowStock(productID, quantity, minStock int) {
	f.alerts = append(f.alerts, recordedAlert{productID, quantity, minStock})
}

type testEnv struct {
	router    http.Handler
	products  *repo.InMemoryProductRepository
	customers *repo.InMemoryCustomerRepository
	orders    *repo.InMemoryOrderRepository
	movements *repo.InMemoryMovementRepository
	alerter   *fakeAlerter
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	rl.CleanupAllVisitors()

	env := &testEnv{
		products:  repo.NewInMemoryProductRepository(),
		customers: repo.NewInMemoryCustomerRepository(),
		orders:    repo.NewInMemoryOrderRepository(),
		movements: repo.NewInMemoryMovementRepository(),
		alerter:   &fakeAlerter{},
	}

	env.customers.Put(models.Customer{Name: "Ana Souza", Email: "ana@example.com", Active: true})
	env.products.Put(models.Product{SKU: "BRK-001", Name: "Brake pad", SalePrice: 80, Quantity: 10, MinStock: 3, Active: true})
	env.products.Put(models.Product{SKU: "OIL-500", Name: "Engine oil 500ml", SalePrice: 25, Quantity: 5, MinStock: 2, Active: true})

	store := sale.NewMemorySaleStore(env.products, env.customers, env.orders, env.movements)
	handlers.SetEngine(sale.NewEngine(store, nil))
	handlers.SetProductRepo(env.products)
	handlers.SetOrderRepo(env.orders)
	handlers.SetMovementRepo(env.movements)

	metricsRepo := repo.NewInMemoryMetricsRepository()
	metricsRepo.SetRepositories(env.products, env.customers, env.orders)
	handlers.SetMetricsRepo(metricsRepo)

	handlers.SetReplenishmentService(view.NewReplenishmentService(env.products))
	handlers.SetHistoryService(view.NewHistoryService(env.customers, env.orders))
	handlers.SetAlerter(env.alerter)

	api.SetJWTSecret(testSecret)
	env.router = api.NewRouter()
	return env
}

func testToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": float64(1),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("could not sign token: %v", err)
	}
	return signed
}

func (env *testEnv) placeOrder(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func (env *testEnv) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

func (env *testEnv) stockOf(t *testing.T, id int) int {
	t.Helper()
	p, err := env.products.GetByID(id)
	if err != nil {
		t.Fatalf("could not load product %d: %v", id, err)
	}
	return p.Quantity
}

func TestHealthz(t *testing.T) {
	env := setupTest(t)
	rr := env.get(t, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestPlaceOrderEndpoint(t *testing.T) {
	env := setupTest(t)

	rr := env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":2},{"product_id":2,"quantity":1}]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rr.Code, rr.Body.String())
	}

	var receipt sale.Receipt
	if err := json.Unmarshal(rr.Body.Bytes(), &receipt); err != nil {
		t.Fatalf("could not decode receipt: %v", err)
	}
	if receipt.Total != 2*80.0+25.0 {
		t.Errorf("expected total 185, got %v", receipt.Total)
	}
	if len(receipt.Items) != 2 {
		t.Fatalf("expected 2 receipt items, got %d", len(receipt.Items))
	}
	if got := env.stockOf(t, 1); got != 8 {
		t.Errorf("expected stock 8 after sale, got %d", got)
	}
}

func TestPlaceOrderRequiresAuth(t *testing.T) {
	env := setupTest(t)
	body := `{"customer_id":1,"items":[{"product_id":1,"quantity":1}]}`

	req := httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/orders", bytes.NewBufferString(body))
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr = httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: expected 401, got %d", rr.Code)
	}

	if got := env.stockOf(t, 1); got != 10 {
		t.Errorf("stock must be untouched, got %d", got)
	}
}

func TestPlaceOrderErrorStatuses(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"malformed json", `{"customer_id":`, http.StatusBadRequest},
		{"empty items", `{"customer_id":1,"items":[]}`, http.StatusBadRequest},
		{"zero quantity", `{"customer_id":1,"items":[{"product_id":1,"quantity":0}]}`, http.StatusBadRequest},
		{"duplicate product", `{"customer_id":1,"items":[{"product_id":1,"quantity":1},{"product_id":1,"quantity":2}]}`, http.StatusBadRequest},
		{"unknown customer", `{"customer_id":99,"items":[{"product_id":1,"quantity":1}]}`, http.StatusUnprocessableEntity},
		{"unknown product", `{"customer_id":1,"items":[{"product_id":99,"quantity":1}]}`, http.StatusUnprocessableEntity},
		{"insufficient stock", `{"customer_id":1,"items":[{"product_id":2,"quantity":6}]}`, http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTest(t)
			rr := env.placeOrder(t, tt.body)
			if rr.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d: %s", tt.wantStatus, rr.Code, rr.Body.String())
			}
			if got := env.stockOf(t, 1); got != 10 {
				t.Errorf("stock must be untouched after rejection, got %d", got)
			}
		})
	}
}

func TestPlaceOrderInsufficientStockBody(t *testing.T) {
	env := setupTest(t)

	rr := env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":2,"quantity":8}]}`)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	var resp handlers.StockErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("could not decode stock error: %v", err)
	}
	if resp.ProductID != 2 || resp.Requested != 8 || resp.Available != 5 || resp.Shortfall != 3 {
		t.Errorf("unexpected stock error body: %+v", resp)
	}
}

func TestPlaceOrderFiresLowStockAlert(t *testing.T) {
	env := setupTest(t)

	// Product 2 has 5 on hand with minimum 2; selling 3 leaves it at the limit.
	rr := env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":2,"quantity":3}]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}

	if len(env.alerter.alerts) != 1 {
		t.Fatalf("expected one alert, got %d", len(env.alerter.alerts))
	}
	a := env.alerter.alerts[0]
	if a.ProductID != 2 || a.Quantity != 2 || a.MinStock != 2 {
		t.Errorf("unexpected alert: %+v", a)
	}
}

func TestCancelOrderEndpoint(t *testing.T) {
	env := setupTest(t)
	rr := env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}

	cancel := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		req.Header.Set("Authorization", "Bearer "+testToken(t))
		rec := httptest.NewRecorder()
		env.router.ServeHTTP(rec, req)
		return rec
	}

	if rec := cancel("/orders/1/cancel"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := env.stockOf(t, 1); got != 8 {
		t.Errorf("plain cancel must not restock, got %d", got)
	}

	if rec := cancel("/orders/1/cancel"); rec.Code != http.StatusConflict {
		t.Errorf("second cancel: expected 409, got %d", rec.Code)
	}
	if rec := cancel("/orders/99/cancel"); rec.Code != http.StatusNotFound {
		t.Errorf("missing order: expected 404, got %d", rec.Code)
	}
	if rec := cancel("/orders/abc/cancel"); rec.Code != http.StatusBadRequest {
		t.Errorf("bad id: expected 400, got %d", rec.Code)
	}
}

func TestCancelOrderWithRestock(t *testing.T) {
	env := setupTest(t)
	rr := env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":4}]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if got := env.stockOf(t, 1); got != 6 {
		t.Fatalf("expected stock 6 after sale, got %d", got)
	}

	req := httptest.NewRequest(http.MethodPost, "/orders/1/cancel?restock=true", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := env.stockOf(t, 1); got != 10 {
		t.Errorf("expected stock restored to 10, got %d", got)
	}
}

func TestGetOrdersEndpoint(t *testing.T) {
	env := setupTest(t)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":1}]}`)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":2,"quantity":1}]}`)

	req := httptest.NewRequest(http.MethodPost, "/orders/2/cancel", nil)
	req.Header.Set("Authorization", "Bearer "+testToken(t))
	env.router.ServeHTTP(httptest.NewRecorder(), req)

	rr := env.get(t, "/orders?status="+models.OrderCompleted)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var orders []handlers.OrderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &orders); err != nil {
		t.Fatalf("could not decode orders: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 1 {
		t.Errorf("expected only order 1 completed, got %+v", orders)
	}

	if rr := env.get(t, "/orders?status=SHIPPED"); rr.Code != http.StatusBadRequest {
		t.Errorf("invalid status filter: expected 400, got %d", rr.Code)
	}
	if rr := env.get(t, "/orders?customer_id=abc"); rr.Code != http.StatusBadRequest {
		t.Errorf("invalid customer filter: expected 400, got %d", rr.Code)
	}
}

func TestGetOrderByIDEndpoint(t *testing.T) {
	env := setupTest(t)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":2}]}`)

	rr := env.get(t, "/orders/1")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var order handlers.OrderResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &order); err != nil {
		t.Fatalf("could not decode order: %v", err)
	}
	if len(order.Items) != 1 || order.Items[0].Subtotal != 160 {
		t.Errorf("unexpected order body: %+v", order)
	}

	if rr := env.get(t, "/orders/99"); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rr.Code)
	}
}

func TestReplenishmentEndpoint(t *testing.T) {
	env := setupTest(t)
	env.products.Put(models.Product{SKU: "FLT-2", Name: "Oil filter", SalePrice: 15, Quantity: 0, MinStock: 4, Active: true})

	rr := env.get(t, "/replenishment")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var rows []view.ReplenishmentRow
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("could not decode rows: %v", err)
	}
	if len(rows) != 1 || rows[0].Status != view.StatusCritical || rows[0].Needed != 4 {
		t.Errorf("expected single critical row needing 4, got %+v", rows)
	}

	rr = env.get(t, "/replenishment?all=true")
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("could not decode rows: %v", err)
	}
	if len(rows) != 3 {
		t.Errorf("expected all 3 products with all=true, got %d", len(rows))
	}
}

func TestCustomerHistoryEndpoint(t *testing.T) {
	env := setupTest(t)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":1}]}`)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":2,"quantity":2}]}`)

	rr := env.get(t, "/customers/history")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var rows []view.CustomerHistoryRow
	if err := json.Unmarshal(rr.Body.Bytes(), &rows); err != nil {
		t.Fatalf("could not decode rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected one customer row, got %d", len(rows))
	}
	if rows[0].OrderCount != 2 || rows[0].TotalSpend != 130 || rows[0].AverageTicket != 65 {
		t.Errorf("unexpected history row: %+v", rows[0])
	}
}

func TestMovementsEndpoint(t *testing.T) {
	env := setupTest(t)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":3}]}`)

	rr := env.get(t, "/products/1/movements")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var movements []handlers.MovementResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &movements); err != nil {
		t.Fatalf("could not decode movements: %v", err)
	}
	if len(movements) != 1 || movements[0].Delta != -3 || movements[0].OrderID != 1 {
		t.Errorf("unexpected movements: %+v", movements)
	}

	if rr := env.get(t, "/products/99/movements"); rr.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", rr.Code)
	}
}

func TestDashboardMetricsEndpoint(t *testing.T) {
	env := setupTest(t)
	env.placeOrder(t, `{"customer_id":1,"items":[{"product_id":1,"quantity":1}]}`)

	rr := env.get(t, "/metrics/dashboard")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var m repo.Metrics
	if err := json.Unmarshal(rr.Body.Bytes(), &m); err != nil {
		t.Fatalf("could not decode metrics: %v", err)
	}
	if m.TotalProducts != 2 || m.CompletedOrders != 1 || m.TotalRevenue != 80 {
		t.Errorf("unexpected metrics: %+v", m)
	}
	if m.TopCustomer.Name != "Ana Souza" {
		t.Errorf("expected top customer Ana Souza, got %q", m.TopCustomer.Name)
	}
}

func TestPlacementRateLimit(t *testing.T) {
	env := setupTest(t)

	var limited bool
	for i := 0; i < 15; i++ {
		body := fmt.Sprintf(`{"customer_id":1,"items":[{"product_id":%d,"quantity":99}]}`, i+100)
		rr := env.placeOrder(t, body)
		if rr.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected burst of placements to hit the rate limit")
	}
}
