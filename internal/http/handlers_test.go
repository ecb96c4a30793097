package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"skladpro/internal/domain"
	"skladpro/internal/logging"
	"skladpro/internal/repository"
	"skladpro/internal/service"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repository.NewMemoryStore()
	requestsRepo := repository.NewMemoryRequests(store)
	ordersRepo := repository.NewMemoryOrders(store)
	cartRepo := repository.NewMemoryCart(store)
	zonesRepo := repository.NewMemoryZones(store)
	tx := repository.NewMemoryTx(store)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := service.Seed(ctx, store, zonesRepo); err != nil {
		t.Fatalf("seed: %v", err)
	}
	productsSvc := service.NewProductService(store, tx)
	ordersSvc := service.NewOrderService(cartRepo, ordersRepo, tx)
	return NewServer(Services{
		Sessions:  service.NewSessionService(cartRepo, "test-secret"),
		Products:  productsSvc,
		Requests:  service.NewRequestService(requestsRepo, tx),
		Cart:      service.NewCartService(cartRepo, store, tx),
		Orders:    ordersSvc,
		Directory: service.NewDirectoryService(repository.NewMemoryContractors(store), zonesRepo),
		Dashboard: service.NewDashboardService(productsSvc, requestsRepo, ordersSvc, zonesRepo),
		Reports:   service.NewReportService(requestsRepo, store, zonesRepo),
	}, nil)
}

func doJSON(t *testing.T, s *Server, token, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func login(t *testing.T, s *Server) string {
	t.Helper()
	w := doJSON(t, s, "", http.MethodPost, "/api/v1/auth/login", map[string]any{"email": "op@sklad.ru", "password": "x"})
	if w.Code != http.StatusOK {
		t.Fatalf("login code %v", w.Code)
	}
	var resp sessionResp
	decode(t, w, &resp)
	return resp.Token
}

func register(t *testing.T, s *Server, role domain.Role) string {
	t.Helper()
	w := doJSON(t, s, "", http.MethodPost, "/api/v1/auth/register", map[string]any{
		"email": string(role) + "@sklad.ru", "full_name": "Иван Петров", "password": "x", "role": role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register code %v: %s", w.Code, w.Body.String())
	}
	var resp sessionResp
	decode(t, w, &resp)
	return resp.Token
}

func TestLoginAndRequests(t *testing.T) {
	s := setupServer(t)
	token := login(t, s)

	w := doJSON(t, s, token, http.MethodGet, "/api/v1/auth/me", nil)
	var me domain.User
	decode(t, w, &me)
	if w.Code != http.StatusOK || me.Role != domain.RoleOperator {
		t.Fatalf("me: %v %+v", w.Code, me)
	}

	w = doJSON(t, s, token, http.MethodPost, "/api/v1/requests", map[string]any{
		"request_type": "receiving", "notes": "Партия ноутбуков",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create request code %v", w.Code)
	}
	w = doJSON(t, s, token, http.MethodPut, "/api/v1/requests/1/status", map[string]any{"status": "completed"})
	var r domain.Request
	decode(t, w, &r)
	if w.Code != http.StatusOK || r.Status != domain.RequestStatusCompleted {
		t.Fatalf("update status: %v %+v", w.Code, r)
	}
	w = doJSON(t, s, token, http.MethodPut, "/api/v1/requests/1/status", map[string]any{"status": "lost"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("invalid status code %v", w.Code)
	}
	w = doJSON(t, s, token, http.MethodGet, "/api/v1/requests?type=receiving", nil)
	var list []domain.Request
	decode(t, w, &list)
	if w.Code != http.StatusOK || len(list) != 1 {
		t.Fatalf("list: %v %+v", w.Code, list)
	}
	w = doJSON(t, s, token, http.MethodGet, "/api/v1/requests/42", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing request code %v", w.Code)
	}
	w = doJSON(t, s, token, http.MethodGet, "/api/v1/requests/abc", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id code %v", w.Code)
	}

	w = doJSON(t, s, token, http.MethodGet, "/api/v1/dashboard", nil)
	var d service.Dashboard
	decode(t, w, &d)
	if w.Code != http.StatusOK || d.TotalProducts != 3 || d.ActiveRequests != 0 || d.Zones != 3 {
		t.Fatalf("dashboard: %v %+v", w.Code, d)
	}
}

func TestCartToOrder(t *testing.T) {
	s := setupServer(t)
	token := register(t, s, domain.RoleClient)

	w := doJSON(t, s, token, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": 1, "quantity": 1})
	if w.Code != http.StatusOK {
		t.Fatalf("add laptop code %v", w.Code)
	}
	w = doJSON(t, s, token, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": 3, "quantity": 2})
	var cart service.CartView
	decode(t, w, &cart)
	if w.Code != http.StatusOK || !cart.Total.Equal(decimal.NewFromInt(87400)) {
		t.Fatalf("cart: %v %+v", w.Code, cart)
	}

	w = doJSON(t, s, token, http.MethodPost, "/api/v1/orders", nil)
	var o domain.Order
	decode(t, w, &o)
	if w.Code != http.StatusCreated || !o.TotalAmount.Equal(decimal.NewFromInt(87400)) || o.Status != domain.OrderStatusNew {
		t.Fatalf("create order: %v %+v", w.Code, o)
	}

	w = doJSON(t, s, token, http.MethodGet, "/api/v1/cart", nil)
	decode(t, w, &cart)
	if len(cart.Items) != 0 {
		t.Fatalf("cart not cleared: %+v", cart)
	}

	w = doJSON(t, s, token, http.MethodPost, "/api/v1/orders", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty cart code %v", w.Code)
	}
	w = doJSON(t, s, token, http.MethodGet, "/api/v1/orders", nil)
	var orders []domain.Order
	decode(t, w, &orders)
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %+v", orders)
	}
}

func TestSupplierSubmitOperatorApprove(t *testing.T) {
	s := setupServer(t)
	supplier := register(t, s, domain.RoleSupplier)

	w := doJSON(t, s, supplier, http.MethodPost, "/api/v1/products", map[string]any{
		"sku": "SKU100", "name": "Чайник Bosch", "unit": "шт", "price": 3500,
	})
	var p domain.Product
	decode(t, w, &p)
	if w.Code != http.StatusCreated || p.Status != domain.ProductStatusPending {
		t.Fatalf("submit: %v %+v", w.Code, p)
	}
	w = doJSON(t, s, supplier, http.MethodGet, "/api/v1/products", nil)
	var list []domain.Product
	decode(t, w, &list)
	if len(list) != 1 || list[0].ID != p.ID {
		t.Fatalf("supplier catalog: %+v", list)
	}

	operator := login(t, s)
	w = doJSON(t, s, operator, http.MethodPost, "/api/v1/products/4/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve code %v", w.Code)
	}
	w = doJSON(t, s, operator, http.MethodPost, "/api/v1/products/4/reject", nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("reject approved code %v", w.Code)
	}

	client := register(t, s, domain.RoleClient)
	w = doJSON(t, s, client, http.MethodGet, "/api/v1/products?q="+url.QueryEscape("чайник"), nil)
	decode(t, w, &list)
	if len(list) != 1 || list[0].Status != domain.ProductStatusApproved {
		t.Fatalf("client catalog: %+v", list)
	}
}

func TestAccessControl(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, "", http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("no token code %v", w.Code)
	}

	stale := login(t, s)
	client := register(t, s, domain.RoleClient)
	w = doJSON(t, s, stale, http.MethodGet, "/api/v1/products", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("replaced session code %v", w.Code)
	}

	for _, path := range []string{"/api/v1/requests", "/api/v1/zones", "/api/v1/reports/stock"} {
		w = doJSON(t, s, client, http.MethodGet, path, nil)
		if w.Code != http.StatusForbidden {
			t.Fatalf("%s code %v", path, w.Code)
		}
	}
	w = doJSON(t, s, client, http.MethodPost, "/api/v1/products", map[string]any{"sku": "X", "name": "X"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("client submit code %v", w.Code)
	}

	w = doJSON(t, s, client, http.MethodPost, "/api/v1/auth/logout", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("logout code %v", w.Code)
	}
	w = doJSON(t, s, client, http.MethodGet, "/api/v1/cart", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("after logout code %v", w.Code)
	}
}

func TestReportCSV(t *testing.T) {
	s := setupServer(t)
	token := login(t, s)

	w := doJSON(t, s, token, http.MethodGet, "/api/v1/reports/stock?format=csv", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("csv code %v", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv; charset=windows-1251" {
		t.Fatalf("unexpected content type %q", ct)
	}
	body, err := charmap.Windows1251.NewDecoder().Bytes(w.Body.Bytes())
	if err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !strings.Contains(string(body), "Отчет по остаткам") || !strings.Contains(string(body), "Кофе Lavazza;Продукты питания") {
		t.Fatalf("unexpected csv:\n%s", body)
	}

	w = doJSON(t, s, token, http.MethodGet, "/api/v1/reports/stock?format=xml", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad format code %v", w.Code)
	}
	w = doJSON(t, s, token, http.MethodGet, "/api/v1/reports/finance", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad kind code %v", w.Code)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	s := setupServer(t)

	w := doJSON(t, s, "", http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK || w.Header().Get(logging.RequestIDHeader) == "" {
		t.Fatalf("health: %v %v", w.Code, w.Header())
	}
	w = doJSON(t, s, "", http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics code %v", w.Code)
	}
}
