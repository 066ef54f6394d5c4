package handlers_test

import (
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	html "github.com/gofiber/template/html/v2"
	"github.com/shopspring/decimal"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	"bookbound/internal/http/handlers"
	"bookbound/internal/repos"
)

type orderBackend struct {
	status       domain.OrderStatus
	shortages    []domain.ShortageItem
	decisionBody map[string]string
}

func (b *orderBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/customer/orders/77", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.OrderDetail{
			Order: domain.SalesOrder{
				OrderID:                 77,
				CustomerID:              7,
				OrderStatus:             b.status,
				GoodsAmount:             decimal.NewFromInt(60),
				PayableAmount:           decimal.NewFromInt(60),
				ShippingAddressSnapshot: "Reader, 1 Main St",
			},
			Items: []domain.SalesOrderItem{
				{OrderItemID: 1, OrderID: 77, BookID: "B-1001", Quantity: 2, UnitPrice: decimal.NewFromInt(30), SubAmount: decimal.NewFromInt(60)},
			},
		})
	})
	mux.HandleFunc("/customer/orders/77/shortages", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(b.shortages)
	})
	mux.HandleFunc("/customer/orders/77/shortages/decision", func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&b.decisionBody)
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func orderApp(t *testing.T, b *orderBackend) (*fiber.App, func()) {
	t.Helper()
	ts := httptest.NewServer(b.handler())
	h := &handlers.OrderHandler{API: api.New(ts.URL, 0)}

	engine := html.New("../../../web/templates", ".html")
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session", &repos.Session{
			ID:          "sid-test",
			Role:        "CUSTOMER",
			CustomerID:  sql.NullInt64{Int64: 7, Valid: true},
			DisplayName: sql.NullString{String: "Reader", Valid: true},
		})
		c.Locals("customerID", int64(7))
		return c.Next()
	})
	app.Get("/orders/:id", h.Detail)
	app.Post("/orders/:id/shortage-decision", h.ShortageDecision)

	return app, ts.Close
}

func TestDetailOffersDecisionRetryWhilePending(t *testing.T) {
	b := &orderBackend{
		status:    domain.StatusOutOfStockPending,
		shortages: []domain.ShortageItem{{BookID: "B-1001", Quantity: 2, CurrentStock: 1}},
	}
	app, done := orderApp(t, b)
	defer done()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/77", nil))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "/orders/77/shortage-decision") {
		t.Fatalf("no decision retry form on the page:\n%s", body)
	}
}

func TestDetailHidesDecisionFormOnceSettled(t *testing.T) {
	b := &orderBackend{status: domain.StatusPendingShipment}
	app, done := orderApp(t, b)
	defer done()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/orders/77", nil))
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "shortage-decision") {
		t.Fatal("decision form shown on a settled order")
	}
}

func TestShortageDecisionRetryForwardsChoice(t *testing.T) {
	b := &orderBackend{status: domain.StatusOutOfStockPending}
	app, done := orderApp(t, b)
	defer done()

	form := url.Values{"decision": {"REQUEST_ONLY"}, "note": {"notify me"}}
	req := httptest.NewRequest(http.MethodPost, "/orders/77/shortage-decision", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/orders/77" {
		t.Fatalf("status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if b.decisionBody["decision"] != "REQUEST_ONLY" || b.decisionBody["customerNote"] != "notify me" {
		t.Fatalf("forwarded body = %v", b.decisionBody)
	}
}

func TestShortageDecisionRetryRejectsCancel(t *testing.T) {
	b := &orderBackend{status: domain.StatusOutOfStockPending}
	app, done := orderApp(t, b)
	defer done()

	form := url.Values{"decision": {"CANCEL"}}
	req := httptest.NewRequest(http.MethodPost, "/orders/77/shortage-decision", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if len(b.decisionBody) != 0 {
		t.Fatalf("cancel reached the backend: %v", b.decisionBody)
	}
}
