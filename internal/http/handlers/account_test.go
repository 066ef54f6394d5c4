package handlers_test

import (
	"database/sql"
	"encoding/json"
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

type accountBackend struct {
	summary       domain.CustomerSummary
	profileMethod string
	profileBody   map[string]string
}

func (b *accountBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/customer/7/summary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(b.summary)
	})
	mux.HandleFunc("/customer/7/addresses", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.CustomerAddress{})
	})
	mux.HandleFunc("/customer/7/profile", func(w http.ResponseWriter, r *http.Request) {
		b.profileMethod = r.Method
		json.NewDecoder(r.Body).Decode(&b.profileBody)
		b.summary.RealName = b.profileBody["realName"]
		b.summary.MobilePhone = b.profileBody["mobilePhone"]
		b.summary.Email = b.profileBody["email"]
		json.NewEncoder(w).Encode(b.summary)
	})
	return mux
}

func accountApp(t *testing.T, b *accountBackend) (*fiber.App, func()) {
	t.Helper()
	ts := httptest.NewServer(b.handler())
	h := &handlers.AccountHandler{API: api.New(ts.URL, 0)}

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
	app.Get("/account", h.Summary)
	app.Post("/account/profile", h.UpdateProfile)

	return app, ts.Close
}

func TestUpdateProfileForwardsContactFields(t *testing.T) {
	b := &accountBackend{summary: domain.CustomerSummary{
		CustomerID:     7,
		Username:       "reader7",
		AccountBalance: decimal.NewFromInt(50),
	}}
	app, done := accountApp(t, b)
	defer done()

	form := url.Values{
		"realName":    {"Ada Reader"},
		"mobilePhone": {"555-0101"},
		"email":       {"ada@example.com"},
	}
	req := httptest.NewRequest(http.MethodPost, "/account/profile", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound || resp.Header.Get("Location") != "/account" {
		t.Fatalf("status=%d location=%q", resp.StatusCode, resp.Header.Get("Location"))
	}
	if b.profileMethod != http.MethodPut {
		t.Fatalf("profile call method = %q, want PUT", b.profileMethod)
	}
	if b.profileBody["realName"] != "Ada Reader" || b.profileBody["mobilePhone"] != "555-0101" || b.profileBody["email"] != "ada@example.com" {
		t.Fatalf("forwarded body = %v", b.profileBody)
	}
}
