package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	"bookbound/internal/services"
)

type cartBackend struct {
	lines   []domain.CartLine
	methods []string
}

func (b *cartBackend) handler() http.Handler {
	mux := http.NewServeMux()
	record := func(r *http.Request) { b.methods = append(b.methods, r.Method+" "+r.URL.Path) }
	mux.HandleFunc("/customer/7/cart", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(b.lines)
		default:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/customer/7/cart/", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func TestCartViewSumsSubtotals(t *testing.T) {
	b := &cartBackend{lines: []domain.CartLine{
		{BookID: "B-1", Quantity: 3, UnitPrice: decimal.RequireFromString("12.50")},
		{BookID: "B-2", Quantity: 1, UnitPrice: decimal.RequireFromString("0.99")},
	}}
	ts := httptest.NewServer(b.handler())
	defer ts.Close()
	svc := services.NewCartService(api.New(ts.URL, 0))

	cv, err := svc.View(context.Background(), 7)
	if err != nil {
		t.Fatal(err)
	}
	if want := decimal.RequireFromString("38.49"); !cv.Total.Equal(want) {
		t.Fatalf("total = %s, want %s", cv.Total, want)
	}
}

func TestCartAddRejectsNonPositiveQuantity(t *testing.T) {
	b := &cartBackend{}
	ts := httptest.NewServer(b.handler())
	defer ts.Close()
	svc := services.NewCartService(api.New(ts.URL, 0))

	if _, err := svc.Add(context.Background(), 7, "B-1", 0); !errors.Is(err, services.ErrInvalidQuantity) {
		t.Fatalf("err = %v, want ErrInvalidQuantity", err)
	}
	if len(b.methods) != 0 {
		t.Fatalf("invalid quantity reached the backend: %v", b.methods)
	}
}

func TestClearTwiceIsIdempotent(t *testing.T) {
	b := &cartBackend{}
	ts := httptest.NewServer(b.handler())
	defer ts.Close()
	svc := services.NewCartService(api.New(ts.URL, 0))

	if err := svc.Clear(context.Background(), 7); err != nil {
		t.Fatal(err)
	}
	if err := svc.Clear(context.Background(), 7); err != nil {
		t.Fatalf("clearing an already-empty cart failed: %v", err)
	}
	want := []string{"DELETE /customer/7/cart", "DELETE /customer/7/cart"}
	if len(b.methods) != 2 || b.methods[0] != want[0] || b.methods[1] != want[1] {
		t.Fatalf("calls = %v, want %v", b.methods, want)
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	b := &cartBackend{}
	ts := httptest.NewServer(b.handler())
	defer ts.Close()
	svc := services.NewCartService(api.New(ts.URL, 0))

	if _, err := svc.SetQuantity(context.Background(), 7, "B-1", 0); err != nil {
		t.Fatal(err)
	}
	if len(b.methods) == 0 || b.methods[0] != "DELETE /customer/7/cart/B-1" {
		t.Fatalf("calls = %v, want a DELETE first", b.methods)
	}
}
