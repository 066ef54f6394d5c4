package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	"bookbound/internal/repos"
	"bookbound/internal/services"
)

// fakeBackend is a scripted bookstore backend. Each test seeds the cart and
// shortage list it needs and then asserts on the recorded calls.
type fakeBackend struct {
	mu sync.Mutex

	cart      []domain.CartLine
	addresses []domain.CustomerAddress
	shortages []domain.ShortageItem

	nextOrderID  int64
	failDecision bool

	createCalls   int
	decisionCalls int
	decisionBody  map[string]string
	cartCleared   int
	lastDraft     domain.OrderDraft
}

func (b *fakeBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/customer/7/cart", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(b.cart)
		case http.MethodDelete:
			b.cartCleared++
			b.cart = nil
			w.WriteHeader(http.StatusNoContent)
		}
	})
	mux.HandleFunc("/customer/7/addresses", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(b.addresses)
	})
	mux.HandleFunc("/customer/7/summary", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.CustomerSummary{CustomerID: 7, Username: "reader7"})
	})
	mux.HandleFunc("/customer/7/orders/check-stock", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewDecoder(r.Body).Decode(&b.lastDraft)
		json.NewEncoder(w).Encode(b.shortages)
	})
	mux.HandleFunc("/customer/7/orders", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.createCalls++
		var draft domain.OrderDraft
		json.NewDecoder(r.Body).Decode(&draft)
		b.lastDraft = draft
		goods := decimal.Zero
		for _, it := range draft.Items {
			goods = goods.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
		json.NewEncoder(w).Encode(domain.SalesOrder{
			OrderID:                 b.nextOrderID,
			CustomerID:              7,
			OrderStatus:             domain.StatusPendingPayment,
			GoodsAmount:             goods,
			PayableAmount:           goods,
			ShippingAddressSnapshot: draft.ShippingAddressSnapshot,
		})
	})
	mux.HandleFunc("/customer/orders/", func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/shortages/decision") {
			http.NotFound(w, r)
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		b.decisionCalls++
		json.NewDecoder(r.Body).Decode(&b.decisionBody)
		if b.failDecision {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "decision store unavailable"})
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newFlow(t *testing.T, b *fakeBackend) (*services.OrderFlow, func()) {
	t.Helper()
	ts := httptest.NewServer(b.handler())
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	flow := services.NewOrderFlow(api.New(ts.URL, 0), repos.NewDraftRepo(db))
	return flow, func() { ts.Close(); db.Close() }
}

func seededCart() []domain.CartLine {
	return []domain.CartLine{
		{BookID: "B-1001", Title: "The Go Workshop", Quantity: 2, UnitPrice: decimal.NewFromInt(20)},
		{BookID: "B-2002", Title: "Database Internals", Quantity: 1, UnitPrice: decimal.NewFromInt(20)},
	}
}

func TestSubmitCreatesOrderWhenFullyStocked(t *testing.T) {
	b := &fakeBackend{cart: seededCart(), nextOrderID: 41}
	flow, done := newFlow(t, b)
	defer done()

	res, err := flow.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Order == nil {
		t.Fatal("expected an order, got shortage path")
	}
	if res.Order.OrderID != 41 {
		t.Fatalf("order id = %d", res.Order.OrderID)
	}
	if want := decimal.NewFromInt(60); !res.Order.PayableAmount.Equal(want) {
		t.Fatalf("payable = %s, want %s", res.Order.PayableAmount, want)
	}
	if b.createCalls != 1 {
		t.Fatalf("create calls = %d, want 1", b.createCalls)
	}
	if b.cartCleared != 1 {
		t.Fatalf("cart cleared %d times, want 1", b.cartCleared)
	}
}

func TestSubmitEmptyCart(t *testing.T) {
	b := &fakeBackend{}
	flow, done := newFlow(t, b)
	defer done()

	_, err := flow.Submit(context.Background(), 7, 0)
	if !errors.Is(err, services.ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
	if b.createCalls != 0 {
		t.Fatal("empty cart must not create an order")
	}
}

func TestSubmitShortageParksDraftWithoutCreating(t *testing.T) {
	b := &fakeBackend{
		cart: seededCart(),
		shortages: []domain.ShortageItem{
			{BookID: "B-2002", Quantity: 1, CurrentStock: 0},
		},
	}
	flow, done := newFlow(t, b)
	defer done()

	res, err := flow.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Order != nil {
		t.Fatal("shortage path must not create an order")
	}
	if res.DraftID == "" {
		t.Fatal("no draft id returned")
	}
	if len(res.Shortages) != 1 || res.Shortages[0].BookID != "B-2002" {
		t.Fatalf("shortages = %+v", res.Shortages)
	}
	if b.createCalls != 0 {
		t.Fatalf("create calls = %d before any decision", b.createCalls)
	}
	if b.cartCleared != 0 {
		t.Fatal("cart must stay intact while the dialog is open")
	}

	// The parked draft is reloadable for a dialog re-render.
	pending, err := flow.PendingShortages(res.DraftID, 7)
	if err != nil {
		t.Fatal(err)
	}
	if len(pending.Draft.Items) != 2 {
		t.Fatalf("draft items = %d", len(pending.Draft.Items))
	}
}

func TestDecideCancelLeavesEverythingIntact(t *testing.T) {
	b := &fakeBackend{
		cart:      seededCart(),
		shortages: []domain.ShortageItem{{BookID: "B-1001", Quantity: 2, CurrentStock: 1}},
	}
	flow, done := newFlow(t, b)
	defer done()

	res, err := flow.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatal(err)
	}

	// A different customer armed with the draft id cannot discard it.
	if _, err := flow.Decide(context.Background(), 8, res.DraftID, domain.DecisionCancel, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := flow.PendingShortages(res.DraftID, 7); err != nil {
		t.Fatalf("foreign cancel discarded the draft: %v", err)
	}

	order, err := flow.Decide(context.Background(), 7, res.DraftID, domain.DecisionCancel, "")
	if err != nil {
		t.Fatal(err)
	}
	if order != nil {
		t.Fatal("cancel must not create an order")
	}
	if b.createCalls != 0 || b.decisionCalls != 0 {
		t.Fatalf("cancel made backend calls: create=%d decision=%d", b.createCalls, b.decisionCalls)
	}
	if b.cartCleared != 0 {
		t.Fatal("cancel must leave the cart intact")
	}
	if _, err := flow.PendingShortages(res.DraftID, 7); !errors.Is(err, services.ErrDraftNotFound) {
		t.Fatalf("draft should be discarded, got %v", err)
	}
}

func TestDecideRequestOnlyCreatesAndRegisters(t *testing.T) {
	b := &fakeBackend{
		cart:        seededCart(),
		shortages:   []domain.ShortageItem{{BookID: "B-1001", Quantity: 2, CurrentStock: 1}},
		nextOrderID: 42,
	}
	flow, done := newFlow(t, b)
	defer done()

	res, err := flow.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatal(err)
	}

	order, err := flow.Decide(context.Background(), 7, res.DraftID, domain.DecisionRequestOnly, "notify me")
	if err != nil {
		t.Fatal(err)
	}
	if order == nil || order.OrderID != 42 {
		t.Fatalf("order = %+v", order)
	}
	if b.createCalls != 1 || b.decisionCalls != 1 {
		t.Fatalf("create=%d decision=%d, want 1/1", b.createCalls, b.decisionCalls)
	}
	if b.decisionBody["decision"] != "REQUEST_ONLY" || b.decisionBody["customerNote"] != "notify me" {
		t.Fatalf("decision body = %v", b.decisionBody)
	}
	if b.cartCleared != 1 {
		t.Fatal("cart should be cleared after a successful decision")
	}
	if _, err := flow.PendingShortages(res.DraftID, 7); !errors.Is(err, services.ErrDraftNotFound) {
		t.Fatalf("draft should be gone, got %v", err)
	}
}

func TestDecideRejectsUnknownDecision(t *testing.T) {
	b := &fakeBackend{}
	flow, done := newFlow(t, b)
	defer done()

	_, err := flow.Decide(context.Background(), 7, "whatever", domain.ShortageDecision("MAYBE"), "")
	if !errors.Is(err, services.ErrBadDecision) {
		t.Fatalf("err = %v, want ErrBadDecision", err)
	}
}

func TestDecidePartialFailureCarriesOrderID(t *testing.T) {
	b := &fakeBackend{
		cart:         seededCart(),
		shortages:    []domain.ShortageItem{{BookID: "B-1001", Quantity: 2, CurrentStock: 1}},
		nextOrderID:  77,
		failDecision: true,
	}
	flow, done := newFlow(t, b)
	defer done()

	res, err := flow.Submit(context.Background(), 7, 0)
	if err != nil {
		t.Fatal(err)
	}

	order, err := flow.Decide(context.Background(), 7, res.DraftID, domain.DecisionPayAndCreate, "")
	if err == nil {
		t.Fatal("expected a decision error")
	}
	var de *services.DecisionError
	if !errors.As(err, &de) {
		t.Fatalf("err = %T %v, want *DecisionError", err, err)
	}
	if de.OrderID != 77 {
		t.Fatalf("carried order id = %d, want 77", de.OrderID)
	}
	if order == nil || order.OrderID != 77 {
		t.Fatalf("order = %+v", order)
	}
	// The order exists now; the draft must not be replayable.
	if _, err := flow.PendingShortages(res.DraftID, 7); !errors.Is(err, services.ErrDraftNotFound) {
		t.Fatalf("draft should be discarded after create, got %v", err)
	}
	if b.cartCleared != 0 {
		t.Fatal("cart clear must wait for a fully successful decision")
	}
}

func TestSubmitUsesDefaultAddressSnapshot(t *testing.T) {
	b := &fakeBackend{
		cart:        seededCart(),
		nextOrderID: 5,
		addresses: []domain.CustomerAddress{
			{AddressID: 1, Receiver: "A", Detail: "First St"},
			{AddressID: 2, Receiver: "B", Detail: "Default Ave", IsDefault: true},
		},
	}
	flow, done := newFlow(t, b)
	defer done()

	if _, err := flow.Submit(context.Background(), 7, 0); err != nil {
		t.Fatal(err)
	}
	if got := b.lastDraft.ShippingAddressSnapshot; got != "B, Default Ave" {
		t.Fatalf("snapshot = %q", got)
	}
}

func TestSubmitUsesExplicitAddressSnapshot(t *testing.T) {
	b := &fakeBackend{
		cart:        seededCart(),
		nextOrderID: 6,
		addresses: []domain.CustomerAddress{
			{AddressID: 1, Receiver: "A", Detail: "First St"},
			{AddressID: 2, Receiver: "B", Detail: "Default Ave", IsDefault: true},
		},
	}
	flow, done := newFlow(t, b)
	defer done()

	if _, err := flow.Submit(context.Background(), 7, 1); err != nil {
		t.Fatal(err)
	}
	if got := b.lastDraft.ShippingAddressSnapshot; got != "A, First St" {
		t.Fatalf("snapshot = %q", got)
	}
}
