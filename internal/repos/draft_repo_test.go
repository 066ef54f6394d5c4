package repos_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"bookbound/internal/domain"
	"bookbound/internal/repos"
)

func draftFixture() (domain.OrderDraft, []domain.ShortageItem) {
	draft := domain.OrderDraft{
		Items: []domain.DraftItem{
			{BookID: "B-1001", Quantity: 2, UnitPrice: decimal.RequireFromString("20.00")},
		},
		ShippingAddressSnapshot: "Reader, 1 Main St",
	}
	shortages := []domain.ShortageItem{{BookID: "B-1001", Quantity: 2, CurrentStock: 1}}
	return draft, shortages
}

func TestDraftRoundTrip(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	r := repos.NewDraftRepo(db)

	draft, shortages := draftFixture()
	if err := r.Save("d-1", 7, draft, shortages); err != nil {
		t.Fatal(err)
	}

	got, err := r.Get("d-1", 7)
	if err != nil {
		t.Fatal(err)
	}
	if got.CustomerID != 7 {
		t.Fatalf("customer = %d", got.CustomerID)
	}
	if len(got.Draft.Items) != 1 || got.Draft.Items[0].BookID != "B-1001" {
		t.Fatalf("draft = %+v", got.Draft)
	}
	if !got.Draft.Items[0].UnitPrice.Equal(decimal.RequireFromString("20.00")) {
		t.Fatalf("unit price = %s", got.Draft.Items[0].UnitPrice)
	}
	if len(got.Shortages) != 1 || got.Shortages[0].CurrentStock != 1 {
		t.Fatalf("shortages = %+v", got.Shortages)
	}

	if err := r.Delete("d-1", 7); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("d-1", 7); !errors.Is(err, repos.ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound", err)
	}
}

func TestDraftOwnerMismatch(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	r := repos.NewDraftRepo(db)

	draft, shortages := draftFixture()
	if err := r.Save("d-2", 7, draft, shortages); err != nil {
		t.Fatal(err)
	}
	// Another customer must not be able to load, let alone finalize, it.
	if _, err := r.Get("d-2", 8); !errors.Is(err, repos.ErrDraftNotFound) {
		t.Fatalf("err = %v, want ErrDraftNotFound", err)
	}
	// Nor discard it: delete carries the same owner scope as get.
	if err := r.Delete("d-2", 8); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("d-2", 7); err != nil {
		t.Fatalf("foreign delete removed the draft: %v", err)
	}
}

func TestDraftPurge(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	r := repos.NewDraftRepo(db)

	draft, shortages := draftFixture()
	if err := r.Save("stale", 7, draft, shortages); err != nil {
		t.Fatal(err)
	}
	if err := r.Save("fresh", 7, draft, shortages); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`UPDATE order_drafts SET created_at = '2000-01-01 00:00:00' WHERE id = 'stale'`); err != nil {
		t.Fatal(err)
	}

	if err := r.PurgeOlderThan(time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("stale", 7); !errors.Is(err, repos.ErrDraftNotFound) {
		t.Fatalf("stale draft survived purge: %v", err)
	}
	if _, err := r.Get("fresh", 7); err != nil {
		t.Fatalf("fresh draft purged: %v", err)
	}
}
