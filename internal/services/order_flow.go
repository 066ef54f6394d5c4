package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	"bookbound/internal/repos"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrBadDecision   = errors.New("unknown shortage decision")
	ErrDraftNotFound = repos.ErrDraftNotFound
)

// draftTTL bounds how long an unanswered shortage dialog keeps its draft.
const draftTTL = 24 * time.Hour

// DecisionError reports the partial-failure case: the order was created but
// the shortage-decision call failed. The created order id is carried so the
// UI can offer a retry against the now-known order instead of losing the
// reference. No compensating action is taken.
type DecisionError struct {
	OrderID int64
	Err     error
}

func (e *DecisionError) Error() string {
	return fmt.Sprintf("order %d created but shortage decision failed: %v", e.OrderID, e.Err)
}

func (e *DecisionError) Unwrap() error { return e.Err }

// OrderFlow orchestrates order submission: build draft from cart, stock
// pre-check, then either create directly or park the draft until the
// customer's shortage decision. The pre-check snapshot is trusted as-is;
// no revalidation happens between check and create, and any inventory race
// surfaces as whatever error the create call returns.
type OrderFlow struct {
	API    *api.Client
	Drafts *repos.DraftRepo
}

func NewOrderFlow(client *api.Client, drafts *repos.DraftRepo) *OrderFlow {
	return &OrderFlow{API: client, Drafts: drafts}
}

// SubmitResult is one of two shapes: Order set (order created, cart cleared)
// or DraftID+Shortages set (decision required, nothing created yet).
type SubmitResult struct {
	Order     *domain.SalesOrder
	Shortages []domain.ShortageItem
	DraftID   string
}

// Submit converts the current cart into an order, or into a parked draft
// when the pre-check reports shortages. addressID 0 means no explicit
// selection; the snapshot then falls back to default address, first address,
// then the customer's display name.
func (f *OrderFlow) Submit(ctx context.Context, customerID, addressID int64) (SubmitResult, error) {
	lines, err := f.API.Cart(ctx, customerID)
	if err != nil {
		return SubmitResult{}, err
	}
	if len(lines) == 0 {
		return SubmitResult{}, ErrEmptyCart
	}

	snapshot, err := f.resolveSnapshot(ctx, customerID, addressID)
	if err != nil {
		return SubmitResult{}, err
	}

	draft := buildDraft(lines, snapshot)

	shortages, err := f.API.CheckStock(ctx, customerID, draft)
	if err != nil {
		return SubmitResult{}, err
	}

	if len(shortages) == 0 {
		order, err := f.API.CreateOrder(ctx, customerID, draft)
		if err != nil {
			return SubmitResult{}, err
		}
		_ = f.API.CartClear(ctx, customerID)
		return SubmitResult{Order: &order}, nil
	}

	// Shortage path: no order yet. Park the draft under a fresh invocation
	// id and hand the shortage list back for the dialog.
	id := uuid.NewString()
	if err := f.Drafts.Save(id, customerID, draft, shortages); err != nil {
		return SubmitResult{}, err
	}
	_ = f.Drafts.PurgeOlderThan(draftTTL)
	return SubmitResult{Shortages: shortages, DraftID: id}, nil
}

// Decide finalizes a parked draft. Cancel discards it with zero backend
// calls. The two registering decisions create the order first, then submit
// the decision tag and note; the cart is cleared only when both succeed.
func (f *OrderFlow) Decide(ctx context.Context, customerID int64, draftID string, decision domain.ShortageDecision, note string) (*domain.SalesOrder, error) {
	if !decision.Valid() {
		return nil, ErrBadDecision
	}
	if decision == domain.DecisionCancel {
		// Draft discarded, cart untouched.
		return nil, f.Drafts.Delete(draftID, customerID)
	}

	pending, err := f.Drafts.Get(draftID, customerID)
	if err != nil {
		return nil, err
	}

	order, err := f.API.CreateOrder(ctx, customerID, pending.Draft)
	if err != nil {
		// Draft stays parked so the decision can be retried.
		return nil, err
	}

	if err := f.API.SubmitShortageDecision(ctx, order.OrderID, decision, note); err != nil {
		// The order exists; re-submitting the draft would duplicate it.
		_ = f.Drafts.Delete(draftID, customerID)
		return &order, &DecisionError{OrderID: order.OrderID, Err: err}
	}

	_ = f.API.CartClear(ctx, customerID)
	_ = f.Drafts.Delete(draftID, customerID)
	return &order, nil
}

// PendingShortages reloads a parked draft for re-rendering the dialog.
func (f *OrderFlow) PendingShortages(draftID string, customerID int64) (*repos.PendingDraft, error) {
	return f.Drafts.Get(draftID, customerID)
}

func buildDraft(lines []domain.CartLine, snapshot string) domain.OrderDraft {
	items := make([]domain.DraftItem, 0, len(lines))
	for _, l := range lines {
		// Unit price comes from the just-refetched cart line, not a fresh
		// catalogue query.
		items = append(items, domain.DraftItem{
			BookID:    l.BookID,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
		})
	}
	return domain.OrderDraft{Items: items, ShippingAddressSnapshot: snapshot}
}

// resolveSnapshot applies the address preference order: explicit selection,
// default address, first address, then a bare snapshot from the customer's
// display name when no addresses exist at all.
func (f *OrderFlow) resolveSnapshot(ctx context.Context, customerID, addressID int64) (string, error) {
	addrs, err := f.API.Addresses(ctx, customerID)
	if err != nil {
		return "", err
	}
	if addressID > 0 {
		for _, a := range addrs {
			if a.AddressID == addressID {
				return a.Snapshot(), nil
			}
		}
	}
	if len(addrs) > 0 {
		for _, a := range addrs {
			if a.IsDefault {
				return a.Snapshot(), nil
			}
		}
		return addrs[0].Snapshot(), nil
	}
	summary, err := f.API.Summary(ctx, customerID)
	if err != nil {
		return "", err
	}
	return summary.DisplayName(), nil
}
