package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"bookbound/internal/api"
	"bookbound/internal/domain"
)

var ErrInvalidQuantity = errors.New("quantity must be a positive integer")

// CartService maintains the pending line items for one customer. The server
// cart resource is authoritative; every mutation is followed by a full
// re-fetch so the local view never trusts an optimistic merge (prices may
// have changed server-side).
type CartService struct {
	API *api.Client
}

func NewCartService(client *api.Client) *CartService {
	return &CartService{API: client}
}

type CartView struct {
	Lines []domain.CartLine
	Total decimal.Decimal
}

func (s *CartService) View(ctx context.Context, customerID int64) (CartView, error) {
	lines, err := s.API.Cart(ctx, customerID)
	if err != nil {
		return CartView{}, err
	}
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return CartView{Lines: lines, Total: total}, nil
}

// Add merges quantity into any existing line for the same book.
func (s *CartService) Add(ctx context.Context, customerID int64, bookID string, qty int) (CartView, error) {
	if qty < 1 {
		return CartView{}, ErrInvalidQuantity
	}
	if err := s.API.CartAdd(ctx, customerID, bookID, qty); err != nil {
		return CartView{}, err
	}
	return s.View(ctx, customerID)
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *CartService) SetQuantity(ctx context.Context, customerID int64, bookID string, qty int) (CartView, error) {
	if qty <= 0 {
		return s.Remove(ctx, customerID, bookID)
	}
	if err := s.API.CartUpdate(ctx, customerID, bookID, qty); err != nil {
		return CartView{}, err
	}
	return s.View(ctx, customerID)
}

func (s *CartService) Remove(ctx context.Context, customerID int64, bookID string) (CartView, error) {
	if err := s.API.CartRemove(ctx, customerID, bookID); err != nil {
		return CartView{}, err
	}
	return s.View(ctx, customerID)
}

// Clear empties the cart. Idempotent: clearing an already-empty cart is a
// no-op server-side.
func (s *CartService) Clear(ctx context.Context, customerID int64) error {
	return s.API.CartClear(ctx, customerID)
}
