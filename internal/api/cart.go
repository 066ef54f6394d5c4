package api

import (
	"context"
	"fmt"

	"bookbound/internal/domain"
)

// The cart resource lives server-side; the server is the source of truth for
// titles and prices. Mutations return nothing useful, so callers re-fetch.

func (c *Client) Cart(ctx context.Context, customerID int64) ([]domain.CartLine, error) {
	var out []domain.CartLine
	err := c.get(ctx, fmt.Sprintf("/customer/%d/cart", customerID), &out)
	return out, err
}

// CartAdd merges quantity into an existing line for the same book.
func (c *Client) CartAdd(ctx context.Context, customerID int64, bookID string, quantity int) error {
	return c.post(ctx, fmt.Sprintf("/customer/%d/cart", customerID), map[string]any{
		"bookId":   bookID,
		"quantity": quantity,
	}, nil)
}

// CartUpdate replaces the line's quantity; the backend deletes the line when
// quantity drops to zero or below.
func (c *Client) CartUpdate(ctx context.Context, customerID int64, bookID string, quantity int) error {
	return c.put(ctx, fmt.Sprintf("/customer/%d/cart/%s", customerID, bookID),
		map[string]int{"quantity": quantity}, nil)
}

func (c *Client) CartRemove(ctx context.Context, customerID int64, bookID string) error {
	return c.del(ctx, fmt.Sprintf("/customer/%d/cart/%s", customerID, bookID))
}

func (c *Client) CartClear(ctx context.Context, customerID int64) error {
	return c.del(ctx, fmt.Sprintf("/customer/%d/cart", customerID))
}
