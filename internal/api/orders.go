package api

import (
	"context"
	"fmt"

	"bookbound/internal/domain"
)

// CheckStock submits the draft for a stock pre-check. Pure read relative to
// order state: the backend must not create anything for this call.
func (c *Client) CheckStock(ctx context.Context, customerID int64, draft domain.OrderDraft) ([]domain.ShortageItem, error) {
	var out []domain.ShortageItem
	err := c.post(ctx, fmt.Sprintf("/customer/%d/orders/check-stock", customerID), draft, &out)
	return out, err
}

func (c *Client) CreateOrder(ctx context.Context, customerID int64, draft domain.OrderDraft) (domain.SalesOrder, error) {
	var out domain.SalesOrder
	err := c.post(ctx, fmt.Sprintf("/customer/%d/orders", customerID), draft, &out)
	return out, err
}

// OrderShortages lists the lines of an existing order that current stock
// cannot cover, recomputed backend-side against live inventory.
func (c *Client) OrderShortages(ctx context.Context, orderID int64) ([]domain.ShortageItem, error) {
	var out []domain.ShortageItem
	err := c.get(ctx, fmt.Sprintf("/customer/orders/%d/shortages", orderID), &out)
	return out, err
}

// SubmitShortageDecision records the customer's shortage choice for an
// already-created order, optionally with a free-text note. The client-only
// CANCEL tag never reaches this call.
func (c *Client) SubmitShortageDecision(ctx context.Context, orderID int64, decision domain.ShortageDecision, note string) error {
	body := map[string]string{"decision": string(decision)}
	if note != "" {
		body["customerNote"] = note
	}
	return c.post(ctx, fmt.Sprintf("/customer/orders/%d/shortages/decision", orderID), body, nil)
}

func (c *Client) PayOrder(ctx context.Context, orderID int64) error {
	return c.post(ctx, fmt.Sprintf("/customer/orders/%d/pay", orderID), nil, nil)
}

func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	return c.post(ctx, fmt.Sprintf("/customer/orders/%d/cancel", orderID), nil, nil)
}

// ReceiveShipment confirms receipt of exactly one shipment. There is no
// receive-everything primitive; multi-shipment orders are confirmed one
// dispatch at a time.
func (c *Client) ReceiveShipment(ctx context.Context, orderID, shipmentID int64) error {
	return c.post(ctx, fmt.Sprintf("/customer/orders/%d/receive", orderID),
		map[string]int64{"shipmentId": shipmentID}, nil)
}
