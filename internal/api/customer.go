package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"

	"bookbound/internal/domain"
)

// Auth passthrough. Credential checking is entirely backend-owned; the
// frontend only forwards the form and keeps the returned identity in its
// local session row.

type LoginResult struct {
	Role         string `json:"role"` // CUSTOMER | ADMIN
	CustomerID   int64  `json:"customerId,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
	AdminName    string `json:"adminName,omitempty"`
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := c.post(ctx, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, username, password, realName string) (LoginResult, error) {
	var out LoginResult
	err := c.post(ctx, "/auth/register", map[string]string{
		"username": username,
		"password": password,
		"realName": realName,
	}, &out)
	return out, err
}

// Catalogue.

func (c *Client) Books(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	err := c.get(ctx, "/customer/books", &out)
	return out, err
}

func (c *Client) SearchBooks(ctx context.Context, keyword string) ([]domain.Book, error) {
	var out []domain.Book
	err := c.get(ctx, "/customer/books/search?keyword="+url.QueryEscape(keyword), &out)
	return out, err
}

// Account.

func (c *Client) Summary(ctx context.Context, customerID int64) (domain.CustomerSummary, error) {
	var out domain.CustomerSummary
	err := c.get(ctx, fmt.Sprintf("/customer/%d/summary", customerID), &out)
	return out, err
}

func (c *Client) Recharge(ctx context.Context, customerID int64, amount decimal.Decimal) error {
	return c.post(ctx, fmt.Sprintf("/customer/%d/recharge", customerID),
		map[string]decimal.Decimal{"amount": amount}, nil)
}

// ProfileUpdate carries the editable contact fields. Username, balance and
// credit level are not customer-editable.
type ProfileUpdate struct {
	RealName    string `json:"realName"`
	MobilePhone string `json:"mobilePhone"`
	Email       string `json:"email"`
}

// UpdateProfile replaces the contact fields and returns the refreshed summary.
func (c *Client) UpdateProfile(ctx context.Context, customerID int64, upd ProfileUpdate) (domain.CustomerSummary, error) {
	var out domain.CustomerSummary
	err := c.put(ctx, fmt.Sprintf("/customer/%d/profile", customerID), upd, &out)
	return out, err
}

func (c *Client) Addresses(ctx context.Context, customerID int64) ([]domain.CustomerAddress, error) {
	var out []domain.CustomerAddress
	err := c.get(ctx, fmt.Sprintf("/customer/%d/addresses", customerID), &out)
	return out, err
}

// Orders (read side).

func (c *Client) Orders(ctx context.Context, customerID int64, status string) ([]domain.SalesOrder, error) {
	path := fmt.Sprintf("/customer/%d/orders", customerID)
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []domain.SalesOrder
	err := c.get(ctx, path, &out)
	return out, err
}

func (c *Client) OrderDetail(ctx context.Context, orderID int64) (domain.OrderDetail, error) {
	var out domain.OrderDetail
	err := c.get(ctx, fmt.Sprintf("/customer/orders/%d", orderID), &out)
	return out, err
}
