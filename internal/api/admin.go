package api

import (
	"context"
	"fmt"
	"net/url"

	"bookbound/internal/domain"
)

// Administrator console endpoints. Same thin-proxy discipline as the
// customer side: the console never duplicates backend business rules.

// Orders & shipping.

func (c *Client) AdminOrders(ctx context.Context, status string) ([]domain.SalesOrder, error) {
	path := "/admin/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var out []domain.SalesOrder
	err := c.get(ctx, path, &out)
	return out, err
}

func (c *Client) AdminOrderDetail(ctx context.Context, orderID int64) (domain.OrderDetail, error) {
	var out domain.OrderDetail
	err := c.get(ctx, fmt.Sprintf("/admin/orders/%d", orderID), &out)
	return out, err
}

// AdminShipOrder dispatches everything still unshipped on the order.
func (c *Client) AdminShipOrder(ctx context.Context, orderID int64, carrier, trackingNumber string) error {
	return c.post(ctx, fmt.Sprintf("/admin/orders/%d/ship", orderID), map[string]string{
		"carrier":        carrier,
		"trackingNumber": trackingNumber,
	}, nil)
}

// AdminCancelOrder cancels an unshipped order on the customer's behalf.
func (c *Client) AdminCancelOrder(ctx context.Context, orderID int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/orders/%d/cancel", orderID), nil, nil)
}

// AdminShipPartial dispatches the given per-order-item quantities as one
// shipment.
func (c *Client) AdminShipPartial(ctx context.Context, orderID int64, carrier, trackingNumber string, quantities map[int64]int) error {
	return c.post(ctx, fmt.Sprintf("/admin/orders/%d/ship/partial", orderID), map[string]any{
		"carrier":        carrier,
		"trackingNumber": trackingNumber,
		"items":          quantities,
	}, nil)
}

// Inventory.

func (c *Client) AdminInventory(ctx context.Context) ([]domain.InventoryRow, error) {
	var out []domain.InventoryRow
	err := c.get(ctx, "/admin/inventory", &out)
	return out, err
}

func (c *Client) AdminAdjustInventory(ctx context.Context, bookID string, delta int, reason string) error {
	return c.post(ctx, fmt.Sprintf("/admin/inventory/%s/adjust", bookID), map[string]any{
		"delta":  delta,
		"reason": reason,
	}, nil)
}

func (c *Client) AdminSetSafetyStock(ctx context.Context, bookID string, safetyStock int) error {
	return c.post(ctx, fmt.Sprintf("/admin/inventory/%s/safety-stock", bookID),
		map[string]int{"safetyStock": safetyStock}, nil)
}

// Purchasing.

func (c *Client) AdminOutOfStockRecords(ctx context.Context) ([]domain.OutOfStockRecord, error) {
	var out []domain.OutOfStockRecord
	err := c.get(ctx, "/admin/purchase/out-of-stock", &out)
	return out, err
}

func (c *Client) AdminCreateOutOfStockRecord(ctx context.Context, bookID string, quantity int) error {
	return c.post(ctx, "/admin/purchase/out-of-stock", map[string]any{
		"bookId":           bookID,
		"requiredQuantity": quantity,
		"source":           "MANUAL",
	}, nil)
}

func (c *Client) AdminCustomerRequests(ctx context.Context) ([]domain.CustomerShortageRequest, error) {
	var out []domain.CustomerShortageRequest
	err := c.get(ctx, "/admin/purchase/customer-requests", &out)
	return out, err
}

func (c *Client) AdminAcceptCustomerRequest(ctx context.Context, requestID int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/purchase/customer-requests/%d/accept", requestID), nil, nil)
}

func (c *Client) AdminRejectCustomerRequest(ctx context.Context, requestID int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/purchase/customer-requests/%d/reject", requestID), nil, nil)
}

func (c *Client) AdminPurchaseOrders(ctx context.Context) ([]domain.PurchaseOrder, error) {
	var out []domain.PurchaseOrder
	err := c.get(ctx, "/admin/purchase/orders", &out)
	return out, err
}

func (c *Client) AdminPurchaseOrderDetail(ctx context.Context, purchaseOrderID int64) ([]domain.PurchaseOrderItem, error) {
	var out []domain.PurchaseOrderItem
	err := c.get(ctx, fmt.Sprintf("/admin/purchase/orders/%d", purchaseOrderID), &out)
	return out, err
}

// AdminPurchaseFromOutOfStock turns pending out-of-stock records into one
// purchase order against the chosen supplier.
func (c *Client) AdminPurchaseFromOutOfStock(ctx context.Context, supplierID int64, recordIDs []int64) (domain.PurchaseOrder, error) {
	var out domain.PurchaseOrder
	err := c.post(ctx, "/admin/purchase/orders/from-out-of-stock", map[string]any{
		"supplierId": supplierID,
		"recordIds":  recordIDs,
	}, &out)
	return out, err
}

func (c *Client) AdminReceivePurchaseOrder(ctx context.Context, purchaseOrderID int64) error {
	return c.post(ctx, fmt.Sprintf("/admin/purchase/orders/%d/receive", purchaseOrderID), nil, nil)
}

// Suppliers.

func (c *Client) AdminSuppliers(ctx context.Context) ([]domain.Supplier, error) {
	var out []domain.Supplier
	err := c.get(ctx, "/admin/suppliers", &out)
	return out, err
}

func (c *Client) AdminSaveSupplier(ctx context.Context, s domain.Supplier) error {
	if s.SupplierID > 0 {
		return c.put(ctx, fmt.Sprintf("/admin/suppliers/%d", s.SupplierID), s, nil)
	}
	return c.post(ctx, "/admin/suppliers", s, nil)
}

func (c *Client) AdminDeleteSupplier(ctx context.Context, supplierID int64) error {
	return c.del(ctx, fmt.Sprintf("/admin/suppliers/%d", supplierID))
}

func (c *Client) AdminSupplierSupplies(ctx context.Context, supplierID int64) ([]domain.Supply, error) {
	var out []domain.Supply
	err := c.get(ctx, fmt.Sprintf("/admin/suppliers/%d/supplies", supplierID), &out)
	return out, err
}

func (c *Client) AdminSaveSupply(ctx context.Context, s domain.Supply) error {
	return c.post(ctx, fmt.Sprintf("/admin/suppliers/%d/supplies", s.SupplierID), s, nil)
}

// Books.

func (c *Client) AdminBooks(ctx context.Context) ([]domain.Book, error) {
	var out []domain.Book
	err := c.get(ctx, "/admin/books", &out)
	return out, err
}

func (c *Client) AdminSaveBook(ctx context.Context, b domain.Book, update bool) error {
	if update {
		return c.put(ctx, "/admin/books/"+b.BookID, b, nil)
	}
	return c.post(ctx, "/admin/books", b, nil)
}

func (c *Client) AdminBookAuthors(ctx context.Context, bookID string) ([]domain.BookAuthor, error) {
	var out []domain.BookAuthor
	err := c.get(ctx, fmt.Sprintf("/admin/books/%s/authors", bookID), &out)
	return out, err
}

func (c *Client) AdminBookKeywords(ctx context.Context, bookID string) ([]domain.BookKeyword, error) {
	var out []domain.BookKeyword
	err := c.get(ctx, fmt.Sprintf("/admin/books/%s/keywords", bookID), &out)
	return out, err
}

// Customers.

func (c *Client) AdminCustomers(ctx context.Context) ([]domain.AdminCustomer, error) {
	var out []domain.AdminCustomer
	err := c.get(ctx, "/admin/customers", &out)
	return out, err
}

func (c *Client) AdminSetCreditLevel(ctx context.Context, customerID int64, creditLevelID int) error {
	return c.post(ctx, fmt.Sprintf("/admin/customers/%d/credit-level", customerID),
		map[string]int{"creditLevelId": creditLevelID}, nil)
}
