package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookbound/internal/api"
	applog "bookbound/internal/log"
	"bookbound/internal/validate"
)

// PurchaseHandler covers the purchasing side of the console: out-of-stock
// records, customer shortage requests and purchase orders.
type PurchaseHandler struct {
	API *api.Client
}

// GET /admin/purchase
func (h *PurchaseHandler) Page(c *fiber.Ctx) error {
	records, err := h.API.AdminOutOfStockRecords(c.Context())
	if err != nil {
		applog.Error(c, "admin.purchase.records", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load out-of-stock records")
	}
	requests, err := h.API.AdminCustomerRequests(c.Context())
	if err != nil {
		applog.Error(c, "admin.purchase.requests", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load customer requests")
	}
	orders, err := h.API.AdminPurchaseOrders(c.Context())
	if err != nil {
		applog.Error(c, "admin.purchase.orders", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load purchase orders")
	}
	suppliers, err := h.API.AdminSuppliers(c.Context())
	if err != nil {
		applog.Error(c, "admin.purchase.suppliers", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load suppliers")
	}
	return render(c, "admin_purchase", fiber.Map{
		"Records":   records,
		"Requests":  requests,
		"Orders":    orders,
		"Suppliers": suppliers,
	})
}

// POST /admin/purchase/records
func (h *PurchaseHandler) CreateRecord(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid book id")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Quantity must be a positive whole number")
	}
	if err := h.API.AdminCreateOutOfStockRecord(c.Context(), bookID, qty); err != nil {
		applog.Error(c, "admin.purchase.record.create", err, map[string]any{"book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not register the shortage: "+err.Error())
	}
	applog.Audit(c, "admin.purchase.record.create", map[string]any{"book_id": bookID, "qty": qty})
	return c.Redirect("/admin/purchase")
}

// POST /admin/purchase/requests/:id/accept
func (h *PurchaseHandler) AcceptRequest(c *fiber.Ctx) error {
	rid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Request not found")
	}
	if err := h.API.AdminAcceptCustomerRequest(c.Context(), rid); err != nil {
		applog.Error(c, "admin.purchase.request.accept", err, map[string]any{"request_id": rid})
		return fail(c, fiber.StatusBadGateway, "Could not accept the request: "+err.Error())
	}
	applog.Audit(c, "admin.purchase.request.accept", map[string]any{"request_id": rid})
	return c.Redirect("/admin/purchase")
}

// POST /admin/purchase/requests/:id/reject
func (h *PurchaseHandler) RejectRequest(c *fiber.Ctx) error {
	rid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Request not found")
	}
	if err := h.API.AdminRejectCustomerRequest(c.Context(), rid); err != nil {
		applog.Error(c, "admin.purchase.request.reject", err, map[string]any{"request_id": rid})
		return fail(c, fiber.StatusBadGateway, "Could not reject the request: "+err.Error())
	}
	applog.Audit(c, "admin.purchase.request.reject", map[string]any{"request_id": rid})
	return c.Redirect("/admin/purchase")
}

// POST /admin/purchase/orders — create one purchase order from the checked
// out-of-stock records (form fields record_<id>=on) against one supplier.
func (h *PurchaseHandler) CreateFromOutOfStock(c *fiber.Ctx) error {
	supplierID, ok := validate.ID(c.FormValue("supplierId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Pick a supplier")
	}
	var recordIDs []int64
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if !strings.HasPrefix(k, "record_") {
			return
		}
		id, err := strconv.ParseInt(strings.TrimPrefix(k, "record_"), 10, 64)
		if err == nil && id > 0 {
			recordIDs = append(recordIDs, id)
		}
	})
	if len(recordIDs) == 0 {
		return fail(c, fiber.StatusBadRequest, "Select at least one out-of-stock record")
	}

	po, err := h.API.AdminPurchaseFromOutOfStock(c.Context(), supplierID, recordIDs)
	if err != nil {
		applog.Error(c, "admin.purchase.create", err, map[string]any{"supplier_id": supplierID})
		return fail(c, fiber.StatusBadGateway, "Could not create the purchase order: "+err.Error())
	}
	applog.Audit(c, "admin.purchase.create", map[string]any{
		"purchase_order_id": po.PurchaseOrderID,
		"records":           len(recordIDs),
	})
	return c.Redirect("/admin/purchase")
}

// GET /admin/purchase/orders/:id
func (h *PurchaseHandler) OrderDetail(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Purchase order not found")
	}
	items, err := h.API.AdminPurchaseOrderDetail(c.Context(), pid)
	if err != nil {
		applog.Error(c, "admin.purchase.detail", err, map[string]any{"purchase_order_id": pid})
		return fail(c, fiber.StatusBadGateway, "Could not load the purchase order")
	}
	return render(c, "admin_purchase_order", fiber.Map{"PurchaseOrderID": pid, "Items": items})
}

// POST /admin/purchase/orders/:id/receive
func (h *PurchaseHandler) ReceiveOrder(c *fiber.Ctx) error {
	pid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Purchase order not found")
	}
	if err := h.API.AdminReceivePurchaseOrder(c.Context(), pid); err != nil {
		applog.Error(c, "admin.purchase.receive", err, map[string]any{"purchase_order_id": pid})
		return fail(c, fiber.StatusBadGateway, "Could not receive the purchase order: "+err.Error())
	}
	applog.Audit(c, "admin.purchase.receive", map[string]any{"purchase_order_id": pid})
	return c.Redirect("/admin/purchase")
}
