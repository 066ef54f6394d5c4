package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"bookbound/internal/api"
	applog "bookbound/internal/log"
	"bookbound/internal/validate"
)

// AdminHandler covers orders/shipping, inventory and customers in the
// administrator console.
type AdminHandler struct {
	API *api.Client
}

// GET /admin
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	return render(c, "admin_dashboard", fiber.Map{})
}

// GET /admin/orders
func (h *AdminHandler) Orders(c *fiber.Ctx) error {
	status := c.Query("status")
	orders, err := h.API.AdminOrders(c.Context(), status)
	if err != nil {
		applog.Error(c, "admin.orders.list", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load orders")
	}
	for i := range orders {
		orders[i].OrderStatus = orders[i].OrderStatus.Normalize()
	}
	return render(c, "admin_orders", fiber.Map{"Orders": orders, "Status": status})
}

// GET /admin/orders/:id
func (h *AdminHandler) OrderDetail(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	detail, err := h.API.AdminOrderDetail(c.Context(), oid)
	if err != nil {
		applog.Error(c, "admin.orders.detail", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not load the order")
	}
	detail.Order.OrderStatus = detail.Order.OrderStatus.Normalize()
	return render(c, "admin_order_detail", fiber.Map{"Detail": detail})
}

// POST /admin/orders/:id/ship
func (h *AdminHandler) Ship(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	carrier := strings.TrimSpace(c.FormValue("carrier"))
	tracking := strings.TrimSpace(c.FormValue("trackingNumber"))
	if err := h.API.AdminShipOrder(c.Context(), oid, carrier, tracking); err != nil {
		applog.Error(c, "admin.orders.ship", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not ship the order: "+err.Error())
	}
	applog.Audit(c, "admin.orders.ship", map[string]any{"order_id": oid, "carrier": carrier})
	return c.Redirect("/admin/orders/" + c.Params("id"))
}

// POST /admin/orders/:id/ship-partial — form fields qty_<orderItemId>.
func (h *AdminHandler) ShipPartial(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	carrier := strings.TrimSpace(c.FormValue("carrier"))
	tracking := strings.TrimSpace(c.FormValue("trackingNumber"))

	quantities := make(map[int64]int)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		if !strings.HasPrefix(k, "qty_") {
			return
		}
		itemID, err := strconv.ParseInt(strings.TrimPrefix(k, "qty_"), 10, 64)
		if err != nil || itemID <= 0 {
			return
		}
		qty, err := strconv.Atoi(string(value))
		if err != nil || qty <= 0 {
			return
		}
		quantities[itemID] = qty
	})
	if len(quantities) == 0 {
		return fail(c, fiber.StatusBadRequest, "Enter a positive quantity for at least one line")
	}

	if err := h.API.AdminShipPartial(c.Context(), oid, carrier, tracking, quantities); err != nil {
		applog.Error(c, "admin.orders.ship_partial", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not ship the selected lines: "+err.Error())
	}
	applog.Audit(c, "admin.orders.ship_partial", map[string]any{"order_id": oid, "lines": len(quantities)})
	return c.Redirect("/admin/orders/" + c.Params("id"))
}

// POST /admin/orders/:id/cancel
func (h *AdminHandler) CancelOrder(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	if err := h.API.AdminCancelOrder(c.Context(), oid); err != nil {
		applog.Error(c, "admin.orders.cancel", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not cancel the order: "+err.Error())
	}
	applog.Audit(c, "admin.orders.cancel", map[string]any{"order_id": oid})
	return c.Redirect("/admin/orders/" + c.Params("id"))
}

// GET /admin/inventory
func (h *AdminHandler) Inventory(c *fiber.Ctx) error {
	rows, err := h.API.AdminInventory(c.Context())
	if err != nil {
		applog.Error(c, "admin.inventory.list", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load inventory")
	}
	return render(c, "admin_inventory", fiber.Map{"Rows": rows})
}

// POST /admin/inventory/adjust
func (h *AdminHandler) AdjustInventory(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid book id")
	}
	delta, err := strconv.Atoi(strings.TrimSpace(c.FormValue("delta")))
	if err != nil || delta == 0 {
		return fail(c, fiber.StatusBadRequest, "Adjustment must be a non-zero whole number")
	}
	reason := strings.TrimSpace(c.FormValue("reason"))
	if err := h.API.AdminAdjustInventory(c.Context(), bookID, delta, reason); err != nil {
		applog.Error(c, "admin.inventory.adjust", err, map[string]any{"book_id": bookID, "delta": delta})
		return fail(c, fiber.StatusBadGateway, "Could not adjust inventory: "+err.Error())
	}
	applog.Audit(c, "admin.inventory.adjust", map[string]any{"book_id": bookID, "delta": delta, "reason": reason})
	return c.Redirect("/admin/inventory")
}

// POST /admin/inventory/safety-stock
func (h *AdminHandler) SetSafetyStock(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Invalid book id")
	}
	level, err := strconv.Atoi(strings.TrimSpace(c.FormValue("safetyStock")))
	if err != nil || level < 0 {
		return fail(c, fiber.StatusBadRequest, "Safety stock must be zero or more")
	}
	if err := h.API.AdminSetSafetyStock(c.Context(), bookID, level); err != nil {
		applog.Error(c, "admin.inventory.safety_stock", err, map[string]any{"book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not update safety stock: "+err.Error())
	}
	applog.Audit(c, "admin.inventory.safety_stock", map[string]any{"book_id": bookID, "level": level})
	return c.Redirect("/admin/inventory")
}

// GET /admin/customers
func (h *AdminHandler) Customers(c *fiber.Ctx) error {
	customers, err := h.API.AdminCustomers(c.Context())
	if err != nil {
		applog.Error(c, "admin.customers.list", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load customers")
	}
	return render(c, "admin_customers", fiber.Map{"Customers": customers})
}

// POST /admin/customers/:id/credit-level
func (h *AdminHandler) SetCreditLevel(c *fiber.Ctx) error {
	cid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Customer not found")
	}
	level, err := strconv.Atoi(strings.TrimSpace(c.FormValue("creditLevelId")))
	if err != nil || level < 1 || level > 5 {
		return fail(c, fiber.StatusBadRequest, "Credit level must be between 1 and 5")
	}
	if err := h.API.AdminSetCreditLevel(c.Context(), cid, level); err != nil {
		applog.Error(c, "admin.customers.credit_level", err, map[string]any{"customer_id": cid})
		return fail(c, fiber.StatusBadGateway, "Could not update the credit level: "+err.Error())
	}
	applog.Audit(c, "admin.customers.credit_level", map[string]any{"customer_id": cid, "level": level})
	return c.Redirect("/admin/customers")
}
