package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	applog "bookbound/internal/log"
	"bookbound/internal/services"
	"bookbound/internal/validate"
)

type OrderHandler struct {
	API      *api.Client
	Commands *services.OrderCommands
}

// GET /orders
func (h *OrderHandler) History(c *fiber.Ctx) error {
	status := c.Query("status")
	orders, err := h.API.Orders(c.Context(), customerID(c), status)
	if err != nil {
		applog.Error(c, "orders.history", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load your orders. Please try again.")
	}
	for i := range orders {
		orders[i].OrderStatus = orders[i].OrderStatus.Normalize()
	}
	return render(c, "orders", fiber.Map{"Orders": orders, "Status": status})
}

// GET /orders/:id
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	detail, err := h.API.OrderDetail(c.Context(), oid)
	if err != nil {
		if api.IsNotFound(err) {
			return fail(c, fiber.StatusNotFound, "Order not found")
		}
		applog.Error(c, "orders.detail", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not load the order. Please try again.")
	}
	// Orders belong to customers; never show someone else's.
	if detail.Order.CustomerID != customerID(c) {
		applog.Security(c, "access.denied.order", map[string]any{"order_id": oid})
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	detail.Order.OrderStatus = detail.Order.OrderStatus.Normalize()

	// While the order awaits its shortage review the page offers the
	// decision form again, so a failed registration can be retried.
	var shortages []domain.ShortageItem
	if detail.Order.OrderStatus == domain.StatusOutOfStockPending {
		shortages, err = h.API.OrderShortages(c.Context(), oid)
		if err != nil {
			applog.Error(c, "orders.shortages", err, map[string]any{"order_id": oid})
			shortages = nil
		}
	}

	return render(c, "order_detail", fiber.Map{
		"Detail":    detail,
		"Shortages": shortages,
		"Placed":    c.Query("placed") == "1",
	})
}

// POST /orders/:id/shortage-decision — re-registers the shortage choice on an
// already-created order, for when the original registration call failed. The
// client-only CANCEL tag has no meaning here; cancelling an existing order is
// the plain cancel action.
func (h *OrderHandler) ShortageDecision(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	decision := domain.ShortageDecision(c.FormValue("decision"))
	if !decision.Valid() || decision == domain.DecisionCancel {
		return fail(c, fiber.StatusBadRequest, "Unknown decision")
	}
	note, ok := validate.Note(c.FormValue("note"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "The note contains unsupported characters")
	}
	if err := h.API.SubmitShortageDecision(c.Context(), oid, decision, note); err != nil {
		applog.Error(c, "orders.shortage_decision", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not register your shortage choice: "+err.Error())
	}
	applog.Audit(c, "orders.shortage_decision", map[string]any{
		"order_id": oid,
		"decision": string(decision),
	})
	return c.Redirect("/orders/" + c.Params("id"))
}

// POST /orders/:id/pay
func (h *OrderHandler) Pay(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	if err := h.Commands.Pay(c.Context(), oid); err != nil {
		applog.Error(c, "orders.pay", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Payment failed: "+err.Error())
	}
	applog.Audit(c, "orders.pay", map[string]any{"order_id": oid})
	return c.Redirect("/orders/" + c.Params("id"))
}

// POST /orders/:id/cancel
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	if err := h.Commands.Cancel(c.Context(), oid); err != nil {
		applog.Error(c, "orders.cancel", err, map[string]any{"order_id": oid})
		return fail(c, fiber.StatusBadGateway, "Could not cancel the order: "+err.Error())
	}
	applog.Audit(c, "orders.cancel", map[string]any{"order_id": oid})
	return c.Redirect("/orders/" + c.Params("id"))
}

// POST /orders/:id/receive — confirms one shipment; the form carries
// shipmentId for split-shipment orders, or omits it for the common
// single-shipment case.
func (h *OrderHandler) Receive(c *fiber.Ctx) error {
	oid, ok := validate.ID(c.Params("id"))
	if !ok {
		return fail(c, fiber.StatusNotFound, "Order not found")
	}
	var shipmentID int64
	if v := c.FormValue("shipmentId"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return fail(c, fiber.StatusBadRequest, "Invalid shipment")
		}
		shipmentID = id
	}
	if err := h.Commands.Receive(c.Context(), oid, shipmentID); err != nil {
		switch {
		case errors.Is(err, services.ErrNothingToReceive):
			return fail(c, fiber.StatusBadRequest, "There is nothing awaiting receipt on this order.")
		case errors.Is(err, services.ErrShipmentRequired):
			return fail(c, fiber.StatusBadRequest, "This order has several shipments in transit; confirm them one at a time.")
		}
		applog.Error(c, "orders.receive", err, map[string]any{"order_id": oid, "shipment_id": shipmentID})
		return fail(c, fiber.StatusBadGateway, "Could not confirm receipt: "+err.Error())
	}
	applog.Audit(c, "orders.receive", map[string]any{"order_id": oid, "shipment_id": shipmentID})
	return c.Redirect("/orders/" + c.Params("id"))
}
