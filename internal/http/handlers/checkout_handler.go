package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"bookbound/internal/api"
	"bookbound/internal/domain"
	applog "bookbound/internal/log"
	"bookbound/internal/services"
	"bookbound/internal/validate"
)

// CheckoutHandler drives order submission and the shortage-resolution
// dialog. The draft never lives in handler state: between the pre-check and
// the decision it is parked in the draft store under its invocation id, which
// travels through the dialog form.
type CheckoutHandler struct {
	Cart *services.CartService
	Flow *services.OrderFlow
	API  *api.Client
}

// GET /checkout
func (h *CheckoutHandler) Page(c *fiber.Ctx) error {
	cid := customerID(c)
	cv, err := h.Cart.View(c.Context(), cid)
	if err != nil {
		applog.Error(c, "checkout.load", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load your cart. Please try again.")
	}
	addrs, err := h.API.Addresses(c.Context(), cid)
	if err != nil {
		applog.Error(c, "checkout.addresses", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load your addresses. Please try again.")
	}
	return render(c, "checkout", fiber.Map{"Cart": cv, "Addresses": addrs})
}

// POST /orders
func (h *CheckoutHandler) Submit(c *fiber.Ctx) error {
	cid := customerID(c)
	var addressID int64
	if v := c.FormValue("addressId"); v != "" {
		id, ok := validate.ID(v)
		if !ok {
			return fail(c, fiber.StatusBadRequest, "Invalid address selection")
		}
		addressID = id
	}

	res, err := h.Flow.Submit(c.Context(), cid, addressID)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			return fail(c, fiber.StatusBadRequest, "Your cart is empty. Add some books first.")
		}
		applog.Error(c, "order.submit", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not place the order: "+err.Error())
	}

	if res.Order != nil {
		applog.Audit(c, "order.create", map[string]any{
			"order_id": res.Order.OrderID,
			"payable":  res.Order.PayableAmount.String(),
		})
		return c.Redirect(fmt.Sprintf("/orders/%d?placed=1", res.Order.OrderID))
	}

	// Shortage path: nothing created yet; the dialog decides.
	applog.Info(c, "order.shortage.detected", map[string]any{
		"draft_id": res.DraftID,
		"items":    len(res.Shortages),
	})
	return render(c, "shortage", fiber.Map{
		"DraftID":   res.DraftID,
		"Shortages": res.Shortages,
	})
}

// GET /orders/shortage/:draftId — re-render the dialog (e.g. after refresh).
func (h *CheckoutHandler) ShortageDialog(c *fiber.Ctx) error {
	draftID := c.Params("draftId")
	pending, err := h.Flow.PendingShortages(draftID, customerID(c))
	if err != nil {
		if errors.Is(err, services.ErrDraftNotFound) {
			return fail(c, fiber.StatusNotFound, "This order draft has expired. Your cart is unchanged.")
		}
		applog.Error(c, "order.shortage.load", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load the shortage details. Please try again.")
	}
	return render(c, "shortage", fiber.Map{
		"DraftID":   pending.ID,
		"Shortages": pending.Shortages,
	})
}

// POST /orders/shortage/:draftId
func (h *CheckoutHandler) Decide(c *fiber.Ctx) error {
	cid := customerID(c)
	draftID := c.Params("draftId")
	decision := domain.ShortageDecision(c.FormValue("decision"))
	note, ok := validate.Note(c.FormValue("note"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "The note contains unsupported characters")
	}

	order, err := h.Flow.Decide(c.Context(), cid, draftID, decision, note)
	if err != nil {
		var de *services.DecisionError
		switch {
		case errors.Is(err, services.ErrBadDecision):
			return fail(c, fiber.StatusBadRequest, "Unknown decision")
		case errors.Is(err, services.ErrDraftNotFound):
			return fail(c, fiber.StatusNotFound, "This order draft has expired. Your cart is unchanged.")
		case errors.As(err, &de):
			// Order exists; keep the reference visible so the customer can
			// retry the registration from the order page.
			applog.Error(c, "order.shortage.decision", err, map[string]any{"order_id": de.OrderID})
			return fail(c, fiber.StatusBadGateway, fmt.Sprintf(
				"Order %d was created, but registering your shortage choice failed. Open the order to try again.", de.OrderID))
		default:
			applog.Error(c, "order.shortage.decision", err, map[string]any{"draft_id": draftID})
			return fail(c, fiber.StatusBadGateway, "Could not place the order: "+err.Error())
		}
	}

	if order == nil {
		// Cancelled: cart intact, nothing created.
		applog.Info(c, "order.shortage.cancelled", map[string]any{"draft_id": draftID})
		return c.Redirect("/cart")
	}

	applog.Audit(c, "order.shortage.registered", map[string]any{
		"order_id": order.OrderID,
		"decision": string(decision),
	})
	return c.Redirect(fmt.Sprintf("/orders/%d?placed=1", order.OrderID))
}
