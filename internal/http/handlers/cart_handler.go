package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "bookbound/internal/log"
	"bookbound/internal/services"
	"bookbound/internal/validate"
)

type CartHandler struct {
	Cart *services.CartService
}

// GET /cart
func (h *CartHandler) View(c *fiber.Ctx) error {
	cv, err := h.Cart.View(c.Context(), customerID(c))
	if err != nil {
		applog.Error(c, "cart.load", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load your cart. Please try again.")
	}
	return render(c, "cart", fiber.Map{"Cart": cv})
}

// POST /cart
func (h *CartHandler) Add(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Missing or invalid book id")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Quantity must be a positive whole number")
	}
	if _, err := h.Cart.Add(c.Context(), customerID(c), bookID, qty); err != nil {
		if errors.Is(err, services.ErrInvalidQuantity) {
			return fail(c, fiber.StatusBadRequest, err.Error())
		}
		applog.Error(c, "cart.add", err, map[string]any{"book_id": bookID, "qty": qty})
		return fail(c, fiber.StatusBadGateway, "Could not add the book to your cart. Please try again.")
	}
	applog.Info(c, "cart.add", map[string]any{"book_id": bookID, "qty": qty})
	return c.Redirect("/cart")
}

// POST /cart/quantity
func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Missing or invalid book id")
	}
	// Zero is allowed here: it removes the line.
	qty, err := strconv.Atoi(strings.TrimSpace(c.FormValue("qty")))
	if err != nil || qty < 0 || qty > 999 {
		return fail(c, fiber.StatusBadRequest, "Quantity must be zero or a positive whole number")
	}
	if _, err := h.Cart.SetQuantity(c.Context(), customerID(c), bookID, qty); err != nil {
		applog.Error(c, "cart.set_quantity", err, map[string]any{"book_id": bookID, "qty": qty})
		return fail(c, fiber.StatusBadGateway, "Could not update your cart. Please try again.")
	}
	return c.Redirect("/cart")
}

// POST /cart/remove
func (h *CartHandler) Remove(c *fiber.Ctx) error {
	bookID, ok := validate.BookID(c.FormValue("bookId"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "Missing or invalid book id")
	}
	if _, err := h.Cart.Remove(c.Context(), customerID(c), bookID); err != nil {
		applog.Error(c, "cart.remove", err, map[string]any{"book_id": bookID})
		return fail(c, fiber.StatusBadGateway, "Could not update your cart. Please try again.")
	}
	return c.Redirect("/cart")
}

// POST /cart/clear
func (h *CartHandler) Clear(c *fiber.Ctx) error {
	if err := h.Cart.Clear(c.Context(), customerID(c)); err != nil {
		applog.Error(c, "cart.clear", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not clear your cart. Please try again.")
	}
	return c.Redirect("/cart")
}
