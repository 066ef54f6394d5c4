package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookbound/internal/api"
	applog "bookbound/internal/log"
	"bookbound/internal/validate"
)

// ShopHandler renders the storefront catalogue.
type ShopHandler struct {
	API *api.Client
}

// GET /shop
func (h *ShopHandler) Browse(c *fiber.Ctx) error {
	books, err := h.API.Books(c.Context())
	if err != nil {
		applog.Error(c, "shop.books.load", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load the catalogue. Please try again.")
	}
	return render(c, "shop", fiber.Map{"Books": books})
}

// GET /shop/search?q=
func (h *ShopHandler) Search(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("q"))
	if !ok {
		return h.Browse(c)
	}
	books, err := h.API.SearchBooks(c.Context(), q)
	if err != nil {
		applog.Error(c, "shop.books.search", err, map[string]any{"q": q})
		return fail(c, fiber.StatusBadGateway, "Search failed. Please try again.")
	}
	return render(c, "shop", fiber.Map{"Books": books, "Query": q})
}
