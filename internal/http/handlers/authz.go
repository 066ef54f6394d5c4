package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "bookbound/internal/log"
	"bookbound/internal/services"
)

// RequireCustomer enforces a logged-in customer session and stashes it plus
// the customer id in Locals for handlers and the logger.
func RequireCustomer(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		s, err := auth.Current(sid)
		if err != nil || s == nil || s.Customer() == 0 {
			return c.Redirect("/login")
		}
		c.Locals("session", s)
		c.Locals("customerID", s.Customer())
		return c.Next()
	}
}

func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		s, err := auth.Current(sid)
		if err != nil || s == nil || !s.IsAdmin() {
			applog.Security(c, "access.denied.admin", map[string]any{"sid": sid})
			return fail(c, fiber.StatusForbidden, "Access denied")
		}
		c.Locals("session", s)
		return c.Next()
	}
}
