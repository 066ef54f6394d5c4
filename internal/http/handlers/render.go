package handlers

import (
	"github.com/gofiber/fiber/v2"

	"bookbound/internal/repos"
)

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if s := currentSession(c); s != nil {
		data["Session"] = s
	}
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	return c.Render(tmpl, data)
}

func currentSession(c *fiber.Ctx) *repos.Session {
	s, _ := c.Locals("session").(*repos.Session)
	return s
}

// customerID is only meaningful under RequireCustomer.
func customerID(c *fiber.Ctx) int64 {
	if s := currentSession(c); s != nil {
		return s.Customer()
	}
	return 0
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).Render("error", fiber.Map{"Message": msg})
}
