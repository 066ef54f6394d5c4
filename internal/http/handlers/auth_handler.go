package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	applog "bookbound/internal/log"
	"bookbound/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

func ensureSID(c *fiber.Ctx) string {
	sid := c.Cookies("sid")
	if sid == "" {
		sid = uuid.NewString()
		c.Cookie(&fiber.Cookie{
			Name:     "sid",
			Value:    sid,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
			Secure:   false, // enable true behind TLS
		})
	}
	return sid
}

func (h *AuthHandler) LoginForm(c *fiber.Ctx) error {
	return render(c, "login", fiber.Map{"Err": ""})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Username and password are required"})
	}

	s, err := h.Auth.Login(c.Context(), sid, username, password)
	if err != nil {
		applog.Security(c, "auth.login.fail", map[string]any{"username": username})
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{"Err": "Invalid username or password"})
	}

	applog.Audit(c, "auth.login.success", map[string]any{"username": username, "role": s.Role})
	if s.IsAdmin() {
		return c.Redirect("/admin")
	}
	return c.Redirect("/shop")
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	sid := ensureSID(c)
	username := strings.TrimSpace(c.FormValue("username"))
	password := c.FormValue("password")
	realName := strings.TrimSpace(c.FormValue("realName"))
	if username == "" || password == "" {
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{"Err": "Username and password are required"})
	}

	if _, err := h.Auth.Register(c.Context(), sid, username, password, realName); err != nil {
		applog.Security(c, "auth.register.fail", map[string]any{"username": username, "error": err.Error()})
		return c.Status(fiber.StatusBadRequest).Render("login", fiber.Map{"Err": "Registration failed: " + err.Error()})
	}

	applog.Audit(c, "auth.register.success", map[string]any{"username": username})
	return c.Redirect("/shop")
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sid := ensureSID(c)
	_ = h.Auth.Logout(sid)
	c.Cookie(&fiber.Cookie{
		Name:     "sid",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	applog.Audit(c, "auth.logout", map[string]any{"sid": sid})
	return c.Redirect("/login")
}
