package main

import (
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"

	"bookbound/internal/api"
	"bookbound/internal/config"
	"bookbound/internal/http/handlers"
	applog "bookbound/internal/log"
	"bookbound/internal/repos"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	client := api.New(cfg.BackendURL, cfg.RequestTimeout)
	deps := handlers.NewDeps(db, client)
	authSvc := deps.Auth()

	// Templates & app
	engine := html.New("./web/templates", ".html")
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views: engine,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Log and show a friendly message
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals; best-effort render
			if rerr := c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
				"Message": "Something went wrong. Please try again.",
			}); rerr != nil {
				return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong. Please try again.")
			}
			return nil
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// Attach the bound session to context if logged in (for templates/authz)
	app.Use(func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if s, err := authSvc.Current(sid); err == nil && s != nil {
				c.Locals("session", s)
				if cid := s.Customer(); cid != 0 {
					c.Locals("customerID", cid)
				}
			}
		}
		return c.Next()
	})
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(string(c.Request().URI().Path()), "/static/")
		},
	}))
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   false, // set true behind HTTPS
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			formTok := c.FormValue("csrf")
			applog.Security(c, "csrf.fail", map[string]any{"form": formTok})
			return c.Status(fiber.StatusForbidden).Render("error", fiber.Map{"Message": "Security check failed. Please refresh and try again."})
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	app.Static("/static", "./web/static")

	// ---------- Public pages ----------
	app.Get("/", func(c *fiber.Ctx) error { return c.Redirect("/shop") })
	app.Get("/shop", deps.ShopHandler.Browse)
	app.Get("/shop/search", limiter.New(limiter.Config{Max: 20, Expiration: time.Minute}), deps.ShopHandler.Search)

	// Auth routes (login throttled)
	app.Get("/login", deps.AuthHandler.LoginForm)
	app.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).Render("login", fiber.Map{"Err": "Too many attempts. Please try again later."})
		},
	}), deps.AuthHandler.Login)
	app.Post("/register", deps.AuthHandler.Register)
	app.Post("/logout", deps.AuthHandler.Logout)

	// ---------- Customer pages ----------
	shop := app.Group("", handlers.RequireCustomer(authSvc))

	shop.Get("/cart", deps.CartHandler.View)
	shop.Post("/cart", deps.CartHandler.Add)
	shop.Post("/cart/quantity", deps.CartHandler.SetQuantity)
	shop.Post("/cart/remove", deps.CartHandler.Remove)
	shop.Post("/cart/clear", deps.CartHandler.Clear)

	shop.Get("/checkout", deps.CheckoutHandler.Page)
	shop.Post("/orders", deps.CheckoutHandler.Submit)
	shop.Get("/orders/shortage/:draftId", deps.CheckoutHandler.ShortageDialog)
	shop.Post("/orders/shortage/:draftId", deps.CheckoutHandler.Decide)

	shop.Get("/orders", deps.OrderHandler.History)
	shop.Get("/orders/:id", deps.OrderHandler.Detail)
	shop.Post("/orders/:id/pay", deps.OrderHandler.Pay)
	shop.Post("/orders/:id/cancel", deps.OrderHandler.Cancel)
	shop.Post("/orders/:id/receive", deps.OrderHandler.Receive)
	shop.Post("/orders/:id/shortage-decision", deps.OrderHandler.ShortageDecision)

	shop.Get("/account", deps.AccountHandler.Summary)
	shop.Post("/account/profile", deps.AccountHandler.UpdateProfile)
	shop.Post("/account/recharge", deps.AccountHandler.Recharge)

	// ---------- Admin console ----------
	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/", deps.AdminHandler.Dashboard)
	admin.Get("/orders", deps.AdminHandler.Orders)
	admin.Get("/orders/:id", deps.AdminHandler.OrderDetail)
	admin.Post("/orders/:id/ship", deps.AdminHandler.Ship)
	admin.Post("/orders/:id/ship-partial", deps.AdminHandler.ShipPartial)
	admin.Post("/orders/:id/cancel", deps.AdminHandler.CancelOrder)
	admin.Get("/inventory", deps.AdminHandler.Inventory)
	admin.Post("/inventory/adjust", deps.AdminHandler.AdjustInventory)
	admin.Post("/inventory/safety-stock", deps.AdminHandler.SetSafetyStock)

	admin.Get("/purchase", deps.PurchaseHandler.Page)
	admin.Post("/purchase/records", deps.PurchaseHandler.CreateRecord)
	admin.Post("/purchase/requests/:id/accept", deps.PurchaseHandler.AcceptRequest)
	admin.Post("/purchase/requests/:id/reject", deps.PurchaseHandler.RejectRequest)
	admin.Post("/purchase/orders", deps.PurchaseHandler.CreateFromOutOfStock)
	admin.Get("/purchase/orders/:id", deps.PurchaseHandler.OrderDetail)
	admin.Post("/purchase/orders/:id/receive", deps.PurchaseHandler.ReceiveOrder)

	admin.Get("/suppliers", deps.CatalogHandler.Suppliers)
	admin.Post("/suppliers", deps.CatalogHandler.SaveSupplier)
	admin.Post("/suppliers/:id/delete", deps.CatalogHandler.DeleteSupplier)
	admin.Get("/suppliers/:id/supplies", deps.CatalogHandler.Supplies)
	admin.Post("/suppliers/:id/supplies", deps.CatalogHandler.SaveSupply)
	admin.Get("/books", deps.CatalogHandler.Books)
	admin.Post("/books", deps.CatalogHandler.SaveBook)
	admin.Get("/books/:id", deps.CatalogHandler.BookDetail)
	admin.Get("/customers", deps.AdminHandler.Customers)
	admin.Post("/customers/:id/credit-level", deps.AdminHandler.SetCreditLevel)

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(404).Render("error", fiber.Map{"Message": "Page not found"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
