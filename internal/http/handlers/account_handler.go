package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"bookbound/internal/api"
	applog "bookbound/internal/log"
	"bookbound/internal/validate"
)

type AccountHandler struct {
	API *api.Client
}

// GET /account
func (h *AccountHandler) Summary(c *fiber.Ctx) error {
	cid := customerID(c)
	summary, err := h.API.Summary(c.Context(), cid)
	if err != nil {
		applog.Error(c, "account.summary", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load your account. Please try again.")
	}
	addrs, err := h.API.Addresses(c.Context(), cid)
	if err != nil {
		applog.Error(c, "account.addresses", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not load your addresses. Please try again.")
	}
	return render(c, "account", fiber.Map{"Summary": summary, "Addresses": addrs})
}

// POST /account/profile
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	upd := api.ProfileUpdate{
		RealName:    strings.TrimSpace(c.FormValue("realName")),
		MobilePhone: strings.TrimSpace(c.FormValue("mobilePhone")),
		Email:       strings.TrimSpace(c.FormValue("email")),
	}
	if _, err := h.API.UpdateProfile(c.Context(), customerID(c), upd); err != nil {
		applog.Error(c, "account.profile", err, nil)
		return fail(c, fiber.StatusBadGateway, "Could not update your profile: "+err.Error())
	}
	applog.Audit(c, "account.profile", nil)
	return c.Redirect("/account")
}

// POST /account/recharge
func (h *AccountHandler) Recharge(c *fiber.Ctx) error {
	raw, ok := validate.Amount(c.FormValue("amount"))
	if !ok {
		return fail(c, fiber.StatusBadRequest, "The recharge amount must be greater than zero")
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid amount")
	}
	if err := h.API.Recharge(c.Context(), customerID(c), amount); err != nil {
		applog.Error(c, "account.recharge", err, map[string]any{"amount": raw})
		return fail(c, fiber.StatusBadGateway, "Recharge failed: "+err.Error())
	}
	applog.Audit(c, "account.recharge", map[string]any{"amount": raw})
	return c.Redirect("/account")
}
