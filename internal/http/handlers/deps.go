package handlers

import (
	"github.com/jmoiron/sqlx"

	"bookbound/internal/api"
	"bookbound/internal/repos"
	"bookbound/internal/services"
)

type Deps struct {
	AuthHandler     *AuthHandler
	ShopHandler     *ShopHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	AccountHandler  *AccountHandler
	AdminHandler    *AdminHandler
	PurchaseHandler *PurchaseHandler
	CatalogHandler  *CatalogHandler
}

func NewDeps(db *sqlx.DB, client *api.Client) *Deps {
	sessionRepo := repos.NewSessionRepo(db)
	draftRepo := repos.NewDraftRepo(db)

	authSvc := services.NewAuthService(client, sessionRepo)
	cartSvc := services.NewCartService(client)
	flowSvc := services.NewOrderFlow(client, draftRepo)
	cmdSvc := services.NewOrderCommands(client)

	return &Deps{
		AuthHandler:     &AuthHandler{Auth: authSvc},
		ShopHandler:     &ShopHandler{API: client},
		CartHandler:     &CartHandler{Cart: cartSvc},
		CheckoutHandler: &CheckoutHandler{Cart: cartSvc, Flow: flowSvc, API: client},
		OrderHandler:    &OrderHandler{API: client, Commands: cmdSvc},
		AccountHandler:  &AccountHandler{API: client},
		AdminHandler:    &AdminHandler{API: client},
		PurchaseHandler: &PurchaseHandler{API: client},
		CatalogHandler:  &CatalogHandler{API: client},
	}
}

// Auth exposes the auth service for middleware wiring in main.
func (d *Deps) Auth() *services.AuthService { return d.AuthHandler.Auth }
