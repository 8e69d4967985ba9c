package handlers

import (
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/api"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/state"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/storage"
	"github.com/clynova/haciendacantabriafrontend-sub002/internal/ws"
)

type Deps struct {
	CatalogHandler  *CatalogHandler
	CartHandler     *CartHandler
	OrderHandler    *OrderHandler
	AuthHandler     *AuthHandler
	WishlistHandler *WishlistHandler
	PagesHandler    *PagesHandler
	AdminHandler    *AdminHandler

	Sessions *state.Sessions
}

func NewDeps(client *api.Client, store *storage.Store, hub *ws.Hub) *Deps {
	productSvc := api.NewProductService(client)
	authSvc := api.NewAuthService(client)
	orderSvc := api.NewOrderService(client)
	categorySvc := api.NewCategoryService(client)
	userSvc := api.NewUserService(client)

	catalog := state.NewCatalog(productSvc)
	carts := state.NewCartStore(store)
	sessions := state.NewSessions(authSvc, store)
	wishlists := state.NewWishlistStore(store)
	consent := state.NewConsentStore(store)

	return &Deps{
		CatalogHandler:  &CatalogHandler{Catalog: catalog, Products: productSvc, Categories: categorySvc},
		CartHandler:     &CartHandler{Carts: carts, Products: productSvc},
		OrderHandler:    &OrderHandler{Carts: carts, Orders: orderSvc, Sessions: sessions},
		AuthHandler:     &AuthHandler{Sessions: sessions},
		WishlistHandler: &WishlistHandler{Wishlists: wishlists, Products: productSvc},
		PagesHandler:    &PagesHandler{Consent: consent},
		AdminHandler: &AdminHandler{
			Products: productSvc, Orders: orderSvc, Users: userSvc,
			Categories: categorySvc, Sessions: sessions, Hub: hub,
		},
		Sessions: sessions,
	}
}
