package handlers

import (
	"github.com/fasthttp/router"

	"github.com/ospteam/marketplace/internal/model"
	xhttp "github.com/ospteam/marketplace/pkg/http"
)

// Register wires the full route table: public surface, the three role-gated
// groups and the health endpoint.
func Register(r *router.Router, auth AuthService, accounts *AccountHandler, catalog *CatalogHandler, orders *OrderHandler) {
	RegisterHealthRoutes(r, NewHealthHandler())
	RegisterAccountRoutes(r, accounts)
	RegisterCatalogRoutes(r, catalog)

	r.GET("/sign_in", SignInPage)

	manager := r.Group("/manager")
	manager.GET("", RequireRole(auth, model.RoleManager, home))
	RegisterManagerAccountRoutes(manager, auth, accounts)
	RegisterManagerCatalogRoutes(manager, auth, catalog)
	RegisterManagerOrderRoutes(manager, auth, orders)

	seller := r.Group("/seller")
	seller.GET("", RequireRole(auth, model.RoleSeller, home))
	RegisterSellerCatalogRoutes(seller, auth, catalog)
	RegisterSellerOrderRoutes(seller, auth, orders)

	buyer := r.Group("/buyer")
	buyer.GET("", RequireRole(auth, model.RoleBuyer, home))
	RegisterBuyerOrderRoutes(buyer, auth, orders)
}

// SignInPage is the redirect target of every auth failure. It surfaces the
// pending flash notice so a client can render it.
func SignInPage(ctx *xhttp.RequestCtx) {
	resp := map[string]any{}
	if flash, ok := xhttp.PopFlash(ctx); ok {
		resp["flash"] = flash
	}
	writeJSON(ctx, xhttp.StatusOK, resp)
}

// home is each role group's landing route: the signed-in principal plus any
// pending flash notice.
func home(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)
	resp := map[string]any{"principal": p}
	if flash, ok := xhttp.PopFlash(ctx); ok {
		resp["flash"] = flash
	}
	writeJSON(ctx, xhttp.StatusOK, resp)
}
