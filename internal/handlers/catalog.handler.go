package handlers

import (
	"context"
	"strconv"

	"github.com/fasthttp/router"

	"github.com/ospteam/marketplace/internal/model"
	xhttp "github.com/ospteam/marketplace/pkg/http"
)

type CatalogService interface {
	AddCategory(ctx context.Context, p model.CategoryCreateRequest) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	DeleteCategory(ctx context.Context, uid string) error
	AddItem(ctx context.Context, p model.ItemCreateRequest) (*model.Item, error)
	GetItem(ctx context.Context, uid string) (*model.Item, error)
	SearchItems(ctx context.Context, f model.ItemFilter) ([]*model.Item, int64, error)
	ChangeItemDetails(ctx context.Context, uid string, p model.ItemUpdateRequest) error
	RemoveItem(ctx context.Context, uid string) error
}

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalog: catalog,
	}
}

// Public catalog surface: browsing needs no session.
func RegisterCatalogRoutes(r *router.Router, h *CatalogHandler) {
	r.GET("/categories", h.ListCategories)
	r.GET("/items", h.SearchItems)
	r.GET("/items/{uid}", h.GetItem)
}

func RegisterManagerCatalogRoutes(g *router.Group, auth AuthService, h *CatalogHandler) {
	g.POST("/categories", RequireRole(auth, model.RoleManager, h.AddCategory))
	g.POST("/categories/{uid}/delete", RequireRole(auth, model.RoleManager, h.DeleteCategory))
	g.POST("/items/{uid}/category", RequireRole(auth, model.RoleManager, h.ChangeItemCategory))
	g.POST("/items/{uid}/delete", RequireRole(auth, model.RoleManager, h.removeItem("/manager")))
}

func RegisterSellerCatalogRoutes(g *router.Group, auth AuthService, h *CatalogHandler) {
	g.POST("/items", RequireRole(auth, model.RoleSeller, h.AddItem))
	g.POST("/items/{uid}/update", RequireRole(auth, model.RoleSeller, h.ChangeItemDetails))
	g.POST("/items/{uid}/delete", RequireRole(auth, model.RoleSeller, h.removeItem("/seller")))
	g.GET("/items", RequireRole(auth, model.RoleSeller, h.ListOwnItems))
}

type listCategoriesResponse struct {
	Items []*model.Category `json:"items"`
}

type listItemsResponse struct {
	Items []*model.Item `json:"items"`
	Total int64         `json:"total"`
}

func (h *CatalogHandler) ListCategories(ctx *xhttp.RequestCtx) {
	cats, err := h.catalog.ListCategories(ctx)
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listCategoriesResponse{Items: cats})
}

// SearchItems filters the catalog by category ("all" or empty means every
// category), name substring and on-sale restriction.
func (h *CatalogHandler) SearchItems(ctx *xhttp.RequestCtx) {
	var f model.ItemFilter
	if v := query(ctx, "category"); v != "" && v != "all" {
		f.CategoryUID = &v
	}
	f.Name = query(ctx, "name")
	f.OnSaleOnly = query(ctx, "on_sale") == "true"
	if v := query(ctx, "limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Limit = n
		}
	}
	if v := query(ctx, "offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.Offset = n
		}
	}

	items, total, err := h.catalog.SearchItems(ctx, f)
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listItemsResponse{Items: items, Total: total})
}

func (h *CatalogHandler) GetItem(ctx *xhttp.RequestCtx) {
	item, err := h.catalog.GetItem(ctx, param(ctx, "uid"))
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, item)
}

func (h *CatalogHandler) AddCategory(ctx *xhttp.RequestCtx) {
	_, err := h.catalog.AddCategory(ctx, model.CategoryCreateRequest{Name: form(ctx, "name")})
	if err != nil {
		redirectServiceError(ctx, "/manager", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/manager", "info", "category added")
}

func (h *CatalogHandler) DeleteCategory(ctx *xhttp.RequestCtx) {
	if err := h.catalog.DeleteCategory(ctx, param(ctx, "uid")); err != nil {
		redirectServiceError(ctx, "/manager", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/manager", "info", "category and its items removed")
}

func (h *CatalogHandler) AddItem(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	price, _ := formFloat(ctx, "price")
	age, _ := formInt(ctx, "age")
	req := model.ItemCreateRequest{
		Name:         form(ctx, "name"),
		SellerUID:    p.UserUID,
		CategoryUID:  form(ctx, "category_uid"),
		Price:        price,
		Age:          age,
		Description:  form(ctx, "description"),
		Manufacturer: form(ctx, "manufacturer"),
		Heavy:        form(ctx, "heavy") == "true",
	}

	if _, err := h.catalog.AddItem(ctx, req); err != nil {
		redirectServiceError(ctx, "/seller", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/seller", "info", "item listed for sale")
}

func (h *CatalogHandler) ChangeItemDetails(ctx *xhttp.RequestCtx) {
	var req model.ItemUpdateRequest
	if v := form(ctx, "name"); v != "" {
		req.Name = &v
	}
	if v := form(ctx, "price"); v != "" {
		if price, err := formFloat(ctx, "price"); err == nil {
			req.Price = &price
		}
	}
	if v := form(ctx, "age"); v != "" {
		if age, err := formInt(ctx, "age"); err == nil {
			req.Age = &age
		}
	}
	if v := form(ctx, "description"); v != "" {
		req.Description = &v
	}
	if v := form(ctx, "manufacturer"); v != "" {
		req.Manufacturer = &v
	}
	if v := form(ctx, "heavy"); v != "" {
		heavy := v == "true"
		req.Heavy = &heavy
	}

	if err := h.catalog.ChangeItemDetails(ctx, param(ctx, "uid"), req); err != nil {
		redirectServiceError(ctx, "/seller", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/seller", "info", "item updated")
}

// ChangeItemCategory is the manager's re-filing operation.
func (h *CatalogHandler) ChangeItemCategory(ctx *xhttp.RequestCtx) {
	target := form(ctx, "category_uid")
	req := model.ItemUpdateRequest{CategoryUID: &target}

	if err := h.catalog.ChangeItemDetails(ctx, param(ctx, "uid"), req); err != nil {
		redirectServiceError(ctx, "/manager", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/manager", "info", "item moved to new category")
}

func (h *CatalogHandler) removeItem(backTo string) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		if err := h.catalog.RemoveItem(ctx, param(ctx, "uid")); err != nil {
			redirectServiceError(ctx, backTo, err)
			return
		}
		xhttp.RedirectWithFlash(ctx, backTo, "info", "item removed")
	}
}

func (h *CatalogHandler) ListOwnItems(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	f := model.ItemFilter{SellerUID: &p.UserUID}
	items, total, err := h.catalog.SearchItems(ctx, f)
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listItemsResponse{Items: items, Total: total})
}
