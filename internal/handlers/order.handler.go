package handlers

import (
	"context"

	"github.com/fasthttp/router"

	"github.com/ospteam/marketplace/internal/model"
	xhttp "github.com/ospteam/marketplace/pkg/http"
)

type OrderService interface {
	RaisePurchaseRequest(ctx context.Context, buyerUID, itemUID string, offerPrice float64) (*model.Order, error)
	GetOrder(ctx context.Context, uid string) (*model.Order, error)
	Negotiate(ctx context.Context, orderUID string, offerPrice float64) error
	UpdateOrderStatus(ctx context.Context, orderUID string, status model.OrderStatus) error
	Payment(ctx context.Context, buyerUID, orderUID string) (*model.Transaction, error)
	ListOrders(ctx context.Context, f model.OrderFilter) ([]*model.Order, int64, error)
	ListTransactions(ctx context.Context, f model.TransactionFilter) ([]*model.Transaction, int64, error)
}

type OrderHandler struct {
	orders OrderService
}

func NewOrderHandler(orders OrderService) *OrderHandler {
	return &OrderHandler{
		orders: orders,
	}
}

func RegisterBuyerOrderRoutes(g *router.Group, auth AuthService, h *OrderHandler) {
	g.POST("/orders", RequireRole(auth, model.RoleBuyer, h.RaisePurchaseRequest))
	g.POST("/orders/{uid}/negotiate", RequireRole(auth, model.RoleBuyer, h.Negotiate))
	g.POST("/orders/{uid}/pay", RequireRole(auth, model.RoleBuyer, h.Payment))
	g.GET("/orders", RequireRole(auth, model.RoleBuyer, h.ListBuyerOrders))
	g.GET("/purchases", RequireRole(auth, model.RoleBuyer, h.ListBuyerPurchases))
}

func RegisterSellerOrderRoutes(g *router.Group, auth AuthService, h *OrderHandler) {
	g.POST("/orders/{uid}/status", RequireRole(auth, model.RoleSeller, h.UpdateOrderStatus))
	g.POST("/orders/{uid}/negotiate", RequireRole(auth, model.RoleSeller, h.Negotiate))
	g.GET("/orders", RequireRole(auth, model.RoleSeller, h.ListSellerOrders))
	g.GET("/sales", RequireRole(auth, model.RoleSeller, h.ListSellerSales))
}

func RegisterManagerOrderRoutes(g *router.Group, auth AuthService, h *OrderHandler) {
	g.GET("/orders/{uid}", RequireRole(auth, model.RoleManager, h.GetOrder))
	g.GET("/transactions", RequireRole(auth, model.RoleManager, h.ListAllTransactions))
}

type listOrdersResponse struct {
	Items []*model.Order `json:"items"`
	Total int64          `json:"total"`
}

type listTransactionsResponse struct {
	Items []*model.Transaction `json:"items"`
	Total int64                `json:"total"`
}

func (h *OrderHandler) RaisePurchaseRequest(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	offer, err := formFloat(ctx, "offer_price")
	if err != nil {
		xhttp.RedirectWithFlash(ctx, "/buyer", "error", "offer price must be a number")
		return
	}

	order, err := h.orders.RaisePurchaseRequest(ctx, p.UserUID, form(ctx, "item_uid"), offer)
	if err != nil {
		redirectServiceError(ctx, "/buyer", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/buyer", "info", "purchase request "+order.UID+" sent to the seller")
}

// Negotiate serves both sides of the haggle: buyers raise their offer,
// sellers counter on the same pending order.
func (h *OrderHandler) Negotiate(ctx *xhttp.RequestCtx) {
	backTo := "/" + string(principalFrom(ctx).Role)

	offer, err := formFloat(ctx, "offer_price")
	if err != nil {
		xhttp.RedirectWithFlash(ctx, backTo, "error", "offer price must be a number")
		return
	}

	if err := h.orders.Negotiate(ctx, param(ctx, "uid"), offer); err != nil {
		redirectServiceError(ctx, backTo, err)
		return
	}
	xhttp.RedirectWithFlash(ctx, backTo, "info", "offer updated")
}

// UpdateOrderStatus is the seller's accept/reject form.
func (h *OrderHandler) UpdateOrderStatus(ctx *xhttp.RequestCtx) {
	status := model.OrderStatus(form(ctx, "status"))

	if err := h.orders.UpdateOrderStatus(ctx, param(ctx, "uid"), status); err != nil {
		redirectServiceError(ctx, "/seller", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/seller", "info", "order "+string(status))
}

func (h *OrderHandler) Payment(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	tx, err := h.orders.Payment(ctx, p.UserUID, param(ctx, "uid"))
	if err != nil {
		redirectServiceError(ctx, "/buyer", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/buyer", "info", "payment complete, transaction "+tx.UID)
}

func (h *OrderHandler) GetOrder(ctx *xhttp.RequestCtx) {
	order, err := h.orders.GetOrder(ctx, param(ctx, "uid"))
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, order)
}

func (h *OrderHandler) ListBuyerOrders(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)
	h.listOrders(ctx, model.OrderFilter{BuyerUID: &p.UserUID})
}

func (h *OrderHandler) ListSellerOrders(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)
	h.listOrders(ctx, model.OrderFilter{SellerUID: &p.UserUID})
}

func (h *OrderHandler) listOrders(ctx *xhttp.RequestCtx, f model.OrderFilter) {
	if v := query(ctx, "status"); v != "" {
		status := model.OrderStatus(v)
		f.Status = &status
	}

	items, total, err := h.orders.ListOrders(ctx, f)
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listOrdersResponse{Items: items, Total: total})
}

func (h *OrderHandler) ListBuyerPurchases(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)
	h.listTransactions(ctx, model.TransactionFilter{BuyerUID: &p.UserUID})
}

func (h *OrderHandler) ListSellerSales(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)
	h.listTransactions(ctx, model.TransactionFilter{SellerUID: &p.UserUID})
}

// ListAllTransactions is the manager's audit view.
func (h *OrderHandler) ListAllTransactions(ctx *xhttp.RequestCtx) {
	h.listTransactions(ctx, model.TransactionFilter{})
}

func (h *OrderHandler) listTransactions(ctx *xhttp.RequestCtx, f model.TransactionFilter) {
	items, total, err := h.orders.ListTransactions(ctx, f)
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listTransactionsResponse{Items: items, Total: total})
}
