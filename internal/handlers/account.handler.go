package handlers

import (
	"context"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/session"
	xhttp "github.com/ospteam/marketplace/pkg/http"
)

type AccountService interface {
	Create(ctx context.Context, p model.AccountCreateRequest) (*model.User, error)
	Get(ctx context.Context, uid string) (*model.User, error)
	List(ctx context.Context, f model.UserFilter) ([]*model.User, int64, error)
	ChangeProfile(ctx context.Context, uid string, p model.ProfileUpdateRequest) error
	ChangeAddress(ctx context.Context, uid string, p model.AddressCreateRequest) error
	ChangePassword(ctx context.Context, uid, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, uid string, role model.Role) error
	DeleteAddress(ctx context.Context, userUID string) error
}

type AuthService interface {
	SignIn(ctx context.Context, uid, password string) (string, *session.Principal, error)
	Resolve(token string) (*session.Principal, error)
	SignOut(ctx context.Context, token string) error
}

type AccountHandler struct {
	accounts         AccountService
	auth             AuthService
	managerSignupKey string
	sessionTTL       time.Duration
}

func NewAccountHandler(accounts AccountService, auth AuthService, managerSignupKey string, sessionTTL time.Duration) *AccountHandler {
	return &AccountHandler{
		accounts:         accounts,
		auth:             auth,
		managerSignupKey: managerSignupKey,
		sessionTTL:       sessionTTL,
	}
}

func RegisterAccountRoutes(r *router.Router, h *AccountHandler) {
	r.POST("/sign_up", h.SignUp)
	r.POST("/manager_sign_up", h.ManagerSignUp)
	r.POST("/sign_in", h.SignIn)
	r.POST("/sign_out", h.SignOut)

	any := r.Group("/account")
	any.POST("/profile", RequireSignedIn(h.auth, h.ChangeProfile))
	any.POST("/password", RequireSignedIn(h.auth, h.ChangePassword))
	any.POST("/address", RequireSignedIn(h.auth, h.ChangeAddress))
	any.POST("/address/delete", RequireSignedIn(h.auth, h.DeleteAddress))
}

func RegisterManagerAccountRoutes(g *router.Group, auth AuthService, h *AccountHandler) {
	g.GET("/users", RequireRole(auth, model.RoleManager, h.ListUsers))
	g.POST("/users/{uid}/delete", RequireRole(auth, model.RoleManager, h.DeleteUser))
}

func (h *AccountHandler) signUpRequest(ctx *xhttp.RequestCtx, role model.Role) model.AccountCreateRequest {
	telephone, _ := formInt(ctx, "telephone")
	pincode, _ := formInt(ctx, "pincode")
	return model.AccountCreateRequest{
		Role:      role,
		Password:  form(ctx, "password"),
		Name:      form(ctx, "name"),
		Email:     form(ctx, "email"),
		Telephone: int64(telephone),
		Address: model.AddressCreateRequest{
			ResidenceNumber: form(ctx, "residence_number"),
			Street:          form(ctx, "street"),
			Locality:        form(ctx, "locality"),
			Pincode:         pincode,
			State:           form(ctx, "state"),
			City:            form(ctx, "city"),
		},
	}
}

// SignUp provisions a seller or buyer from the public sign-up form.
func (h *AccountHandler) SignUp(ctx *xhttp.RequestCtx) {
	role := model.Role(form(ctx, "role"))
	if role != model.RoleSeller && role != model.RoleBuyer {
		xhttp.RedirectWithFlash(ctx, "/sign_up", "error", "choose seller or buyer")
		return
	}

	u, err := h.accounts.Create(ctx, h.signUpRequest(ctx, role))
	if err != nil {
		redirectServiceError(ctx, "/sign_up", err)
		return
	}

	xhttp.RedirectWithFlash(ctx, "/sign_in", "info", "account created, your id is "+u.UID)
}

// ManagerSignUp provisions a manager. The form must carry the deployment's
// signup key; there is no open manager registration.
func (h *AccountHandler) ManagerSignUp(ctx *xhttp.RequestCtx) {
	if h.managerSignupKey == "" || form(ctx, "signup_key") != h.managerSignupKey {
		xhttp.RedirectWithFlash(ctx, "/sign_in", "error", "invalid manager signup key")
		return
	}

	req := h.signUpRequest(ctx, model.RoleManager)
	req.Gender = model.Gender(form(ctx, "gender"))
	if dob, err := time.Parse("2006-01-02", form(ctx, "date_of_birth")); err == nil {
		req.DateOfBirth = &dob
	}

	u, err := h.accounts.Create(ctx, req)
	if err != nil {
		redirectServiceError(ctx, "/manager_sign_up", err)
		return
	}

	xhttp.RedirectWithFlash(ctx, "/sign_in", "info", "manager account created, your id is "+u.UID)
}

func (h *AccountHandler) SignIn(ctx *xhttp.RequestCtx) {
	token, p, err := h.auth.SignIn(ctx, form(ctx, "uid"), form(ctx, "password"))
	if err != nil {
		redirectServiceError(ctx, "/sign_in", err)
		return
	}

	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(sessionCookie)
	c.SetValue(token)
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(time.Now().Add(h.sessionTTL))
	ctx.Response.Header.SetCookie(c)

	xhttp.RedirectWithFlash(ctx, "/"+string(p.Role), "info", "welcome back, "+p.Name)
}

func (h *AccountHandler) SignOut(ctx *xhttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie(sessionCookie))
	if token != "" {
		if err := h.auth.SignOut(ctx, token); err != nil {
			redirectServiceError(ctx, "/sign_in", err)
			return
		}
	}

	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(sessionCookie)
	c.SetPath("/")
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)

	xhttp.RedirectWithFlash(ctx, "/sign_in", "info", "signed out")
}

func (h *AccountHandler) ChangeProfile(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	var req model.ProfileUpdateRequest
	if v := form(ctx, "name"); v != "" {
		req.Name = &v
	}
	if v := form(ctx, "email"); v != "" {
		req.Email = &v
	}
	if v := form(ctx, "telephone"); v != "" {
		if n, err := formInt(ctx, "telephone"); err == nil {
			t := int64(n)
			req.Telephone = &t
		}
	}

	if err := h.accounts.ChangeProfile(ctx, p.UserUID, req); err != nil {
		redirectServiceError(ctx, "/account/profile", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/"+string(p.Role), "info", "profile updated")
}

func (h *AccountHandler) ChangeAddress(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	pincode, _ := formInt(ctx, "pincode")
	req := model.AddressCreateRequest{
		ResidenceNumber: form(ctx, "residence_number"),
		Street:          form(ctx, "street"),
		Locality:        form(ctx, "locality"),
		Pincode:         pincode,
		State:           form(ctx, "state"),
		City:            form(ctx, "city"),
	}

	if err := h.accounts.ChangeAddress(ctx, p.UserUID, req); err != nil {
		redirectServiceError(ctx, "/account/address", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/"+string(p.Role), "info", "address updated")
}

func (h *AccountHandler) ChangePassword(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	err := h.accounts.ChangePassword(ctx, p.UserUID, form(ctx, "old_password"), form(ctx, "new_password"))
	if err != nil {
		redirectServiceError(ctx, "/account/password", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/"+string(p.Role), "info", "password changed")
}

// DeleteAddress removes the signed-in user's own address. The target is
// derived from the principal, not from the form.
func (h *AccountHandler) DeleteAddress(ctx *xhttp.RequestCtx) {
	p := principalFrom(ctx)

	if err := h.accounts.DeleteAddress(ctx, p.UserUID); err != nil {
		redirectServiceError(ctx, "/"+string(p.Role), err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/"+string(p.Role), "info", "address removed")
}

type listUsersResponse struct {
	Items []*model.User `json:"items"`
	Total int64         `json:"total"`
}

func (h *AccountHandler) ListUsers(ctx *xhttp.RequestCtx) {
	var f model.UserFilter
	if v := query(ctx, "role"); v != "" {
		role := model.Role(v)
		f.Role = &role
	}

	items, total, err := h.accounts.List(ctx, f)
	if err != nil {
		jsonServiceError(ctx, err)
		return
	}
	writeJSON(ctx, xhttp.StatusOK, listUsersResponse{Items: items, Total: total})
}

// DeleteUser removes a seller or buyer and everything hanging off them.
func (h *AccountHandler) DeleteUser(ctx *xhttp.RequestCtx) {
	uid := param(ctx, "uid")
	role := model.Role(form(ctx, "role"))

	if err := h.accounts.DeleteAccount(ctx, uid, role); err != nil {
		redirectServiceError(ctx, "/manager", err)
		return
	}
	xhttp.RedirectWithFlash(ctx, "/manager", "info", "account removed")
}
