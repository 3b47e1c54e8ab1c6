package handlers

import (
	"github.com/ospteam/marketplace/internal/model"
	"github.com/ospteam/marketplace/internal/session"
	xhttp "github.com/ospteam/marketplace/pkg/http"
)

const (
	sessionCookie = "osp_session"
	principalKey  = "principal"
)

// SessionResolver maps session tokens to principals.
type SessionResolver interface {
	Resolve(token string) (*session.Principal, error)
}

// RequireRole gates a handler behind a signed-in principal of the given role.
// Anything else bounces to /sign_in with a flash notice, matching the
// form-driven surface of the rest of the app.
func RequireRole(auth SessionResolver, role model.Role, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		token := string(ctx.Request.Header.Cookie(sessionCookie))
		if token == "" {
			xhttp.RedirectWithFlash(ctx, "/sign_in", "error", "please sign in first")
			return
		}

		p, err := auth.Resolve(token)
		if err != nil {
			xhttp.RedirectWithFlash(ctx, "/sign_in", "error", "session expired, please sign in again")
			return
		}
		if p.Role != role {
			xhttp.RedirectWithFlash(ctx, "/sign_in", "error", "you are not allowed to visit that page")
			return
		}

		ctx.SetUserValue(principalKey, p)
		next(ctx)
	}
}

// RequireSignedIn gates a handler behind any signed-in principal, for
// role-agnostic routes like profile and password changes.
func RequireSignedIn(auth SessionResolver, next xhttp.RequestHandler) xhttp.RequestHandler {
	return func(ctx *xhttp.RequestCtx) {
		token := string(ctx.Request.Header.Cookie(sessionCookie))
		if token == "" {
			xhttp.RedirectWithFlash(ctx, "/sign_in", "error", "please sign in first")
			return
		}

		p, err := auth.Resolve(token)
		if err != nil {
			xhttp.RedirectWithFlash(ctx, "/sign_in", "error", "session expired, please sign in again")
			return
		}

		ctx.SetUserValue(principalKey, p)
		next(ctx)
	}
}

// principalFrom returns the principal injected by the gate. Handlers behind
// RequireRole can rely on it being present.
func principalFrom(ctx *xhttp.RequestCtx) *session.Principal {
	p, _ := ctx.UserValue(principalKey).(*session.Principal)
	return p
}
