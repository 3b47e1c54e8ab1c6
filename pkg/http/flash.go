package xhttp

import (
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
)

const flashCookie = "osp_flash"

// Flash is a one-shot user-visible notice carried across a redirect, the
// cookie equivalent of server-side flash messages.
type Flash struct {
	Level   string `json:"level"` // "info" or "error"
	Message string `json:"message"`
}

// SetFlash stores a notice for the next request.
func SetFlash(ctx *RequestCtx, level, message string) {
	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(flashCookie)
	c.SetValue(url.QueryEscape(level + "|" + message))
	c.SetPath("/")
	c.SetHTTPOnly(true)
	c.SetExpire(time.Now().Add(5 * time.Minute))
	ctx.Response.Header.SetCookie(c)
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(ctx *RequestCtx) (Flash, bool) {
	raw := string(ctx.Request.Header.Cookie(flashCookie))
	if raw == "" {
		return Flash{}, false
	}

	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)
	c.SetKey(flashCookie)
	c.SetPath("/")
	c.SetExpire(fasthttp.CookieExpireDelete)
	ctx.Response.Header.SetCookie(c)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return Flash{}, false
	}
	level, message, ok := strings.Cut(decoded, "|")
	if !ok {
		return Flash{Level: "info", Message: decoded}, true
	}
	return Flash{Level: level, Message: message}, true
}

// RedirectWithFlash sends a 303 to location carrying a flash notice.
func RedirectWithFlash(ctx *RequestCtx, location, level, message string) {
	SetFlash(ctx, level, message)
	ctx.Redirect(location, StatusSeeOther)
}
