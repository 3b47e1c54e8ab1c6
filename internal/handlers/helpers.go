package handlers

import (
	"encoding/json"
	"errors"
	"strconv"

	"github.com/ospteam/marketplace/internal/services"
	xhttp "github.com/ospteam/marketplace/pkg/http"
)

func writeJSON(ctx *xhttp.RequestCtx, status int, v any) {
	b, _ := json.Marshal(v)
	ctx.Response.Header.Set("Content-Type", "application/json; charset=utf-8")
	ctx.Response.SetStatusCode(status)
	ctx.Response.SetBodyRaw(b)
}

func writeError(ctx *xhttp.RequestCtx, status int, msg string) {
	writeJSON(ctx, status, map[string]string{"error": msg})
}

func query(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.QueryArgs().Peek(key))
}

func form(ctx *xhttp.RequestCtx, key string) string {
	return string(ctx.PostArgs().Peek(key))
}

func formFloat(ctx *xhttp.RequestCtx, key string) (float64, error) {
	return strconv.ParseFloat(form(ctx, key), 64)
}

func formInt(ctx *xhttp.RequestCtx, key string) (int, error) {
	return strconv.Atoi(form(ctx, key))
}

func param(ctx *xhttp.RequestCtx, name string) string {
	v, _ := ctx.UserValue(name).(string)
	return v
}

// redirectServiceError turns a service failure into a flash redirect. The
// error text of the wrapped sentinel is user-presentable by construction.
func redirectServiceError(ctx *xhttp.RequestCtx, backTo string, err error) {
	xhttp.RedirectWithFlash(ctx, backTo, "error", err.Error())
}

// jsonServiceError maps the service error classes onto HTTP statuses for the
// JSON listing endpoints.
func jsonServiceError(ctx *xhttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		writeError(ctx, xhttp.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrValidation):
		writeError(ctx, xhttp.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrState):
		writeError(ctx, xhttp.StatusConflict, err.Error())
	default:
		writeError(ctx, xhttp.StatusInternalServerError, err.Error())
	}
}
