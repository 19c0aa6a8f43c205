package pager

import (
	"encoding/json"
	"fmt"
	"net/http"
)

func (ctx *Context) String(status int, data string, a ...any) error {
	ctx.Res.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Res.WriteHeader(status)
	_, err := fmt.Fprintf(ctx.Res, data, a...)
	return err
}

func (ctx *Context) Ok(data string, a ...any) error {
	return ctx.String(http.StatusOK, data, a...)
}

func (ctx *Context) NoContent() error {
	ctx.Res.WriteHeader(http.StatusNoContent)
	return nil
}

type ErrorResponse struct {
	Code   int    `json:"code"`
	Reason string `json:"reason"`
}

func (ctx *Context) jsonError(status int, data string, a ...any) error {
	return ctx.Json(status, ErrorResponse{
		Code:   status,
		Reason: fmt.Sprintf(data, a...),
	})
}

func (ctx *Context) BadRequest(data string, a ...any) error {
	return ctx.jsonError(http.StatusBadRequest, data, a...)
}

func (ctx *Context) NotFound(data string, a ...any) error {
	return ctx.jsonError(http.StatusNotFound, data, a...)
}

func (ctx *Context) Forbidden(data string, a ...any) error {
	return ctx.jsonError(http.StatusForbidden, data, a...)
}

func (ctx *Context) InternalServerError(data string, a ...any) error {
	return ctx.jsonError(http.StatusInternalServerError, data, a...)
}

func (ctx *Context) Json(status int, data any) error {
	response, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("error marshaling data: %w", err)
	}
	ctx.Res.Header().Set("Content-Type", "application/json")
	ctx.Res.WriteHeader(status)
	_, err = ctx.Res.Write(response)
	return err
}

func (ctx *Context) JsonOk(data any) error {
	return ctx.Json(http.StatusOK, data)
}
