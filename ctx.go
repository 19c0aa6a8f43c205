package pager

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/deltegui/pager/localizer"
	"github.com/deltegui/pager/pagination"
	"github.com/deltegui/pager/validator"
)

type Context struct {
	Req    *http.Request
	Res    http.ResponseWriter
	params httprouter.Params

	locstore *localizer.Store
	validate validator.PlaygroundValidator
	log      zerolog.Logger

	maxItemsPerPage int
}

// Context returns the request context. Collaborators doing I/O on behalf
// of a handler should use it.
func (ctx *Context) Context() context.Context {
	return ctx.Req.Context()
}

func (ctx *Context) Logger() zerolog.Logger {
	return ctx.log
}

func (ctx *Context) GetURLParam(name string) string {
	return ctx.params.ByName(name)
}

func (ctx *Context) GetQueryParam(name string) string {
	return ctx.Req.URL.Query().Get(name)
}

func (ctx *Context) HaveLocalizer() bool {
	return ctx.locstore != nil
}

// GetLocalizer returns the messages of file for the language of the
// request. Without a store it returns an empty Localizer, which echoes
// keys back.
func (ctx *Context) GetLocalizer(file string) (localizer.Localizer, error) {
	if !ctx.HaveLocalizer() {
		return localizer.Localizer{}, nil
	}
	return ctx.locstore.GetUsingRequest(file, ctx.Req)
}

func (ctx *Context) ChangeLanguage(to string) {
	localizer.CreateCookie(ctx.Res, to)
}

func (ctx *Context) Validate(s any) ([]validator.ValidationError, error) {
	return ctx.validate.Validate(s)
}

// PaginationToVM builds the view model of p with the pagination messages
// in the language of the request.
func PaginationToVM[T any](ctx *Context, p *pagination.Pagination[T]) (pagination.ViewModel, error) {
	loc, err := ctx.GetLocalizer(localizer.PaginationKey)
	if err != nil {
		return pagination.ViewModel{}, err
	}
	return pagination.ToVM(p, loc), nil
}
