package pager

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/deltegui/pager/pagination"
	"github.com/deltegui/pager/validator"
)

const (
	PageParam    = "page"
	PerPageParam = "per_page"

	TotalCountHeader = "X-Total-Count"
	LinkHeader       = "Link"
)

// PageRequest is what a client asks for. PerPage is nil when the client
// keeps the paginator default.
type PageRequest struct {
	Page    int  `html:"page"`
	PerPage *int `html:"per_page" validate:"omitnil,min=1"`
}

// ReadPageRequest reads the page from the ':page' URL param or the 'page'
// query param, in that order, and the optional 'per_page' query param.
func ReadPageRequest(ctx *Context) (PageRequest, error) {
	req := PageRequest{Page: pagination.DefaultPageNumber}
	if err := ctx.ParseForm(&req); err != nil {
		return req, err
	}
	if param := ctx.GetURLParam(PageParam); param != "" {
		page, err := strconv.Atoi(param)
		if err != nil {
			return req, fmt.Errorf("%w: '%s' cannot be '%s'", ErrInvalidFormValue, PageParam, param)
		}
		req.Page = page
	}
	errs, err := ctx.Validate(req)
	if err != nil {
		return req, err
	}
	if err := validator.Errors(errs); err != nil {
		return req, fmt.Errorf("%w: %w", ErrInvalidFormValue, err)
	}
	if req.PerPage != nil && *req.PerPage > ctx.maxItemsPerPage {
		return req, fmt.Errorf("%w: '%s' cannot exceed %d", ErrInvalidFormValue, PerPageParam, ctx.maxItemsPerPage)
	}
	return req, nil
}

// PaginatorBuilder creates the paginator for one request. Paginators keep
// state, so a new one is needed per request.
type PaginatorBuilder[T any] func(ctx *Context) (*pagination.Paginator[T], error)

// Paginate serves the page asked by the client as JSON, with the total
// number of items in X-Total-Count and the page links in a Link header.
func Paginate[T any](build PaginatorBuilder[T]) Handler {
	return func(ctx *Context) error {
		req, err := ReadPageRequest(ctx)
		if err != nil {
			return ctx.BadRequest("%s", err)
		}
		pg, err := build(ctx)
		if err != nil {
			return fmt.Errorf("cannot build paginator: %w", err)
		}
		if req.PerPage != nil {
			pg.SetItemsPerPage(*req.PerPage)
		}
		result, err := pg.Paginate(req.Page)
		if errors.Is(err, pagination.ErrInvalidPageNumber) {
			return ctx.BadRequest("%s", err)
		}
		if err != nil {
			return err
		}
		ctx.Res.Header().Set(TotalCountHeader, strconv.Itoa(result.TotalNumberOfItems))
		if links := pageLinks(ctx, result); links != "" {
			ctx.Res.Header().Set(LinkHeader, links)
		}
		return ctx.JsonOk(result)
	}
}

func pageLinks[T any](ctx *Context, p *pagination.Pagination[T]) string {
	if p.TotalNumberOfPages < 1 {
		return ""
	}
	base := ctx.Req.URL.Path
	if param := ctx.GetURLParam(PageParam); param != "" {
		base = strings.TrimSuffix(base, "/"+param)
	}
	query := ctx.Req.URL.Query()
	link := func(page int, rel string) string {
		query.Set(PageParam, strconv.Itoa(page))
		u := url.URL{Path: base, RawQuery: query.Encode()}
		return fmt.Sprintf("<%s>; rel=\"%s\"", u.String(), rel)
	}

	links := []string{link(p.FirstPageNumber, "first")}
	if previous, ok := p.Previous(); ok {
		links = append(links, link(previous, "prev"))
	}
	if next, ok := p.Next(); ok {
		links = append(links, link(next, "next"))
	}
	links = append(links, link(p.LastPageNumber, "last"))
	return strings.Join(links, ", ")
}
