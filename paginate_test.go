package pager_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltegui/pager"
	"github.com/deltegui/pager/pagination"
)

func numbers(n int) []int {
	items := make([]int, n)
	for i := range items {
		items[i] = i + 1
	}
	return items
}

func numbersPaginator(items []int) pager.PaginatorBuilder[int] {
	return func(*pager.Context) (*pagination.Paginator[int], error) {
		pg := pagination.New[int]()
		pg.SetItemTotalCallback(func(*pagination.Pagination[int]) (int, error) {
			return len(items), nil
		})
		pg.SetSliceCallback(func(offset, length int, _ *pagination.Pagination[int]) (pagination.Items[int], error) {
			offset = min(offset, len(items))
			end := min(offset+length, len(items))
			return pagination.Slice[int](items[offset:end]), nil
		})
		return pg, nil
	}
}

func newItemsRouter(build pager.PaginatorBuilder[int]) *pager.Router {
	r := pager.NewRouterWithConfig(pager.Config{MaxItemsPerPage: 100})
	r.Get("/items", pager.Paginate(build))
	r.Get("/items/:page", pager.Paginate(build))
	return r
}

func serve(r http.Handler, target string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	r.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
	return recorder
}

func decodePage(t *testing.T, recorder *httptest.ResponseRecorder) pagination.Pagination[int] {
	t.Helper()
	var page pagination.Pagination[int]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &page))
	return page
}

func TestPaginateServesPages(t *testing.T) {
	tt := []struct {
		name    string
		target  string
		items   []int
		current int
		link    string
	}{
		{
			name:    "default page",
			target:  "/items",
			items:   numbers(10),
			current: 1,
			link:    `</items?page=1>; rel="first", </items?page=2>; rel="next", </items?page=3>; rel="last"`,
		},
		{
			name:    "page from url param",
			target:  "/items/2",
			items:   numbers(20)[10:],
			current: 2,
			link:    `</items?page=1>; rel="first", </items?page=1>; rel="prev", </items?page=3>; rel="next", </items?page=3>; rel="last"`,
		},
		{
			name:    "page and size from query",
			target:  "/items?page=3&per_page=5",
			items:   numbers(15)[10:],
			current: 3,
			link: `</items?page=1&per_page=5>; rel="first", </items?page=2&per_page=5>; rel="prev", ` +
				`</items?page=4&per_page=5>; rel="next", </items?page=5&per_page=5>; rel="last"`,
		},
		{
			name:    "last page",
			target:  "/items?page=3",
			items:   numbers(23)[20:],
			current: 3,
			link:    `</items?page=1>; rel="first", </items?page=2>; rel="prev", </items?page=3>; rel="last"`,
		},
	}
	r := newItemsRouter(numbersPaginator(numbers(23)))
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serve(r, tc.target)
			require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
			assert.Equal(t, "23", recorder.Header().Get(pager.TotalCountHeader))
			assert.Equal(t, tc.link, recorder.Header().Get(pager.LinkHeader))

			page := decodePage(t, recorder)
			assert.Equal(t, tc.items, page.Items)
			assert.Equal(t, tc.current, page.CurrentPageNumber)
		})
	}
}

func TestPaginateEmptyCollection(t *testing.T) {
	r := newItemsRouter(numbersPaginator(nil))
	recorder := serve(r, "/items")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "0", recorder.Header().Get(pager.TotalCountHeader))
	assert.Empty(t, recorder.Header().Get(pager.LinkHeader))

	page := decodePage(t, recorder)
	assert.Empty(t, page.Items)
	assert.Equal(t, []int{1, 0}, page.Pages)
}

func TestPaginateRejectsBadRequests(t *testing.T) {
	tt := []struct {
		name   string
		target string
	}{
		{name: "zero page", target: "/items?page=0"},
		{name: "negative page", target: "/items/-3"},
		{name: "page is not a number", target: "/items/abc"},
		{name: "zero per page", target: "/items?per_page=0"},
		{name: "unbounded per page", target: "/items?per_page=-1"},
		{name: "per page over max", target: "/items?per_page=101"},
	}
	r := newItemsRouter(numbersPaginator(numbers(23)))
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serve(r, tc.target)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			var res pager.ErrorResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))
			assert.Equal(t, http.StatusBadRequest, res.Code)
			assert.NotEmpty(t, res.Reason)
		})
	}
}

func TestPaginateFailures(t *testing.T) {
	errDown := errors.New("database is down")
	tt := []struct {
		name  string
		build pager.PaginatorBuilder[int]
	}{
		{
			name: "builder fails",
			build: func(*pager.Context) (*pagination.Paginator[int], error) {
				return nil, errDown
			},
		},
		{
			name: "item total fails",
			build: func(ctx *pager.Context) (*pagination.Paginator[int], error) {
				pg, _ := numbersPaginator(nil)(ctx)
				pg.SetItemTotalCallback(func(*pagination.Pagination[int]) (int, error) {
					return 0, errDown
				})
				return pg, nil
			},
		},
		{
			name: "missing callbacks",
			build: func(*pager.Context) (*pagination.Paginator[int], error) {
				return pagination.New[int](), nil
			},
		},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			recorder := serve(newItemsRouter(tc.build), "/items")
			assert.Equal(t, http.StatusInternalServerError, recorder.Code)
			assert.JSONEq(t, `{"code":500,"reason":"internal server error"}`, recorder.Body.String())
		})
	}
}
