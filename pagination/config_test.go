package pagination_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltegui/pager/pagination"
)

func TestNewFromConfig(t *testing.T) {
	items := makeItems(28)
	pg := pagination.NewFromConfig[int](map[string]any{
		"itemTotalCallback": func(*pagination.Pagination[int]) (int, error) {
			return len(items), nil
		},
		"sliceCallback": func(offset, length int, _ *pagination.Pagination[int]) (pagination.Items[int], error) {
			return pagination.Slice[int](sliceOf(items, offset, length)), nil
		},
		"itemsPerPage": 10,
		"pagesInRange": 5,
	})

	p, err := pg.First()
	require.NoError(t, err)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, []int{1, 2, 3}, p.Pages)
	assert.Equal(t, 3, p.TotalNumberOfPages)
}

func TestNewFromConfigAcceptsNamedCallbacks(t *testing.T) {
	var total pagination.ItemTotalCallback[int] = func(*pagination.Pagination[int]) (int, error) { return 3, nil }
	var slice pagination.SliceCallback[int] = func(int, int, *pagination.Pagination[int]) (pagination.Items[int], error) {
		return pagination.Slice[int]{0, 1, 2}, nil
	}
	pg := pagination.NewFromConfig[int](map[string]any{
		"itemTotalCallback": total,
		"sliceCallback":     slice,
		"itemsPerPage":      int64(2),
		"pagesInRange":      uint8(1),
	})
	assert.NotNil(t, pg.ItemTotalCallback())
	assert.NotNil(t, pg.SliceCallback())
	assert.Equal(t, 2, pg.ItemsPerPage())
	assert.Equal(t, 1, pg.PagesInRange())
}

func TestNewFromConfigDropsInvalidEntries(t *testing.T) {
	pg := pagination.NewFromConfig[int](map[string]any{
		"itemTotalCallback": "not a function",
		"sliceCallback":     func() int { return 0 },
		"itemsPerPage":      "10",
		"pagesInRange":      2.5,
		"unknown":           42,
	})
	assert.Nil(t, pg.ItemTotalCallback())
	assert.Nil(t, pg.SliceCallback())
	assert.Equal(t, pagination.DefaultItemsPerPage, pg.ItemsPerPage())
	assert.Equal(t, pagination.DefaultPagesInRange, pg.PagesInRange())

	_, err := pg.First()
	assert.ErrorIs(t, err, pagination.ErrCallbackNotFound)
}

func TestNewFromConfigWithoutEntries(t *testing.T) {
	for _, config := range []map[string]any{nil, {}} {
		pg := pagination.NewFromConfig[int](config)
		assert.Equal(t, pagination.DefaultItemsPerPage, pg.ItemsPerPage())
		assert.Equal(t, pagination.DefaultPagesInRange, pg.PagesInRange())
	}
}

func TestFilterConfig(t *testing.T) {
	var nilCallback pagination.ItemTotalCallback[int]
	accepted := pagination.FilterConfig[int](map[string]any{
		"itemTotalCallback": nilCallback,
		"sliceCallback":     func(int, int, *pagination.Pagination[string]) (pagination.Items[string], error) { return nil, nil },
		"itemsPerPage":      -1,
		"pagesInRange":      uint64(1 << 63),
		"ItemsPerPage":      3,
	})
	assert.Equal(t, map[string]any{"itemsPerPage": -1}, accepted)
}
