package pagination

import (
	"fmt"
	"math"
	"slices"

	"github.com/rs/zerolog"
)

const (
	DefaultItemsPerPage = 10
	DefaultPagesInRange = 5
	DefaultPageNumber   = 1

	// Unbounded as items per page disables pagination: the slice callback
	// is asked for every item.
	Unbounded = -1

	unboundedLength = 999999999
)

// ItemTotalCallback returns the total number of items of the collection.
type ItemTotalCallback[T any] func(p *Pagination[T]) (int, error)

// SliceCallback returns length items of the collection starting at offset.
type SliceCallback[T any] func(offset, length int, p *Pagination[T]) (Items[T], error)

// QueryCallback runs before and after each of the count and slice queries.
type QueryCallback[T any] func(pg *Paginator[T], p *Pagination[T])

// Paginator splits a collection in pages. The collection is only known
// through the item total and slice callbacks. A Paginator is meant to be
// configured once and reused, but not from several goroutines at once:
// query callbacks are allowed to change its configuration.
type Paginator[T any] struct {
	itemTotalCallback   ItemTotalCallback[T]
	sliceCallback       SliceCallback[T]
	beforeQueryCallback QueryCallback[T]
	afterQueryCallback  QueryCallback[T]
	itemsPerPage        int
	pagesInRange        int
	log                 zerolog.Logger
}

func New[T any]() *Paginator[T] {
	return &Paginator[T]{
		itemsPerPage: DefaultItemsPerPage,
		pagesInRange: DefaultPagesInRange,
		log:          zerolog.Nop(),
	}
}

// First paginates the first page.
func (pg *Paginator[T]) First() (*Pagination[T], error) {
	return pg.Paginate(DefaultPageNumber)
}

func (pg *Paginator[T]) Paginate(currentPageNumber int) (*Pagination[T], error) {
	if pg.itemTotalCallback == nil {
		return nil, fmt.Errorf("%w: item total callback is not set, set it using SetItemTotalCallback", ErrCallbackNotFound)
	}
	if pg.sliceCallback == nil {
		return nil, fmt.Errorf("%w: slice callback is not set, set it using SetSliceCallback", ErrCallbackNotFound)
	}
	if currentPageNumber <= 0 {
		return nil, fmt.Errorf("%w: current page number must have a value of 1 or more, %d given", ErrInvalidPageNumber, currentPageNumber)
	}

	itemTotalCallback := pg.itemTotalCallback
	sliceCallback := pg.sliceCallback
	beforeQueryCallback := pg.prepareBeforeQueryCallback()
	afterQueryCallback := pg.prepareAfterQueryCallback()

	pagination := newPagination[T]()

	beforeQueryCallback(pg, pagination)
	totalNumberOfItems, err := itemTotalCallback(pagination)
	if err != nil {
		return nil, err
	}
	afterQueryCallback(pg, pagination)

	if pg.itemsPerPage == 0 {
		return nil, ErrZeroItemsPerPage
	}
	numberOfPages := ceilDiv(totalNumberOfItems, pg.itemsPerPage)
	pagesInRange := min(pg.pagesInRange, numberOfPages)
	pages := determinePageRange(currentPageNumber, pagesInRange, numberOfPages)
	offset := (currentPageNumber - 1) * pg.itemsPerPage

	beforeQueryCallback(pg, pagination)
	var items Items[T]
	if pg.itemsPerPage == Unbounded {
		items, err = sliceCallback(0, unboundedLength, pagination)
	} else {
		items, err = sliceCallback(offset, pg.itemsPerPage, pagination)
	}
	if err != nil {
		return nil, err
	}
	pagination.Items, err = materialize(items)
	if err != nil {
		return nil, err
	}
	afterQueryCallback(pg, pagination)

	pagination.Pages = pages
	pagination.TotalNumberOfPages = numberOfPages
	pagination.CurrentPageNumber = currentPageNumber
	pagination.FirstPageNumber = 1
	pagination.LastPageNumber = numberOfPages
	pagination.PreviousPageNumber = determinePreviousPageNumber(currentPageNumber)
	pagination.NextPageNumber = determineNextPageNumber(currentPageNumber, numberOfPages)
	pagination.ItemsPerPage = pg.itemsPerPage
	pagination.TotalNumberOfItems = totalNumberOfItems
	pagination.FirstPageNumberInRange = slices.Min(pages)
	pagination.LastPageNumberInRange = slices.Max(pages)

	pg.log.Debug().
		Int("page", currentPageNumber).
		Int("items_per_page", pagination.ItemsPerPage).
		Int("total_items", totalNumberOfItems).
		Int("total_pages", numberOfPages).
		Int("offset", offset).
		Int("items", len(pagination.Items)).
		Msg("paginated collection")

	return pagination, nil
}

func (pg *Paginator[T]) ItemTotalCallback() ItemTotalCallback[T] {
	return pg.itemTotalCallback
}

func (pg *Paginator[T]) SetItemTotalCallback(callback ItemTotalCallback[T]) {
	pg.itemTotalCallback = callback
}

func (pg *Paginator[T]) SliceCallback() SliceCallback[T] {
	return pg.sliceCallback
}

func (pg *Paginator[T]) SetSliceCallback(callback SliceCallback[T]) {
	pg.sliceCallback = callback
}

func (pg *Paginator[T]) BeforeQueryCallback() QueryCallback[T] {
	return pg.beforeQueryCallback
}

func (pg *Paginator[T]) SetBeforeQueryCallback(callback QueryCallback[T]) {
	pg.beforeQueryCallback = callback
}

func (pg *Paginator[T]) AfterQueryCallback() QueryCallback[T] {
	return pg.afterQueryCallback
}

func (pg *Paginator[T]) SetAfterQueryCallback(callback QueryCallback[T]) {
	pg.afterQueryCallback = callback
}

func (pg *Paginator[T]) ItemsPerPage() int {
	return pg.itemsPerPage
}

func (pg *Paginator[T]) SetItemsPerPage(itemsPerPage int) {
	pg.itemsPerPage = itemsPerPage
}

func (pg *Paginator[T]) PagesInRange() int {
	return pg.pagesInRange
}

func (pg *Paginator[T]) SetPagesInRange(pagesInRange int) {
	pg.pagesInRange = pagesInRange
}

func (pg *Paginator[T]) SetLogger(log zerolog.Logger) {
	pg.log = log
}

func (pg *Paginator[T]) prepareBeforeQueryCallback() QueryCallback[T] {
	if pg.beforeQueryCallback != nil {
		return pg.beforeQueryCallback
	}
	return func(*Paginator[T], *Pagination[T]) {}
}

func (pg *Paginator[T]) prepareAfterQueryCallback() QueryCallback[T] {
	if pg.afterQueryCallback != nil {
		return pg.afterQueryCallback
	}
	return func(*Paginator[T], *Pagination[T]) {}
}

func ceilDiv(a, b int) int {
	return int(math.Ceil(float64(a) / float64(b)))
}

// determinePageRange returns the window of pagesInRange page numbers
// around currentPageNumber, pinned to the end when it would go past
// numberOfPages. The window is not clamped against out of range pages.
func determinePageRange(currentPageNumber, pagesInRange, numberOfPages int) []int {
	change := ceilDiv(pagesInRange, 2)
	if (currentPageNumber - change) > (numberOfPages - pagesInRange) {
		return span(numberOfPages-pagesInRange+1, numberOfPages)
	}
	if (currentPageNumber - change) < 0 {
		change = currentPageNumber
	}
	offset := currentPageNumber - change
	return span(offset+1, offset+pagesInRange)
}

// span returns every integer from start to end, both included. It counts
// down when start is greater than end, so it is never empty.
func span(start, end int) []int {
	step := 1
	n := end - start + 1
	if start > end {
		step = -1
		n = start - end + 1
	}
	out := make([]int, n)
	for i := range out {
		out[i] = start + i*step
	}
	return out
}

func determinePreviousPageNumber(currentPageNumber int) *int {
	if currentPageNumber-1 > 0 {
		previous := currentPageNumber - 1
		return &previous
	}
	return nil
}

func determineNextPageNumber(currentPageNumber, numberOfPages int) *int {
	if currentPageNumber+1 <= numberOfPages {
		next := currentPageNumber + 1
		return &next
	}
	return nil
}
