package pagination

import (
	"iter"
	"slices"
)

// Pagination is the result of a Paginator.Paginate call. It holds the items
// of the requested page and the page numbers needed to draw page links.
type Pagination[T any] struct {
	Items []T   `json:"items" yaml:"items"`
	Pages []int `json:"pages" yaml:"pages"`

	TotalNumberOfPages int  `json:"total_number_of_pages" yaml:"total_number_of_pages"`
	CurrentPageNumber  int  `json:"current_page_number" yaml:"current_page_number"`
	FirstPageNumber    int  `json:"first_page_number" yaml:"first_page_number"`
	LastPageNumber     int  `json:"last_page_number" yaml:"last_page_number"`
	PreviousPageNumber *int `json:"previous_page_number,omitempty" yaml:"previous_page_number,omitempty"`
	NextPageNumber     *int `json:"next_page_number,omitempty" yaml:"next_page_number,omitempty"`

	ItemsPerPage       int `json:"items_per_page" yaml:"items_per_page"`
	TotalNumberOfItems int `json:"total_number_of_items" yaml:"total_number_of_items"`

	FirstPageNumberInRange int `json:"first_page_number_in_range" yaml:"first_page_number_in_range"`
	LastPageNumberInRange  int `json:"last_page_number_in_range" yaml:"last_page_number_in_range"`

	// Meta is written by the callbacks while the page is being built.
	Meta map[string]any `json:"meta,omitempty" yaml:"meta,omitempty"`
}

func newPagination[T any]() *Pagination[T] {
	return &Pagination[T]{
		Items: []T{},
		Pages: []int{},
		Meta:  map[string]any{},
	}
}

// Count returns the number of items in the page.
func (p *Pagination[T]) Count() int {
	return len(p.Items)
}

// All iterates over the items of the page in order. Every call starts
// again from the first item.
func (p *Pagination[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, item := range p.Items {
			if !yield(i, item) {
				return
			}
		}
	}
}

func (p *Pagination[T]) Previous() (int, bool) {
	if p.PreviousPageNumber == nil {
		return 0, false
	}
	return *p.PreviousPageNumber, true
}

func (p *Pagination[T]) Next() (int, bool) {
	if p.NextPageNumber == nil {
		return 0, false
	}
	return *p.NextPageNumber, true
}

// Items is what a SliceCallback hands back: either a concrete Slice or a
// Lazy sequence that is drained once the callback returns.
type Items[T any] interface {
	All() iter.Seq[T]
}

type Slice[T any] []T

func (s Slice[T]) All() iter.Seq[T] {
	return slices.Values(s)
}

// Lazy yields items paired with a read error. The first non nil error
// stops the drain and is returned by Paginate as is.
type Lazy[T any] iter.Seq2[T, error]

// All yields the items read before the first error.
func (l Lazy[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for item, err := range l {
			if err != nil || !yield(item) {
				return
			}
		}
	}
}

func (l Lazy[T]) collect() ([]T, error) {
	out := []T{}
	if l == nil {
		return out, nil
	}
	for item, err := range l {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// materialize turns items into the slice stored in a Pagination. A Slice is
// clipped, so appending to the result never writes into the collection it
// came from.
func materialize[T any](items Items[T]) ([]T, error) {
	var out []T
	switch v := items.(type) {
	case nil:
	case Slice[T]:
		out = slices.Clip([]T(v))
	case Lazy[T]:
		return v.collect()
	default:
		out = slices.Collect(items.All())
	}
	if out == nil {
		return []T{}, nil
	}
	return out, nil
}
