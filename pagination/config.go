package pagination

import (
	"math"
	"reflect"
)

// Keys recognized by NewFromConfig.
const (
	KeyItemTotalCallback = "itemTotalCallback"
	KeySliceCallback     = "sliceCallback"
	KeyItemsPerPage      = "itemsPerPage"
	KeyPagesInRange      = "pagesInRange"
)

// NewFromConfig builds a Paginator from a configuration map, for example
// one decoded from a config file. Entries that FilterConfig rejects are
// ignored and the defaults stay in place.
//
//	pg := pagination.NewFromConfig[Fact](map[string]any{
//		"itemTotalCallback": countFacts,
//		"sliceCallback":     sliceFacts,
//		"itemsPerPage":      10,
//		"pagesInRange":      5,
//	})
func NewFromConfig[T any](config map[string]any) *Paginator[T] {
	pg := New[T]()
	accepted := FilterConfig[T](config)
	if cb, ok := accepted[KeyItemTotalCallback]; ok {
		pg.SetItemTotalCallback(cb.(ItemTotalCallback[T]))
	}
	if cb, ok := accepted[KeySliceCallback]; ok {
		pg.SetSliceCallback(cb.(SliceCallback[T]))
	}
	if n, ok := accepted[KeyItemsPerPage]; ok {
		pg.SetItemsPerPage(n.(int))
	}
	if n, ok := accepted[KeyPagesInRange]; ok {
		pg.SetPagesInRange(n.(int))
	}
	return pg
}

// FilterConfig returns the subset of config that a Paginator[T] accepts.
// Unknown keys and values of the wrong kind are dropped. Callbacks are
// returned as their named types and integers as int.
func FilterConfig[T any](config map[string]any) map[string]any {
	accepted := map[string]any{}
	for key, value := range config {
		switch key {
		case KeyItemTotalCallback:
			if cb, ok := asItemTotalCallback[T](value); ok {
				accepted[key] = cb
			}
		case KeySliceCallback:
			if cb, ok := asSliceCallback[T](value); ok {
				accepted[key] = cb
			}
		case KeyItemsPerPage, KeyPagesInRange:
			if n, ok := asInt(value); ok {
				accepted[key] = n
			}
		}
	}
	return accepted
}

func asItemTotalCallback[T any](value any) (ItemTotalCallback[T], bool) {
	switch cb := value.(type) {
	case ItemTotalCallback[T]:
		return cb, cb != nil
	case func(*Pagination[T]) (int, error):
		return cb, cb != nil
	}
	return nil, false
}

func asSliceCallback[T any](value any) (SliceCallback[T], bool) {
	switch cb := value.(type) {
	case SliceCallback[T]:
		return cb, cb != nil
	case func(int, int, *Pagination[T]) (Items[T], error):
		return cb, cb != nil
	}
	return nil, false
}

func asInt(value any) (int, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := v.Int()
		if i < math.MinInt || i > math.MaxInt {
			return 0, false
		}
		return int(i), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := v.Uint()
		if u > math.MaxInt {
			return 0, false
		}
		return int(u), true
	default:
		return 0, false
	}
}
