// Package pagination splits any ordered collection in pages.
//
// A Paginator does not know where the items live. It asks an
// ItemTotalCallback for the number of items and a SliceCallback for the
// items of the requested page, and computes everything else:
//
//	pg := pagination.New[string]()
//	pg.SetItemTotalCallback(func(*pagination.Pagination[string]) (int, error) {
//		return len(names), nil
//	})
//	pg.SetSliceCallback(func(offset, length int, _ *pagination.Pagination[string]) (pagination.Items[string], error) {
//		offset = min(offset, len(names))
//		end := min(offset+length, len(names))
//		return pagination.Slice[string](names[offset:end]), nil
//	})
//	page, err := pg.Paginate(2)
//
// The resulting Pagination carries the page items, the window of page
// numbers around the current page (Pages) and the first, last, previous
// and next page numbers.
//
// Setting items per page to Unbounded returns every item in a single
// call. The page count is then negative and kept as computed.
package pagination
