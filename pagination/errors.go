package pagination

import "errors"

var (
	ErrCallbackNotFound  = errors.New("callback not found")
	ErrInvalidPageNumber = errors.New("invalid page number")
	ErrZeroItemsPerPage  = errors.New("items per page cannot be zero")
)
