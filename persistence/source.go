package persistence

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/deltegui/pager/pagination"
)

// Meta keys written by a Source into the pagination it serves.
const (
	MetaCountSQL = "count_sql"
	MetaSliceSQL = "slice_sql"
)

type RowScanner[T any] func(rows *sqlx.Rows) (T, error)

// Source serves the item total and slice callbacks of a paginator from a
// SQL query. The query must not have its own order by, limit or offset
// clauses. Named parameters (:name) are bound from params.
type Source[T any] struct {
	db      *sqlx.DB
	query   string
	orderBy string
	params  map[string]any
	scan    RowScanner[T]
	log     zerolog.Logger
}

// NewSource creates a Source that scans every row into a T using its db
// struct tags.
func NewSource[T any](db *sqlx.DB, query, orderBy string, params map[string]any) Source[T] {
	return Source[T]{
		db:      db,
		query:   query,
		orderBy: orderBy,
		params:  params,
		scan:    structScan[T],
		log:     zerolog.Nop(),
	}
}

// NewMapSource creates a Source that scans every row into a column name to
// value map. Useful when the shape of the query is not known beforehand.
func NewMapSource(db *sqlx.DB, query, orderBy string, params map[string]any) Source[map[string]any] {
	source := NewSource[map[string]any](db, query, orderBy, params)
	source.scan = mapScan
	return source
}

func (s Source[T]) WithLogger(log zerolog.Logger) Source[T] {
	s.log = log
	return s
}

func (s Source[T]) WithScanner(scan RowScanner[T]) Source[T] {
	s.scan = scan
	return s
}

// Bind sets the callbacks of pg to query this source using ctx.
func (s Source[T]) Bind(ctx context.Context, pg *pagination.Paginator[T]) {
	pg.SetItemTotalCallback(s.ItemTotal(ctx))
	pg.SetSliceCallback(s.Slice(ctx))
}

func (s Source[T]) ItemTotal(ctx context.Context) pagination.ItemTotalCallback[T] {
	return func(p *pagination.Pagination[T]) (int, error) {
		sql := fmt.Sprintf("select count(*) from (%s) count_table", s.query)
		p.Meta[MetaCountSQL] = sql
		count, err := s.executeCount(ctx, sql, s.copyParams())
		if err != nil {
			s.log.Error().Err(err).Msg("error while reading number of elements")
			return 0, err
		}
		return count, nil
	}
}

func (s Source[T]) Slice(ctx context.Context) pagination.SliceCallback[T] {
	return func(offset, length int, p *pagination.Pagination[T]) (pagination.Items[T], error) {
		params := s.copyParams()
		sql := s.buildSliceSql(offset, length, params)
		p.Meta[MetaSliceSQL] = sql
		s.log.Debug().
			Str("sql", sql).
			Int("offset", offset).
			Int("length", length).
			Msg("fetching page")
		rows, err := s.db.NamedQueryContext(ctx, sql, params)
		if err != nil {
			s.log.Error().Err(err).Msg("error while executing slice query")
			return nil, err
		}
		defer rows.Close()
		items, err := s.scanRows(rows)
		if err != nil {
			return nil, err
		}
		s.log.Debug().Int("fetched", len(items)).Msg("fetched elements")
		return pagination.Slice[T](items), nil
	}
}

func (s Source[T]) copyParams() map[string]any {
	params := make(map[string]any, len(s.params)+2)
	maps.Copy(params, s.params)
	return params
}

func (s Source[T]) buildSliceSql(offset, length int, params map[string]any) string {
	params["limit"] = length
	params["offset"] = offset
	parts := []string{s.query}
	if s.orderBy != "" {
		parts = append(parts, s.orderBy)
	}
	parts = append(parts, "limit :limit offset :offset")
	return strings.Join(parts, " ")
}

func (s Source[T]) executeCount(ctx context.Context, sql string, params map[string]any) (int, error) {
	rows, err := s.db.NamedQueryContext(ctx, sql, params)
	if err != nil {
		return 0, err
	}
	defer rows.Close()
	var c int
	if rows.Next() {
		if err := rows.Scan(&c); err != nil {
			return 0, err
		}
	}
	return c, rows.Err()
}

func (s Source[T]) scanRows(rows *sqlx.Rows) ([]T, error) {
	result := []T{}
	for rows.Next() {
		element, err := s.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error while scanning row: %w", err)
		}
		result = append(result, element)
	}
	return result, rows.Err()
}

func structScan[T any](rows *sqlx.Rows) (T, error) {
	var element T
	err := rows.StructScan(&element)
	return element, err
}

func mapScan(rows *sqlx.Rows) (map[string]any, error) {
	element := map[string]any{}
	if err := rows.MapScan(element); err != nil {
		return nil, err
	}
	for key, value := range element {
		if b, ok := value.([]byte); ok {
			element[key] = string(b)
		}
	}
	return element, nil
}
