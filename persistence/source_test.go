package persistence_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deltegui/pager/pagination"
	"github.com/deltegui/pager/persistence"
)

type fact struct {
	Name string `db:"name"`
	Area int    `db:"area"`
}

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("Failed to close mock db: %v", closeErr)
		}
	})
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestSourcePaginatesQuery(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("select count(*) from (select name, area from facts) count_table")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(261))
	mock.ExpectQuery(regexp.QuoteMeta("select name, area from facts order by area desc limit ? offset ?")).
		WithArgs(3, 0).
		WillReturnRows(sqlmock.NewRows([]string{"name", "area"}).
			AddRow("Russia", 17098242).
			AddRow("Canada", 9984670).
			AddRow("United States", 9826675))

	source := persistence.NewSource[fact](db, "select name, area from facts", "order by area desc", nil)
	pg := pagination.New[fact]()
	pg.SetItemsPerPage(3)
	source.Bind(context.Background(), pg)

	p, err := pg.First()
	require.NoError(t, err)

	assert.Equal(t, 261, p.TotalNumberOfItems)
	assert.Equal(t, 87, p.TotalNumberOfPages)
	assert.Equal(t, []fact{
		{Name: "Russia", Area: 17098242},
		{Name: "Canada", Area: 9984670},
		{Name: "United States", Area: 9826675},
	}, p.Items)
	assert.Equal(t, "select count(*) from (select name, area from facts) count_table", p.Meta[persistence.MetaCountSQL])
	assert.Equal(t, "select name, area from facts order by area desc limit :limit offset :offset", p.Meta[persistence.MetaSliceSQL])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceWithScanner(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("select count(*) from (select name, area from facts) count_table")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("select name, area from facts limit ? offset ?")).
		WithArgs(10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"name", "area"}).
			AddRow("Russia", 17098242).
			AddRow("Canada", 9984670))

	source := persistence.NewSource[string](db, "select name, area from facts", "", nil).
		WithScanner(func(rows *sqlx.Rows) (string, error) {
			var name string
			var area int
			if err := rows.Scan(&name, &area); err != nil {
				return "", err
			}
			return fmt.Sprintf("%s (%d)", name, area), nil
		})
	pg := pagination.New[string]()
	source.Bind(context.Background(), pg)

	p, err := pg.First()
	require.NoError(t, err)
	assert.Equal(t, []string{"Russia (17098242)", "Canada (9984670)"}, p.Items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourceBindsParamsAndOffset(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("select count(*) from (select * from facts where area > ?) count_table")).
		WithArgs(1000).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(25))
	mock.ExpectQuery(regexp.QuoteMeta("select * from facts where area > ? limit ? offset ?")).
		WithArgs(1000, 10, 20).
		WillReturnRows(sqlmock.NewRows([]string{"name", "area"}).AddRow([]byte("Andorra"), 468))

	source := persistence.NewMapSource(db, "select * from facts where area > :min", "", map[string]any{"min": 1000})
	pg := pagination.New[map[string]any]()
	source.Bind(context.Background(), pg)

	p, err := pg.Paginate(3)
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Andorra", p.Items[0]["name"])
	assert.EqualValues(t, 468, p.Items[0]["area"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSourcePropagatesErrors(t *testing.T) {
	boom := errors.New("database is gone")

	t.Run("count", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("select count").WillReturnError(boom)

		pg := pagination.New[fact]()
		persistence.NewSource[fact](db, "select * from facts", "", nil).Bind(context.Background(), pg)

		_, err := pg.First()
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slice", func(t *testing.T) {
		db, mock := newMock(t)
		mock.ExpectQuery("select count").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		mock.ExpectQuery("limit").WillReturnError(boom)

		pg := pagination.New[fact]()
		persistence.NewSource[fact](db, "select * from facts", "", nil).Bind(context.Background(), pg)

		_, err := pg.First()
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSourceAskedForEverything(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery("select count").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(regexp.QuoteMeta("select * from facts limit ? offset ?")).
		WithArgs(999999999, 0).
		WillReturnRows(sqlmock.NewRows([]string{"name", "area"}).AddRow("A", 1).AddRow("B", 2))

	pg := pagination.New[fact]()
	pg.SetItemsPerPage(pagination.Unbounded)
	persistence.NewSource[fact](db, "select * from facts", "", nil).Bind(context.Background(), pg)

	p, err := pg.First()
	require.NoError(t, err)
	assert.Len(t, p.Items, 2)
	assert.Equal(t, -2, p.TotalNumberOfPages)
	assert.NoError(t, mock.ExpectationsWereMet())
}
