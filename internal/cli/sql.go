package cli

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/deltegui/pager/persistence"
)

var ErrMissingQuery = errors.New("missing query")

type Row = map[string]any

type databaseFlags struct {
	driver  string
	dsn     string
	query   string
	orderBy string
}

func (f *databaseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.driver, "driver", "", "database driver (sqlite is built in)")
	cmd.Flags().StringVar(&f.dsn, "dsn", "", "database connection string")
	cmd.Flags().StringVar(&f.query, "query", "", "query to paginate, without order by, limit or offset")
	cmd.Flags().StringVar(&f.orderBy, "order-by", "", "order by clause appended to the query")
}

// source applies the flags over the configured database and connects to it.
// The returned db must be closed by the caller.
func (f *databaseFlags) source(cmd *cobra.Command, a *app) (*sqlx.DB, persistence.Source[Row], error) {
	database := a.cfg.Database
	flags := cmd.Flags()
	if flags.Changed("driver") {
		database.Driver = f.driver
	}
	if flags.Changed("dsn") {
		database.Connection = f.dsn
	}
	if flags.Changed("query") {
		database.Query = f.query
	}
	if flags.Changed("order-by") {
		database.OrderBy = f.orderBy
	}
	if database.Query == "" {
		return nil, persistence.Source[Row]{}, fmt.Errorf("%w: use --query or database.query", ErrMissingQuery)
	}
	db, err := persistence.Connect(database.Configuration, a.log)
	if err != nil {
		return nil, persistence.Source[Row]{}, err
	}
	source := persistence.NewMapSource(db, database.Query, database.OrderBy, nil).WithLogger(a.log)
	return db, source, nil
}

var rowsTable = table[Row]{
	header: func(rows []Row) []string {
		if len(rows) == 0 {
			return []string{}
		}
		return slices.Sorted(maps.Keys(rows[0]))
	},
	row: func(header []string, row Row) []string {
		cells := make([]string, len(header))
		for i, column := range header {
			cells[i] = fmt.Sprint(row[column])
		}
		return cells
	},
}

func newSqlCmd(a *app) *cobra.Command {
	var flags databaseFlags
	cmd := &cobra.Command{
		Use:   "sql",
		Short: "Paginate the rows of a SQL query",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, source, err := flags.source(cmd, a)
			if err != nil {
				return err
			}
			defer db.Close()
			pg := newPaginator[Row](a)
			source.Bind(cmd.Context(), pg)
			result, err := pg.Paginate(a.opts.page)
			if err != nil {
				return fmt.Errorf("cannot paginate query: %w", err)
			}
			return render(cmd.OutOrStdout(), a, result, rowsTable)
		},
	}
	flags.register(cmd)
	return cmd
}
