// Package cli implements the pager command line.
package cli

import (
	"errors"
	"fmt"
	"slices"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deltegui/pager/config"
	"github.com/deltegui/pager/localizer"
	"github.com/deltegui/pager/pagination"
)

const (
	OutputTable = "table"
	OutputJson  = "json"
	OutputYaml  = "yaml"
)

var outputs = []string{OutputTable, OutputJson, OutputYaml}

var ErrUnknownOutput = errors.New("unknown output format")

func init() {
	// modernc.org/sqlite registers itself as "sqlite", which sqlx does not
	// know about.
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

type options struct {
	configFile   string
	logLevel     string
	page         int
	perPage      int
	pagesInRange int
	output       string
	lang         string
}

// app is the state shared by every subcommand once flags and config have
// been read.
type app struct {
	opts options
	cfg  *config.Config
	log  zerolog.Logger
}

func newPaginator[T any](a *app) *pagination.Paginator[T] {
	pg := pagination.NewFromConfig[T](a.cfg.Pagination.Map())
	pg.SetLogger(a.log)
	return pg
}

func (a *app) localizer() (localizer.Localizer, error) {
	lang, ok := localizer.Match(a.opts.lang)
	if !ok {
		lang = localizer.FallbackLanguage
	}
	return localizer.Default().Get(localizer.PaginationKey, lang)
}

func (a *app) setup(cmd *cobra.Command) error {
	if !slices.Contains(outputs, a.opts.output) {
		return fmt.Errorf("%w: '%s', use one of %v", ErrUnknownOutput, a.opts.output, outputs)
	}
	cfg, err := config.Load(a.opts.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("per-page") {
		cfg.Pagination.ItemsPerPage = a.opts.perPage
	}
	if flags.Changed("range") {
		cfg.Pagination.PagesInRange = a.opts.pagesInRange
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg
	a.log = config.NewLogger(cfg.Log.Level, cmd.ErrOrStderr())
	return nil
}

// NewRootCmd creates the pager command with the lines, sql and serve
// subcommands.
func NewRootCmd(version string) *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:     "pager",
		Short:   "Paginate collections",
		Long:    "pager splits text files and SQL queries into numbered pages",
		Version: version,
		Example: `  # Second page of a file, 20 lines per page
  pager lines notes.txt --page 2 --per-page 20

  # A SQL query rendered as json
  pager sql --driver sqlite --dsn facts.db --query "select * from facts" --output json

  # Serve a SQL query over HTTP
  pager serve --driver sqlite --dsn facts.db --query "select * from facts"`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.configFile, "config", "", "configuration file (yaml, json or toml)")
	flags.StringVar(&a.opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	flags.IntVar(&a.opts.page, "page", pagination.DefaultPageNumber, "page to show, starting at 1")
	flags.IntVar(&a.opts.perPage, "per-page", pagination.DefaultItemsPerPage, "items per page, -1 shows everything")
	flags.IntVar(&a.opts.pagesInRange, "range", pagination.DefaultPagesInRange, "page numbers shown around the current one")
	flags.StringVarP(&a.opts.output, "output", "o", OutputTable, "output format: table, json or yaml")
	flags.StringVar(&a.opts.lang, "lang", localizer.FallbackLanguage, "language of the table footer")

	cmd.AddCommand(newLinesCmd(a), newSqlCmd(a), newServeCmd(a))
	return cmd
}
