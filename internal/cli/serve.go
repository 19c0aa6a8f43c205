package cli

import (
	"github.com/spf13/cobra"

	"github.com/deltegui/pager"
	"github.com/deltegui/pager/localizer"
	"github.com/deltegui/pager/middleware"
	"github.com/deltegui/pager/pagination"
	"github.com/deltegui/pager/persistence"
)

func newRouter(a *app, source persistence.Source[Row]) *pager.Router {
	r := pager.NewRouterWithConfig(pager.Config{
		Localizer:       localizer.Default(),
		Logger:          a.log,
		MaxItemsPerPage: a.cfg.Server.MaxItemsPerPage,
	})
	r.Use(middleware.Logger)
	cors := middleware.CorsDefault()
	items := pager.Paginate(func(ctx *pager.Context) (*pagination.Paginator[Row], error) {
		pg := newPaginator[Row](a)
		source.Bind(ctx.Context(), pg)
		return pg, nil
	})
	for _, pattern := range []string{"/items", "/items/:page"} {
		r.Get(pattern, items, cors)
		r.Options(pattern, items, cors)
	}
	return r
}

func newServeCmd(a *app) *cobra.Command {
	var (
		flags   databaseFlags
		address string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pages of a SQL query over HTTP",
		Long: `Serve the pages of a SQL query as json at /items and /items/:page.
The page can also be given with the page query param and its size with per_page.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("address") {
				a.cfg.Server.Address = address
			}
			db, source, err := flags.source(cmd, a)
			if err != nil {
				return err
			}
			defer db.Close()
			return newRouter(a, source).Run(a.cfg.Server.Address)
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&address, "address", "", "address to listen on")
	return cmd
}
