package pager

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"github.com/deltegui/pager/localizer"
	"github.com/deltegui/pager/validator"
)

type Middleware func(Handler) Handler

type Handler func(c *Context) error

type Router struct {
	router          *httprouter.Router
	middlewares     []Middleware
	locstore        *localizer.Store
	validate        validator.PlaygroundValidator
	log             zerolog.Logger
	maxItemsPerPage int
}

type Config struct {
	// Localizer is used to translate pagination view models. Optional.
	Localizer *localizer.Store
	Logger    zerolog.Logger

	// MaxItemsPerPage caps the per_page a client can ask for.
	MaxItemsPerPage int
}

const DefaultMaxItemsPerPage = 1000

func NewRouterWithConfig(config Config) *Router {
	if config.MaxItemsPerPage <= 0 {
		config.MaxItemsPerPage = DefaultMaxItemsPerPage
	}
	return &Router{
		router:          httprouter.New(),
		middlewares:     []Middleware{},
		locstore:        config.Localizer,
		validate:        validator.NewPlayground(),
		log:             config.Logger,
		maxItemsPerPage: config.MaxItemsPerPage,
	}
}

func NewRouter() *Router {
	return NewRouterWithConfig(Config{
		Localizer: localizer.Default(),
		Logger:    zerolog.Nop(),
	})
}

func (r *Router) createContext(w http.ResponseWriter, req *http.Request, params httprouter.Params) *Context {
	return &Context{
		Req:             req,
		Res:             w,
		params:          params,
		locstore:        r.locstore,
		validate:        r.validate,
		log:             r.log,
		maxItemsPerPage: r.maxItemsPerPage,
	}
}

func (r *Router) Use(middleware Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}

func (r *Router) Handle(method, pattern string, handler Handler, middlewares ...Middleware) {
	h := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	for i := len(r.middlewares) - 1; i >= 0; i-- {
		h = r.middlewares[i](h)
	}
	r.router.Handle(method, pattern, func(w http.ResponseWriter, req *http.Request, params httprouter.Params) {
		sw := &statusWriter{ResponseWriter: w}
		ctx := r.createContext(sw, req, params)
		start := time.Now()
		if err := h(ctx); err != nil {
			r.log.Error().
				Err(err).
				Str("method", req.Method).
				Str("uri", req.RequestURI).
				Msg("handler failed")
			if !sw.written {
				ctx.InternalServerError("internal server error")
			}
		}
		logHttp(r.log, req, sw.Status(), time.Since(start))
	})
}

func (r *Router) Get(pattern string, handler Handler, middlewares ...Middleware) {
	r.Handle(http.MethodGet, pattern, handler, middlewares...)
}

func (r *Router) Options(pattern string, handler Handler, middlewares ...Middleware) {
	r.Handle(http.MethodOptions, pattern, handler, middlewares...)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

func startServer(server *http.Server, log zerolog.Logger, errs chan<- error) {
	log.Info().Str("address", server.Addr).Msg("listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		errs <- fmt.Errorf("error while listening: %w", err)
	}
}

func waitAndStopServer(server *http.Server, log zerolog.Logger, errs <-chan error) error {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case err := <-errs:
		return err
	case <-done:
	}

	log.Info().Msg("server stopped")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info().Msg("server exited properly")
	return nil
}

// Run serves on address until the process gets an interrupt or a
// termination signal.
func (r *Router) Run(address string) error {
	server := &http.Server{
		Addr:              address,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errs := make(chan error, 1)
	go startServer(server, r.log, errs)
	return waitAndStopServer(server, r.log, errs)
}

type statusWriter struct {
	http.ResponseWriter
	status  int
	written bool
}

func (sw *statusWriter) WriteHeader(status int) {
	if !sw.written {
		sw.status = status
		sw.written = true
	}
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	if !sw.written {
		sw.status = http.StatusOK
		sw.written = true
	}
	return sw.ResponseWriter.Write(b)
}

func (sw *statusWriter) Status() int {
	if sw.status == 0 {
		return http.StatusOK
	}
	return sw.status
}
