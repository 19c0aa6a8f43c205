package middleware

import (
	"github.com/deltegui/pager"
)

// Logger logs every request reaching the handler with the router logger.
func Logger(next pager.Handler) pager.Handler {
	return func(ctx *pager.Context) error {
		log := ctx.Logger()
		log.Info().
			Str("remote", ctx.Req.RemoteAddr).
			Str("agent", ctx.Req.UserAgent()).
			Str("method", ctx.Req.Method).
			Str("uri", ctx.Req.RequestURI).
			Msg("request")
		return next(ctx)
	}
}
