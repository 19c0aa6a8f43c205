package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/deltegui/pager"
)

const (
	CorsAny string = "*"
)

var corsDefaultOptions CorsOptions = CorsOptions{
	AllowOrigin:   CorsAny,
	AllowMethods:  []string{CorsAny},
	AllowHeaders:  []string{CorsAny},
	ExposeHeaders: []string{pager.TotalCountHeader, pager.LinkHeader},
	MaxAge:        864000,
}

type CorsOptions struct {
	AllowOrigin  string
	AllowMethods []string
	AllowHeaders []string

	// ExposeHeaders lists the response headers browsers let scripts read.
	// Paginated endpoints need X-Total-Count and Link here.
	ExposeHeaders []string
	MaxAge        int
}

func CorsDefault() pager.Middleware {
	return Cors(corsDefaultOptions)
}

func allowsAny(values []string) bool {
	return len(values) == 0 || (len(values) == 1 && values[0] == CorsAny)
}

func Cors(opt CorsOptions) pager.Middleware {
	isOriginAllowed := func(origin string) bool {
		if len(opt.AllowOrigin) == 0 || opt.AllowOrigin == CorsAny {
			return true
		}
		return origin == opt.AllowOrigin
	}

	isAllHeadersAllowed := func(headers []string) bool {
		if allowsAny(opt.AllowHeaders) {
			return true
		}
		for _, rh := range headers {
			allowed := slices.ContainsFunc(opt.AllowHeaders, func(ah string) bool {
				return strings.EqualFold(ah, strings.TrimSpace(rh))
			})
			if !allowed {
				return false
			}
		}
		return true
	}

	isMethodAllowed := func(method string) bool {
		return allowsAny(opt.AllowMethods) || slices.Contains(opt.AllowMethods, method)
	}

	return func(next pager.Handler) pager.Handler {
		return func(ctx *pager.Context) error {
			if ctx.Req.Method == http.MethodOptions {
				ctx.Res.Header().Set("Access-Control-Allow-Origin", opt.AllowOrigin)
				ctx.Res.Header().Set("Access-Control-Allow-Methods", strings.Join(opt.AllowMethods, ", "))
				ctx.Res.Header().Set("Access-Control-Allow-Headers", strings.Join(opt.AllowHeaders, ", "))
				ctx.Res.Header().Set("Access-Control-Max-Age", strconv.Itoa(opt.MaxAge))

				reqMethod := ctx.Req.Header.Get("Access-Control-Request-Method")
				if len(reqMethod) > 0 && !isMethodAllowed(reqMethod) {
					return ctx.Forbidden("Method not allowed by CORS preflight: %s", reqMethod)
				}

				reqHeaders := ctx.Req.Header.Get("Access-Control-Request-Headers")
				if len(reqHeaders) > 0 && !isAllHeadersAllowed(strings.Split(reqHeaders, ",")) {
					return ctx.Forbidden("Request headers not allowed")
				}

				return ctx.NoContent()
			}
			if !isMethodAllowed(ctx.Req.Method) {
				return ctx.Forbidden("Method not allowed by CORS: %s", ctx.Req.Method)
			}
			origin := ctx.Req.Header.Get("Origin")
			if len(origin) != 0 && !isOriginAllowed(origin) {
				return ctx.Forbidden("Origin not allowed by CORS")
			}
			ctx.Res.Header().Set("Access-Control-Allow-Origin", opt.AllowOrigin)
			if len(opt.ExposeHeaders) > 0 {
				ctx.Res.Header().Set("Access-Control-Expose-Headers", strings.Join(opt.ExposeHeaders, ", "))
			}
			return next(ctx)
		}
	}
}
