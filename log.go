package pager

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

func logHttp(log zerolog.Logger, req *http.Request, status int, elapsed time.Duration) {
	log.Debug().
		Int("status", status).
		Str("remote", req.RemoteAddr).
		Str("method", req.Method).
		Str("uri", req.RequestURI).
		Dur("elapsed", elapsed).
		Msg("request served")
}
