package middleware

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/Karol-96/arts-sell/api/web"
	"github.com/Karol-96/arts-sell/api/weberr"
	"github.com/Karol-96/arts-sell/rate"
)

// RateLimit throttles a route per client address. It guards the endpoints
// worth abusing: login and checkout.
func RateLimit(lim *rate.Limiter) web.Middleware {
	m := func(handler web.Handler) web.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				host = r.RemoteAddr
			}

			if !lim.Check(host) {
				err := errors.New("rate limit exceeded")
				return weberr.NewError(err, "too many requests", http.StatusTooManyRequests)
			}

			return handler(ctx, w, r)
		}
		return h
	}
	return m
}
