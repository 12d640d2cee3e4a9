package mid

import (
	"context"
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/metrics"
	"github.com/workforcehq/jobboard/business/sdk/web"
)

// Metrics updates program counters using the middleware pattern.
func Metrics() web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			ctx = metrics.Set(ctx)

			resp := next(ctx, r)

			n := metrics.AddRequests(ctx)
			if n%1000 == 0 {
				metrics.AddGoroutines(ctx)
			}

			return resp
		}

		return h
	}

	return m
}
