package mid

import (
	"context"
	"errors"
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
)

// TenantResolve maps the request host to its tenant and stores the record in
// the context. Unknown hosts 404 and inactive tenants 403.
func TenantResolve(tenantBus *tenantbus.Core) web.MidFunc {
	m := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			t, err := tenantBus.ResolveHost(ctx, r.Host)
			if err != nil {
				switch {
				case errors.Is(err, tenantbus.ErrNotFound):
					return errs.New(errs.NotFound, tenantbus.ErrNotFound)
				case errors.Is(err, tenantbus.ErrInactive):
					return errs.New(errs.PermissionDenied, tenantbus.ErrInactive)
				default:
					return errs.New(errs.Internal, err)
				}
			}

			ctx = setTenant(ctx, t)

			return next(ctx, r)
		}

		return h
	}

	return m
}
