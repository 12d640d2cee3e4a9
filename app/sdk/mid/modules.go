package mid

import (
	"context"
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/role"
)

// Modules denies the request unless the resolved tenant has the module (and
// optional feature) enabled. Super admins bypass the gate.
func Modules(m module.Module, feature string) web.MidFunc {
	mf := func(next web.HandlerFunc) web.HandlerFunc {
		h := func(ctx context.Context, r *http.Request) web.Encoder {
			if GetClaims(ctx).Role == role.SuperAdmin.String() {
				return next(ctx, r)
			}

			t, err := GetTenant(ctx)
			if err != nil {
				return errs.New(errs.Internal, err)
			}

			if err := tenantbus.Allowed(t, m, feature); err != nil {
				return errs.New(errs.PermissionDenied, err)
			}

			return next(ctx, r)
		}

		return h
	}

	return mf
}
