// Package tenantapp maintains the web based api for tenant provisioning.
package tenantapp

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
)

type app struct {
	tenantBus *tenantbus.Core
}

func newApp(tenantBus *tenantbus.Core) *app {
	return &app{
		tenantBus: tenantBus,
	}
}

// create provisions a new tenant.
func (a *app) create(ctx context.Context, r *http.Request) web.Encoder {
	var req NewTenant
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	nt, err := toBusNewTenant(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := a.tenantBus.Create(ctx, nt)
	if err != nil {
		if errors.Is(err, tenantbus.ErrUniqueSlug) {
			return errs.New(errs.Aborted, tenantbus.ErrUniqueSlug)
		}
		return errs.Errorf(errs.InternalOnlyLog, "create: tenant[%s]: %s", req.Slug, err)
	}

	return toAppTenant(t)
}

// update modifies an existing tenant. Toggling Active off suspends every
// host under the tenant without touching its data.
func (a *app) update(ctx context.Context, r *http.Request) web.Encoder {
	var req UpdateTenant
	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	t, err := a.lookup(ctx, r)
	if err != nil {
		return err.(web.Encoder)
	}

	ut, err := toBusUpdateTenant(req)
	if err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	updT, err := a.tenantBus.Update(ctx, t, ut)
	if err != nil {
		return errs.Errorf(errs.InternalOnlyLog, "update: tenantID[%s]: %s", t.ID, err)
	}

	return toAppTenant(updT)
}

// queryByID returns a tenant by its ID.
func (a *app) queryByID(ctx context.Context, r *http.Request) web.Encoder {
	t, err := a.lookup(ctx, r)
	if err != nil {
		return err.(web.Encoder)
	}

	return toAppTenant(t)
}

func (a *app) lookup(ctx context.Context, r *http.Request) (tenantbus.Tenant, error) {
	id := web.Param(r, "tenant_id")

	tenantID, err := uuid.Parse(id)
	if err != nil {
		return tenantbus.Tenant{}, errs.NewFieldErrors("tenant_id", err)
	}

	t, err := a.tenantBus.QueryByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, tenantbus.ErrNotFound) {
			return tenantbus.Tenant{}, errs.New(errs.NotFound, tenantbus.ErrNotFound)
		}
		return tenantbus.Tenant{}, errs.Errorf(errs.Internal, "querybyid: tenantID[%s]: %s", tenantID, err)
	}

	return t, nil
}
