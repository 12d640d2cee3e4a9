// Package authapp maintains the web based api for auth access.
package authapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/mail"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
)

type app struct {
	auth      *auth.Auth
	tenantBus *tenantbus.Core
}

func newApp(ath *auth.Auth, tenantBus *tenantbus.Core) *app {
	return &app{
		auth:      ath,
		tenantBus: tenantBus,
	}
}

func (a *app) login(ctx context.Context, r *http.Request) web.Encoder {
	var req Login

	if err := web.Decode(r, &req); err != nil {
		return errs.New(errs.InvalidArgument, err)
	}

	addr, err := mail.ParseAddress(req.Email)
	if err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("parsing email: %w", err))
	}

	// Non super admin accounts live inside the tenant the request host
	// resolves to. A host that resolves to nothing scopes the login to the
	// super admin pool.
	tenantID := uuid.Nil
	t, err := a.tenantBus.ResolveHost(ctx, r.Host)
	switch {
	case err == nil:
		tenantID = t.ID
	case errors.Is(err, tenantbus.ErrNotFound):
	case errors.Is(err, tenantbus.ErrInactive):
		return errs.New(errs.PermissionDenied, tenantbus.ErrInactive)
	default:
		return errs.New(errs.Internal, err)
	}

	usr, err := a.auth.Login(ctx, tenantID, *addr, req.Password)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tokenStr, err := a.auth.GenerateToken(usr.TenantID, usr.ID, usr.Role)
	if err != nil {
		return errs.New(errs.Internal, err)
	}

	return toAppToken(tokenStr)
}
