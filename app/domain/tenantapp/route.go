package tenantapp

import (
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	PermBus   *permbus.Core
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group. Only super admins hold grants
// beyond reading the tenant resource, so provisioning is closed to everyone
// else by the grant matrix.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.TenantBus)

	app.HandlerFunc(http.MethodPost, version, "/tenants", api.create,
		authen, mid.Authorize(cfg.PermBus, resource.Tenant))

	app.HandlerFunc(http.MethodGet, version, "/tenants/{tenant_id}", api.queryByID,
		authen, mid.Authorize(cfg.PermBus, resource.Tenant))

	app.HandlerFunc(http.MethodPut, version, "/tenants/{tenant_id}", api.update,
		authen, mid.Authorize(cfg.PermBus, resource.Tenant))
}
