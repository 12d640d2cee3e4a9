package categoryapp

import (
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth        *auth.Auth
	PermBus     *permbus.Core
	CategoryBus *categorybus.Core
	TenantBus   *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	tenant := mid.TenantResolve(cfg.TenantBus)
	authen := mid.Authenticate(cfg.Auth)
	jobsModule := mid.Modules(module.Jobs, "")

	api := newApp(cfg.CategoryBus)

	app.HandlerFunc(http.MethodGet, version, "/categories", api.query,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Category, actions.List))

	app.HandlerFunc(http.MethodGet, version, "/categories/{category_id}", api.queryByID,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Category, actions.Get))

	app.HandlerFunc(http.MethodPost, version, "/categories", api.create,
		tenant, authen, jobsModule, mid.Authorize(cfg.PermBus, resource.Category))

	app.HandlerFunc(http.MethodPut, version, "/categories/{category_id}", api.update,
		tenant, authen, jobsModule, mid.Authorize(cfg.PermBus, resource.Category))

	app.HandlerFunc(http.MethodDelete, version, "/categories/{category_id}", api.delete,
		tenant, authen, jobsModule, mid.Authorize(cfg.PermBus, resource.Category))
}
