package applicationapp

import (
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth           *auth.Auth
	PermBus        *permbus.Core
	ApplicationBus *applicationbus.Core
	JobBus         *jobbus.Core
	TenantBus      *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	tenant := mid.TenantResolve(cfg.TenantBus)
	authen := mid.Authenticate(cfg.Auth)
	jobsModule := mid.Modules(module.Jobs, "")

	api := newApp(cfg.ApplicationBus, cfg.JobBus, cfg.PermBus)

	app.HandlerFunc(http.MethodGet, version, "/applications", api.query,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Application, actions.List))

	app.HandlerFunc(http.MethodGet, version, "/applications/{application_id}", api.queryByID,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Application, actions.Get))

	app.HandlerFunc(http.MethodPatch, version, "/applications/{application_id}/status", api.updateStatus,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Application, actions.ChangeStatus))

	app.HandlerFunc(http.MethodPatch, version, "/applications/{application_id}/notes", api.updateNotes,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Application, actions.ChangeStatus))
}
