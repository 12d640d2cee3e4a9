package jobapp

import (
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	PermBus   *permbus.Core
	JobBus    *jobbus.Core
	UserBus   *userbus.Core
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	tenant := mid.TenantResolve(cfg.TenantBus)
	authen := mid.Authenticate(cfg.Auth)
	jobsModule := mid.Modules(module.Jobs, "")

	api := newApp(cfg.JobBus, cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/jobs", api.query,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Job, actions.List))

	app.HandlerFunc(http.MethodGet, version, "/jobs/{job_id}", api.queryByID,
		tenant, authen, jobsModule, mid.AuthorizeJob(cfg.PermBus, cfg.JobBus, actions.Get))

	app.HandlerFunc(http.MethodPost, version, "/jobs", api.create,
		tenant, authen, jobsModule, mid.AuthorizeAction(cfg.PermBus, resource.Job, actions.Create))

	app.HandlerFunc(http.MethodPut, version, "/jobs/{job_id}", api.update,
		tenant, authen, jobsModule, mid.AuthorizeJob(cfg.PermBus, cfg.JobBus, actions.Update))

	app.HandlerFunc(http.MethodPatch, version, "/jobs/{job_id}/status", api.updateStatus,
		tenant, authen, jobsModule, mid.AuthorizeJob(cfg.PermBus, cfg.JobBus, actions.ChangeStatus))

	app.HandlerFunc(http.MethodPost, version, "/jobs/{job_id}/duplicate", api.duplicate,
		tenant, authen, jobsModule, mid.AuthorizeJob(cfg.PermBus, cfg.JobBus, actions.Create))

	app.HandlerFunc(http.MethodDelete, version, "/jobs/{job_id}", api.delete,
		tenant, authen, jobsModule, mid.AuthorizeJob(cfg.PermBus, cfg.JobBus, actions.Delete))
}
