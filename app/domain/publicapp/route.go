package publicapp

import (
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/cvstore"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/domain/webhookbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log            *logger.Logger
	JobBus         *jobbus.Core
	UserBus        *userbus.Core
	TenantBus      *tenantbus.Core
	ApplicationBus *applicationbus.Core
	WebhookBus     *webhookbus.Core
	CVStore        *cvstore.Store
}

// Routes adds specific routes for this group. The public surface is keyed by
// the tenant_id parameter rather than the request host and carries no
// authentication.
func Routes(app *web.App, cfg Config) {
	const group = "public"

	api := newApp(cfg)

	app.HandlerFunc(http.MethodGet, group, "/jobs", api.getJobs)
	app.HandlerFunc(http.MethodGet, group, "/jobs/{job_id}", api.getJob)
	app.HandlerFunc(http.MethodPost, group, "/jobs/{job_id}/apply", api.apply)
	app.HandlerFunc(http.MethodPost, group, "/webhook/jobs", api.receiveJobWebhook)
}
