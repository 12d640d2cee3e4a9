package userapp

import (
	"net/http"

	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/mid"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/resource"
)

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Auth      *auth.Auth
	PermBus   *permbus.Core
	UserBus   *userbus.Core
	TenantBus *tenantbus.Core
}

// Routes adds specific routes for this group.
func Routes(app *web.App, cfg Config) {
	const version = "v1"

	tenant := mid.TenantResolve(cfg.TenantBus)
	authen := mid.Authenticate(cfg.Auth)

	api := newApp(cfg.UserBus)

	app.HandlerFunc(http.MethodGet, version, "/users", api.query,
		tenant, authen, mid.AuthorizeAction(cfg.PermBus, resource.User, actions.List))

	app.HandlerFunc(http.MethodGet, version, "/users/{user_id}", api.queryByID,
		tenant, authen, mid.AuthorizeUser(cfg.PermBus, cfg.UserBus, actions.Get))

	app.HandlerFunc(http.MethodPost, version, "/users", api.create,
		tenant, authen, mid.AuthorizeAction(cfg.PermBus, resource.User, actions.Create))

	app.HandlerFunc(http.MethodPut, version, "/users/{user_id}", api.update,
		tenant, authen, mid.AuthorizeUser(cfg.PermBus, cfg.UserBus, actions.Update))

	app.HandlerFunc(http.MethodPatch, version, "/users/{user_id}/role", api.updateRole,
		tenant, authen, mid.AuthorizeUser(cfg.PermBus, cfg.UserBus, actions.ChangeType))

	app.HandlerFunc(http.MethodPatch, version, "/users/{user_id}/status", api.updateStatus,
		tenant, authen, mid.AuthorizeUser(cfg.PermBus, cfg.UserBus, actions.ChangeStatus))

	app.HandlerFunc(http.MethodDelete, version, "/users/{user_id}", api.delete,
		tenant, authen, mid.AuthorizeUser(cfg.PermBus, cfg.UserBus, actions.Delete))
}
