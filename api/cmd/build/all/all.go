// Package all binds every route group into the web application.
package all

import (
	"time"

	"github.com/workforcehq/jobboard/app/domain/applicationapp"
	"github.com/workforcehq/jobboard/app/domain/authapp"
	"github.com/workforcehq/jobboard/app/domain/categoryapp"
	"github.com/workforcehq/jobboard/app/domain/checkapp"
	"github.com/workforcehq/jobboard/app/domain/jobapp"
	"github.com/workforcehq/jobboard/app/domain/publicapp"
	"github.com/workforcehq/jobboard/app/domain/tenantapp"
	"github.com/workforcehq/jobboard/app/domain/userapp"
	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/app/sdk/mux"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/domain/applicationbus/stores/applicationdb"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/domain/categorybus/stores/categorydb"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/jobbus/stores/jobdb"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/permbus/stores/permcache"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus/stores/tenantcache"
	"github.com/workforcehq/jobboard/business/domain/tenantbus/stores/tenantdb"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/domain/userbus/stores/usercache"
	"github.com/workforcehq/jobboard/business/domain/userbus/stores/userdb"
	"github.com/workforcehq/jobboard/business/domain/webhookbus"
	"github.com/workforcehq/jobboard/business/domain/webhookbus/stores/webhookdb"
	"github.com/workforcehq/jobboard/business/sdk/web"
)

// Routes constructs the add value which provides the implementation of
// RouteAdder for specifying what routes to bind to this instance.
func Routes() add {
	return add{}
}

type add struct{}

func (add) Add(app *web.App, cfg mux.Config) {
	userBus := userbus.NewCore(usercache.NewStore(cfg.Log, userdb.NewStore(cfg.Log, cfg.DB), 5*time.Minute))

	tenantBus := tenantbus.NewCore(cfg.Log,
		tenantcache.NewStore(cfg.Log, tenantdb.NewStore(cfg.Log, cfg.DB), 5*time.Minute),
		tenantbus.ResolverConfig{
			DevHosts:      cfg.TenantConfig.DevHosts,
			DevTenantSlug: cfg.TenantConfig.DevTenantSlug,
		})

	grants, err := permcache.NewStore(cfg.Log)
	if err != nil {
		// The grant matrix is compiled in; failing to load it is a
		// programming error, not a runtime condition.
		panic(err)
	}
	permBus := permbus.NewCore(cfg.Log, grants)

	categoryBus := categorybus.NewCore(cfg.Log, categorydb.NewStore(cfg.Log, cfg.DB))
	jobBus := jobbus.NewCore(cfg.Log, jobdb.NewStore(cfg.Log, cfg.DB))
	applicationBus := applicationbus.NewCore(cfg.Log, applicationdb.NewStore(cfg.Log, cfg.DB))
	webhookBus := webhookbus.NewCore(cfg.Log, webhookdb.NewStore(cfg.Log, cfg.DB))

	authClient := auth.New(auth.Config{
		Log:       cfg.Log,
		UserBus:   userBus,
		KeyLookup: cfg.AuthConfig.KeyLookup,
		Issuer:    cfg.AuthConfig.Issuer,
		ActiveKID: cfg.AuthConfig.ActiveKID,
	})

	checkapp.Routes(app, checkapp.Config{
		Build: cfg.Build,
		Log:   cfg.Log,
		DB:    cfg.DB,
	})

	authapp.Routes(app, authapp.Config{
		Auth:      authClient,
		TenantBus: tenantBus,
	})

	userapp.Routes(app, userapp.Config{
		Auth:      authClient,
		PermBus:   permBus,
		UserBus:   userBus,
		TenantBus: tenantBus,
	})

	tenantapp.Routes(app, tenantapp.Config{
		Auth:      authClient,
		PermBus:   permBus,
		TenantBus: tenantBus,
	})

	categoryapp.Routes(app, categoryapp.Config{
		Auth:        authClient,
		PermBus:     permBus,
		CategoryBus: categoryBus,
		TenantBus:   tenantBus,
	})

	jobapp.Routes(app, jobapp.Config{
		Auth:      authClient,
		PermBus:   permBus,
		JobBus:    jobBus,
		UserBus:   userBus,
		TenantBus: tenantBus,
	})

	applicationapp.Routes(app, applicationapp.Config{
		Auth:           authClient,
		PermBus:        permBus,
		ApplicationBus: applicationBus,
		JobBus:         jobBus,
		TenantBus:      tenantBus,
	})

	publicapp.Routes(app, publicapp.Config{
		Log:            cfg.Log,
		JobBus:         jobBus,
		UserBus:        userBus,
		TenantBus:      tenantBus,
		ApplicationBus: applicationBus,
		WebhookBus:     webhookBus,
		CVStore:        cfg.CVStore,
	})
}
