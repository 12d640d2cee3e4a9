// Package tenantbus provides business access to tenant organizations and
// host-based tenant resolution.
package tenantbus

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/foundation/logger"
	"github.com/workforcehq/jobboard/foundation/otel"
)

// Set of error variables for tenant operations.
var (
	ErrNotFound            = errors.New("tenant not found")
	ErrInactive            = errors.New("tenant is not active")
	ErrUniqueSlug          = errors.New("slug is not unique")
	ErrModuleNotActive     = errors.New("module is not active")
	ErrFeatureNotAvailable = errors.New("feature is not available")
)

// Subdomain labels that never resolve to a tenant.
var reservedLabels = map[string]struct{}{
	"www": {},
	"api": {},
}

// Storer defines the behavior required by the tenantbus to interact with the
// database.
type Storer interface {
	NewWithTx(tx sqldb.CommitRollbacker) (Storer, error)
	Create(ctx context.Context, t Tenant) error
	Update(ctx context.Context, t Tenant) error
	QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error)
	QueryBySlug(ctx context.Context, slug string) (Tenant, error)
	QueryByDomain(ctx context.Context, domain string) (Tenant, error)
}

// ResolverConfig holds the host resolution settings. DevHosts are hosts that
// always resolve to the tenant identified by DevTenantSlug, used for local
// development and health probing.
type ResolverConfig struct {
	DevHosts      []string
	DevTenantSlug string
}

// Core manages the set of APIs for tenant access.
type Core struct {
	storer   Storer
	log      *logger.Logger
	devHosts map[string]struct{}
	devSlug  string
}

// NewCore constructs a core for tenant api access.
func NewCore(log *logger.Logger, storer Storer, cfg ResolverConfig) *Core {
	devHosts := make(map[string]struct{}, len(cfg.DevHosts))
	for _, h := range cfg.DevHosts {
		devHosts[h] = struct{}{}
	}

	return &Core{
		storer:   storer,
		log:      log,
		devHosts: devHosts,
		devSlug:  cfg.DevTenantSlug,
	}
}

// NewWithTx constructs a new Core value replacing the Storer value with a
// Storer value that is currently inside a transaction.
func (c *Core) NewWithTx(tx sqldb.CommitRollbacker) (*Core, error) {
	storer, err := c.storer.NewWithTx(tx)
	if err != nil {
		return nil, fmt.Errorf("newWithTx: %w", err)
	}

	nc := Core{
		storer:   storer,
		log:      c.log,
		devHosts: c.devHosts,
		devSlug:  c.devSlug,
	}

	return &nc, nil
}

// Create adds a new tenant to the system.
func (c *Core) Create(ctx context.Context, nt NewTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.create")
	defer span.End()

	now := time.Now()

	t := Tenant{
		ID:         uuid.New(),
		Name:       nt.Name,
		Slug:       nt.Slug,
		Domain:     nt.Domain,
		Active:     true,
		Modules:    nt.Modules,
		Country:    nt.Country,
		Currency:   nt.Currency,
		Locale:     nt.Locale,
		WebhookURL: nt.WebhookURL,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := c.storer.Create(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("create: %w", err)
	}

	return t, nil
}

// Update modifies data about a tenant. Deactivation is a soft operation, the
// record and its dependents are kept.
func (c *Core) Update(ctx context.Context, t Tenant, ut UpdateTenant) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.update")
	defer span.End()

	if ut.Name != nil {
		t.Name = *ut.Name
	}

	if ut.Domain != nil {
		t.Domain = *ut.Domain
	}

	if ut.Active != nil {
		t.Active = *ut.Active
	}

	if ut.Modules != nil {
		t.Modules = *ut.Modules
	}

	if ut.Country != nil {
		t.Country = *ut.Country
	}

	if ut.Currency != nil {
		t.Currency = *ut.Currency
	}

	if ut.Locale != nil {
		t.Locale = *ut.Locale
	}

	if ut.WebhookURL != nil {
		t.WebhookURL = *ut.WebhookURL
	}

	t.UpdatedAt = time.Now()

	if err := c.storer.Update(ctx, t); err != nil {
		return Tenant{}, fmt.Errorf("update: %w", err)
	}

	return t, nil
}

// QueryByID finds the tenant by the specified ID.
func (c *Core) QueryByID(ctx context.Context, tenantID uuid.UUID) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.queryByID")
	defer span.End()

	tenant, err := c.storer.QueryByID(ctx, tenantID)
	if err != nil {
		return Tenant{}, fmt.Errorf("query: tenantID[%s]: %w", tenantID, err)
	}

	return tenant, nil
}

// ResolveHost translates a request host (e.g. "acme.workforcehq.com" or
// "jobs.acme.sn") into the owning tenant. The first matching rule wins:
// a configured dev host resolves to the default tenant, a non-reserved
// subdomain label resolves by slug, anything else resolves by full custom
// domain. Inactive tenants resolve to ErrInactive.
func (c *Core) ResolveHost(ctx context.Context, host string) (Tenant, error) {
	ctx, span := otel.AddSpan(ctx, "business.tenantbus.resolveHost")
	defer span.End()

	host = stripPort(host)

	t, err := c.lookup(ctx, host)
	if err != nil {
		return Tenant{}, fmt.Errorf("resolve host[%s]: %w", host, err)
	}

	if !t.Active {
		return Tenant{}, fmt.Errorf("resolve host[%s]: %w", host, ErrInactive)
	}

	return t, nil
}

func (c *Core) lookup(ctx context.Context, host string) (Tenant, error) {
	if _, exists := c.devHosts[host]; exists {
		return c.storer.QueryBySlug(ctx, c.devSlug)
	}

	if label, _, found := strings.Cut(host, "."); found {
		if _, reserved := reservedLabels[label]; !reserved {
			return c.storer.QueryBySlug(ctx, label)
		}
	}

	return c.storer.QueryByDomain(ctx, host)
}

func stripPort(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

// Allowed reports whether the tenant has the given module enabled. An empty
// feature checks the module only. The returned errors wrap ErrModuleNotActive
// and ErrFeatureNotAvailable and carry the module display name for the caller.
func Allowed(t Tenant, m module.Module, feature string) error {
	if !t.Modules.Has(m) {
		return fmt.Errorf("%w: %s", ErrModuleNotActive, m.Name())
	}

	if feature != "" && !t.Modules.HasFeature(m, feature) {
		return fmt.Errorf("%w: %s of %s", ErrFeatureNotAvailable, feature, m.Name())
	}

	return nil
}
