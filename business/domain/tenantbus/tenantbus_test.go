package tenantbus_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// stubStorer resolves tenants from in-memory maps keyed the same way the
// database store is.
type stubStorer struct {
	bySlug   map[string]tenantbus.Tenant
	byDomain map[string]tenantbus.Tenant
}

func (s *stubStorer) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *stubStorer) Create(ctx context.Context, t tenantbus.Tenant) error { return nil }
func (s *stubStorer) Update(ctx context.Context, t tenantbus.Tenant) error { return nil }

func (s *stubStorer) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	return tenantbus.Tenant{}, tenantbus.ErrNotFound
}

func (s *stubStorer) QueryBySlug(ctx context.Context, slug string) (tenantbus.Tenant, error) {
	t, exists := s.bySlug[slug]
	if !exists {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func (s *stubStorer) QueryByDomain(ctx context.Context, domain string) (tenantbus.Tenant, error) {
	t, exists := s.byDomain[domain]
	if !exists {
		return tenantbus.Tenant{}, tenantbus.ErrNotFound
	}
	return t, nil
}

func TestResolveHost(t *testing.T) {
	demo := tenantbus.Tenant{ID: uuid.New(), Slug: "demo", Active: true}
	acme := tenantbus.Tenant{ID: uuid.New(), Slug: "acme", Active: true}
	custom := tenantbus.Tenant{ID: uuid.New(), Slug: "espoir", Domain: "jobs.espoir.sn", Active: true}
	dormant := tenantbus.Tenant{ID: uuid.New(), Slug: "dormant", Active: false}

	storer := &stubStorer{
		bySlug: map[string]tenantbus.Tenant{
			"demo":    demo,
			"acme":    acme,
			"dormant": dormant,
		},
		byDomain: map[string]tenantbus.Tenant{
			"jobs.espoir.sn": custom,
		},
	}

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	core := tenantbus.NewCore(log, storer, tenantbus.ResolverConfig{
		DevHosts:      []string{"localhost", "127.0.0.1"},
		DevTenantSlug: "demo",
	})

	ctx := context.Background()

	tests := []struct {
		name    string
		host    string
		want    uuid.UUID
		wantErr error
	}{
		{"dev host", "localhost", demo.ID, nil},
		{"dev host with port", "localhost:3000", demo.ID, nil},
		{"subdomain resolves by slug", "acme.workforcehq.com", acme.ID, nil},
		{"www label falls through to domain", "www.unknown.com", uuid.Nil, tenantbus.ErrNotFound},
		{"api label falls through to domain", "api.unknown.com", uuid.Nil, tenantbus.ErrNotFound},
		{"custom domain", "jobs.espoir.sn", custom.ID, nil},
		{"bare unknown host", "nowhere", uuid.Nil, tenantbus.ErrNotFound},
		{"unknown subdomain", "ghost.workforcehq.com", uuid.Nil, tenantbus.ErrNotFound},
		{"inactive tenant", "dormant.workforcehq.com", uuid.Nil, tenantbus.ErrInactive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tenant, err := core.ResolveHost(ctx, tt.host)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, tenant.ID)
		})
	}
}

func TestResolveHostSlugBeatsDomain(t *testing.T) {
	// A custom domain whose first label collides with a tenant slug resolves
	// by slug. The first matching rule wins.
	acme := tenantbus.Tenant{ID: uuid.New(), Slug: "jobs", Active: true}

	storer := &stubStorer{
		bySlug:   map[string]tenantbus.Tenant{"jobs": acme},
		byDomain: map[string]tenantbus.Tenant{},
	}

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	core := tenantbus.NewCore(log, storer, tenantbus.ResolverConfig{})

	tenant, err := core.ResolveHost(context.Background(), "jobs.espoir.sn")
	require.NoError(t, err)
	assert.Equal(t, acme.ID, tenant.ID)
}

func TestAllowed(t *testing.T) {
	tenant := tenantbus.Tenant{
		Modules: module.MustParseSet("jobs:featured"),
	}

	assert.NoError(t, tenantbus.Allowed(tenant, module.Jobs, ""))
	assert.NoError(t, tenantbus.Allowed(tenant, module.Jobs, "featured"))
	assert.ErrorIs(t, tenantbus.Allowed(tenant, module.Jobs, "webhooks"), tenantbus.ErrFeatureNotAvailable)
	assert.ErrorIs(t, tenantbus.Allowed(tenant, module.Contrats, ""), tenantbus.ErrModuleNotActive)
}
