// Package tenantcache contains tenant related CRUD functionality with a
// read-through cache in front of the database store. Host resolution runs on
// every request, so slug and domain lookups are the hot path.
package tenantcache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/viccon/sturdyc"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Store manages the set of APIs for tenant data and caching.
type Store struct {
	log    *logger.Logger
	storer tenantbus.Storer
	cache  *sturdyc.Client[tenantbus.Tenant]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer tenantbus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[tenantbus.Tenant](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer value with a
// storer value that is currently inside a transaction. The cache is bypassed
// inside transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new tenant into the database.
func (s *Store) Create(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.storer.Create(ctx, t); err != nil {
		return err
	}

	s.writeCache(t)

	return nil
}

// Update replaces a tenant document in the database and refreshes any cached
// copy so module and active flags take effect on the next request.
func (s *Store) Update(ctx context.Context, t tenantbus.Tenant) error {
	if err := s.storer.Update(ctx, t); err != nil {
		return err
	}

	s.deleteCache(t)

	return nil
}

// QueryByID gets the specified tenant from the cache or database.
func (s *Store) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	return s.cache.GetOrFetch(ctx, "id:"+tenantID.String(), func(ctx context.Context) (tenantbus.Tenant, error) {
		return s.storer.QueryByID(ctx, tenantID)
	})
}

// QueryBySlug gets the tenant for the subdomain label from the cache or
// database.
func (s *Store) QueryBySlug(ctx context.Context, slug string) (tenantbus.Tenant, error) {
	return s.cache.GetOrFetch(ctx, "slug:"+slug, func(ctx context.Context) (tenantbus.Tenant, error) {
		return s.storer.QueryBySlug(ctx, slug)
	})
}

// QueryByDomain gets the tenant for the custom domain from the cache or
// database.
func (s *Store) QueryByDomain(ctx context.Context, domain string) (tenantbus.Tenant, error) {
	return s.cache.GetOrFetch(ctx, "domain:"+domain, func(ctx context.Context) (tenantbus.Tenant, error) {
		return s.storer.QueryByDomain(ctx, domain)
	})
}

func (s *Store) writeCache(t tenantbus.Tenant) {
	s.cache.Set("id:"+t.ID.String(), t)
	s.cache.Set("slug:"+t.Slug, t)
	if t.Domain != "" {
		s.cache.Set("domain:"+t.Domain, t)
	}
}

func (s *Store) deleteCache(t tenantbus.Tenant) {
	s.cache.Delete("id:" + t.ID.String())
	s.cache.Delete("slug:" + t.Slug)
	if t.Domain != "" {
		s.cache.Delete("domain:" + t.Domain)
	}
}
