// Package usercache contains user related CRUD functionality with a
// read-through cache. Authentication hits QueryByID on every request to check
// the enabled flag, so that lookup is cached with a short TTL.
package usercache

import (
	"context"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/viccon/sturdyc"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// Store manages the set of APIs for user data and caching.
type Store struct {
	log    *logger.Logger
	storer userbus.Storer
	cache  *sturdyc.Client[userbus.User]
}

// NewStore constructs the api for data and caching access.
func NewStore(log *logger.Logger, storer userbus.Storer, ttl time.Duration) *Store {
	const capacity = 10000
	const numShards = 10
	const evictionPercentage = 10

	return &Store{
		log:    log,
		storer: storer,
		cache:  sturdyc.New[userbus.User](capacity, numShards, ttl, evictionPercentage),
	}
}

// NewWithTx constructs a new Store value replacing the storer value with a
// storer value that is currently inside a transaction. The cache is bypassed
// inside transactions.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (userbus.Storer, error) {
	return s.storer.NewWithTx(tx)
}

// Create inserts a new user into the database.
func (s *Store) Create(ctx context.Context, usr userbus.User) error {
	if err := s.storer.Create(ctx, usr); err != nil {
		return err
	}

	s.cache.Set(usr.ID.String(), usr)

	return nil
}

// Update replaces a user document in the database and drops the cached copy
// so enabled and role changes take effect on the next request.
func (s *Store) Update(ctx context.Context, usr userbus.User) error {
	if err := s.storer.Update(ctx, usr); err != nil {
		return err
	}

	s.cache.Delete(usr.ID.String())

	return nil
}

// Delete removes a user from the database.
func (s *Store) Delete(ctx context.Context, usr userbus.User) error {
	if err := s.storer.Delete(ctx, usr); err != nil {
		return err
	}

	s.cache.Delete(usr.ID.String())

	return nil
}

// Query retrieves a list of existing users from the database. Collection
// queries are not cached.
func (s *Store) Query(ctx context.Context, filter userbus.QueryFilter, orderBy order.By, page page.Page) ([]userbus.User, error) {
	return s.storer.Query(ctx, filter, orderBy, page)
}

// Count returns the total number of users in the DB.
func (s *Store) Count(ctx context.Context, filter userbus.QueryFilter) (int, error) {
	return s.storer.Count(ctx, filter)
}

// QueryByID gets the specified user from the cache or database.
func (s *Store) QueryByID(ctx context.Context, userID uuid.UUID) (userbus.User, error) {
	return s.cache.GetOrFetch(ctx, userID.String(), func(ctx context.Context) (userbus.User, error) {
		return s.storer.QueryByID(ctx, userID)
	})
}

// QueryByEmail gets the specified user from the database by email within the
// tenant. Not cached, the lookup only happens on login.
func (s *Store) QueryByEmail(ctx context.Context, tenantID uuid.UUID, email mail.Address) (userbus.User, error) {
	return s.storer.QueryByEmail(ctx, tenantID, email)
}

// CountActiveContracts returns the number of active contracts held by the
// user.
func (s *Store) CountActiveContracts(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.storer.CountActiveContracts(ctx, userID)
}
