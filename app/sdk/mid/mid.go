// Package mid provides app level middleware support.
package mid

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/auth"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/sdk/web"
	"github.com/workforcehq/jobboard/business/types/role"
)

func checkIsError(e web.Encoder) error {
	err, hasError := e.(error)
	if hasError {
		return err
	}

	return nil
}

// =============================================================================

type ctxKey int

const (
	claimKey ctxKey = iota + 1
	userIDKey
	userKey
	jobKey
	tenantKey
	trKey
)

func setClaims(ctx context.Context, claims auth.Claims) context.Context {
	return context.WithValue(ctx, claimKey, claims)
}

// GetClaims returns the claims from the context.
func GetClaims(ctx context.Context) auth.Claims {
	v, ok := ctx.Value(claimKey).(auth.Claims)
	if !ok {
		return auth.Claims{}
	}
	return v
}

func setUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the authenticated user id from the context.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	v, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.UUID{}, errors.New("user id not found in context")
	}

	return v, nil
}

func setUser(ctx context.Context, usr userbus.User) context.Context {
	return context.WithValue(ctx, userKey, usr)
}

// GetUser returns the target user record from the context.
func GetUser(ctx context.Context) (userbus.User, error) {
	v, ok := ctx.Value(userKey).(userbus.User)
	if !ok {
		return userbus.User{}, errors.New("user not found in context")
	}

	return v, nil
}

func setJob(ctx context.Context, job jobbus.Job) context.Context {
	return context.WithValue(ctx, jobKey, job)
}

// GetJob returns the target job record from the context.
func GetJob(ctx context.Context) (jobbus.Job, error) {
	v, ok := ctx.Value(jobKey).(jobbus.Job)
	if !ok {
		return jobbus.Job{}, errors.New("job not found in context")
	}

	return v, nil
}

func setTenant(ctx context.Context, t tenantbus.Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, t)
}

// GetTenant returns the tenant the request host resolved to.
func GetTenant(ctx context.Context) (tenantbus.Tenant, error) {
	v, ok := ctx.Value(tenantKey).(tenantbus.Tenant)
	if !ok {
		return tenantbus.Tenant{}, errors.New("tenant not found in context")
	}

	return v, nil
}

func setTran(ctx context.Context, tx sqldb.CommitRollbacker) context.Context {
	return context.WithValue(ctx, trKey, tx)
}

// GetTran retrieves the value that can manage a transaction.
func GetTran(ctx context.Context) (sqldb.CommitRollbacker, error) {
	v, ok := ctx.Value(trKey).(sqldb.CommitRollbacker)
	if !ok {
		return nil, errors.New("transaction not found in context")
	}

	return v, nil
}

// GetActor builds the permission actor for the authenticated user.
func GetActor(ctx context.Context) (permbus.Actor, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return permbus.Actor{}, err
	}

	claims := GetClaims(ctx)

	r, err := role.Parse(claims.Role)
	if err != nil {
		return permbus.Actor{}, err
	}

	var tenantID uuid.UUID
	if claims.TenantID != "" {
		tenantID, err = uuid.Parse(claims.TenantID)
		if err != nil {
			return permbus.Actor{}, err
		}
	}

	return permbus.Actor{
		ID:       userID,
		TenantID: tenantID,
		Role:     r,
	}, nil
}
