// Package permbus decides whether an actor may perform an action. It has two
// layers: a role grant matrix (which resource/action pairs a role may reach at
// all) backed by the Grants store, and pure per-record rules for users and
// jobs. Both are independent of tenant module gating.
package permbus

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/resource"
	"github.com/workforcehq/jobboard/business/types/role"
	"github.com/workforcehq/jobboard/foundation/logger"
	"github.com/workforcehq/jobboard/foundation/otel"
)

// ErrForbidden is returned when a check denies the action.
var ErrForbidden = errors.New("action forbidden")

// Grants knows which resource/action pairs each role is granted.
type Grants interface {
	Allowed(ctx context.Context, r role.Role, res resource.Resource, act actions.Action) error
}

// Core manages the authorization rule set.
type Core struct {
	log    *logger.Logger
	grants Grants
}

// NewCore constructs a permission core for use.
func NewCore(log *logger.Logger, grants Grants) *Core {
	return &Core{
		log:    log,
		grants: grants,
	}
}

// Allowed checks the role grant matrix for the resource/action pair. It is
// the coarse route-level gate; record-level rules run afterwards.
func (c *Core) Allowed(ctx context.Context, r role.Role, res resource.Resource, act actions.Action) error {
	ctx, span := otel.AddSpan(ctx, "business.permbus.allowed")
	defer span.End()

	return c.grants.Allowed(ctx, r, res, act)
}

// CheckUser applies the user record rules. The self-mutation restrictions on
// status changes and deletion hold for every role, including super admins.
func (c *Core) CheckUser(ctx context.Context, actor Actor, act actions.Action, target UserTarget) error {
	_, span := otel.AddSpan(ctx, "business.permbus.checkuser")
	defer span.End()

	self := actor.ID == target.ID

	switch act {
	case actions.List, actions.Create, actions.ChangeType, actions.Restore:
		if c.isAdminFor(actor, target.TenantID) {
			return nil
		}

	case actions.Get, actions.Update:
		if self || c.isAdminFor(actor, target.TenantID) {
			return nil
		}

	case actions.ChangeStatus, actions.Delete, actions.ForceDelete:
		if self {
			return ErrForbidden
		}
		if c.isAdminFor(actor, target.TenantID) {
			return nil
		}
	}

	return ErrForbidden
}

// CheckJob applies the job ownership rule: the job's employer may act on it,
// and so may an admin within the same tenant.
func (c *Core) CheckJob(ctx context.Context, actor Actor, act actions.Action, target JobTarget) error {
	_, span := otel.AddSpan(ctx, "business.permbus.checkjob")
	defer span.End()

	if actor.ID == target.EmployerID && actor.TenantID == target.TenantID {
		return nil
	}

	if c.isAdminFor(actor, target.TenantID) {
		return nil
	}

	return ErrForbidden
}

// isAdminFor reports whether the actor holds admin power over records in the
// given tenant. Super admins are not tenant scoped.
func (c *Core) isAdminFor(actor Actor, tenantID uuid.UUID) bool {
	if actor.Role.Equal(role.SuperAdmin) {
		return true
	}

	return actor.Role.Equal(role.Admin) && actor.TenantID == tenantID
}
