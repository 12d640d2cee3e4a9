package permbus_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/domain/permbus"
	"github.com/workforcehq/jobboard/business/domain/permbus/stores/permcache"
	"github.com/workforcehq/jobboard/business/types/actions"
	"github.com/workforcehq/jobboard/business/types/resource"
	"github.com/workforcehq/jobboard/business/types/role"
	"github.com/workforcehq/jobboard/foundation/logger"
)

func newCore(t *testing.T) *permbus.Core {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	grants, err := permcache.NewStore(log)
	require.NoError(t, err)

	return permbus.NewCore(log, grants)
}

func TestAllowed(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		role    role.Role
		res     resource.Resource
		act     actions.Action
		allowed bool
	}{
		{"super admin reaches everything", role.SuperAdmin, resource.Tenant, actions.Delete, true},
		{"admin creates users", role.Admin, resource.User, actions.Create, true},
		{"admin reads own tenant", role.Admin, resource.Tenant, actions.Get, true},
		{"admin cannot create tenants", role.Admin, resource.Tenant, actions.Create, false},
		{"employer creates jobs", role.Employer, resource.Job, actions.Create, true},
		{"employer cannot create users", role.Employer, resource.User, actions.Create, false},
		{"employer cannot manage categories", role.Employer, resource.Category, actions.Create, false},
		{"employer lists applications", role.Employer, resource.Application, actions.List, true},
		{"candidate lists jobs", role.Candidate, resource.Job, actions.List, true},
		{"candidate cannot create jobs", role.Candidate, resource.Job, actions.Create, false},
		{"candidate cannot touch applications status", role.Candidate, resource.Application, actions.ChangeStatus, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.Allowed(ctx, tt.role, tt.res, tt.act)
			if tt.allowed {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, permbus.ErrForbidden)
		})
	}
}

func TestCheckUser(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	tenantID := uuid.New()
	otherTenantID := uuid.New()
	userID := uuid.New()

	admin := permbus.Actor{ID: uuid.New(), TenantID: tenantID, Role: role.Admin}
	superAdmin := permbus.Actor{ID: uuid.New(), Role: role.SuperAdmin}
	candidate := permbus.Actor{ID: userID, TenantID: tenantID, Role: role.Candidate}

	target := permbus.UserTarget{ID: userID, TenantID: tenantID}

	t.Run("self can read and update", func(t *testing.T) {
		assert.NoError(t, core.CheckUser(ctx, candidate, actions.Get, target))
		assert.NoError(t, core.CheckUser(ctx, candidate, actions.Update, target))
	})

	t.Run("self cannot disable or delete itself", func(t *testing.T) {
		assert.ErrorIs(t, core.CheckUser(ctx, candidate, actions.ChangeStatus, target), permbus.ErrForbidden)
		assert.ErrorIs(t, core.CheckUser(ctx, candidate, actions.Delete, target), permbus.ErrForbidden)
	})

	t.Run("self restriction binds super admins too", func(t *testing.T) {
		self := permbus.UserTarget{ID: superAdmin.ID}
		assert.ErrorIs(t, core.CheckUser(ctx, superAdmin, actions.ChangeStatus, self), permbus.ErrForbidden)
		assert.ErrorIs(t, core.CheckUser(ctx, superAdmin, actions.Delete, self), permbus.ErrForbidden)
	})

	t.Run("tenant admin manages users in its tenant", func(t *testing.T) {
		assert.NoError(t, core.CheckUser(ctx, admin, actions.ChangeStatus, target))
		assert.NoError(t, core.CheckUser(ctx, admin, actions.ChangeType, target))
		assert.NoError(t, core.CheckUser(ctx, admin, actions.Delete, target))
	})

	t.Run("tenant admin stops at its tenant boundary", func(t *testing.T) {
		foreign := permbus.UserTarget{ID: uuid.New(), TenantID: otherTenantID}
		assert.ErrorIs(t, core.CheckUser(ctx, admin, actions.Get, foreign), permbus.ErrForbidden)
	})

	t.Run("candidate cannot touch other users", func(t *testing.T) {
		other := permbus.UserTarget{ID: uuid.New(), TenantID: tenantID}
		assert.ErrorIs(t, core.CheckUser(ctx, candidate, actions.Get, other), permbus.ErrForbidden)
	})
}

func TestCheckJob(t *testing.T) {
	core := newCore(t)
	ctx := context.Background()

	tenantID := uuid.New()
	employerID := uuid.New()

	target := permbus.JobTarget{TenantID: tenantID, EmployerID: employerID}

	t.Run("owner may act", func(t *testing.T) {
		owner := permbus.Actor{ID: employerID, TenantID: tenantID, Role: role.Employer}
		assert.NoError(t, core.CheckJob(ctx, owner, actions.Update, target))
	})

	t.Run("other employer may not", func(t *testing.T) {
		other := permbus.Actor{ID: uuid.New(), TenantID: tenantID, Role: role.Employer}
		assert.ErrorIs(t, core.CheckJob(ctx, other, actions.Update, target), permbus.ErrForbidden)
	})

	t.Run("tenant admin may act", func(t *testing.T) {
		admin := permbus.Actor{ID: uuid.New(), TenantID: tenantID, Role: role.Admin}
		assert.NoError(t, core.CheckJob(ctx, admin, actions.Delete, target))
	})

	t.Run("foreign tenant admin may not", func(t *testing.T) {
		admin := permbus.Actor{ID: uuid.New(), TenantID: uuid.New(), Role: role.Admin}
		assert.ErrorIs(t, core.CheckJob(ctx, admin, actions.Delete, target), permbus.ErrForbidden)
	})

	t.Run("super admin may act anywhere", func(t *testing.T) {
		sa := permbus.Actor{ID: uuid.New(), Role: role.SuperAdmin}
		assert.NoError(t, core.CheckJob(ctx, sa, actions.Delete, target))
	})
}
