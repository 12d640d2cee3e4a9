package permbus

import (
	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/role"
)

// Actor is the authenticated identity a check runs on behalf of.
type Actor struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	Role     role.Role
}

// UserTarget identifies the user record an action is aimed at.
type UserTarget struct {
	ID       uuid.UUID
	TenantID uuid.UUID
}

// JobTarget identifies the job an action is aimed at.
type JobTarget struct {
	TenantID   uuid.UUID
	EmployerID uuid.UUID
}
