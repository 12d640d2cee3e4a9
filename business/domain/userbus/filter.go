package userbus

import (
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/name"
	"github.com/workforcehq/jobboard/business/types/role"
)

// QueryFilter holds the available fields a query can be filtered on. The
// tenant id is always applied by the app layer from the request context.
type QueryFilter struct {
	ID             *uuid.UUID
	TenantID       *uuid.UUID
	Name           *name.Name
	Email          *mail.Address
	Role           *role.Role
	Enabled        *bool
	StartCreatedAt *time.Time
	EndCreatedAt   *time.Time
}
