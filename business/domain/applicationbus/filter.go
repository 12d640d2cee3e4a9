package applicationbus

import (
	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/appstatus"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID       *uuid.UUID
	TenantID *uuid.UUID
	JobID    *uuid.UUID
	Status   *appstatus.Status
	Email    *string
}
