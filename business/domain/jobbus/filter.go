package jobbus

import (
	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

// QueryFilter holds the available fields a query can be filtered on.
// PublishedOnly restricts results to the public visibility window:
// status published, not expired, publish date not in the future.
type QueryFilter struct {
	ID            *uuid.UUID
	TenantID      *uuid.UUID
	EmployerID    *uuid.UUID
	CategoryID    *uuid.UUID
	Status        *jobstatus.Status
	Type          *jobtype.Type
	Location      *string
	Search        *string
	Featured      *bool
	Remote        *bool
	PublishedOnly bool
}
