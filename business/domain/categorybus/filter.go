package categorybus

import (
	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/name"
)

// QueryFilter holds the available fields a query can be filtered on.
type QueryFilter struct {
	ID       *uuid.UUID
	TenantID *uuid.UUID
	Name     *name.Name
}
