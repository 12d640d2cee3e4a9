package categorybus

import (
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/name"
)

// Category represents information about an individual job category.
type Category struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Name      name.Name
	Slug      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCategory contains information needed to create a new category.
type NewCategory struct {
	TenantID uuid.UUID
	Name     name.Name
}

// UpdateCategory contains information needed to update a category.
type UpdateCategory struct {
	Name *name.Name
}
