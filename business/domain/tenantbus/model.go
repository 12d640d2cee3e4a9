package tenantbus

import (
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/name"
)

// Tenant represents a client organization in the system. Slug is the
// subdomain label the tenant is reachable under; Domain is an optional fully
// custom domain.
type Tenant struct {
	ID         uuid.UUID
	Name       name.Name
	Slug       string
	Domain     string
	Active     bool
	Modules    module.Set
	Country    string
	Currency   string
	Locale     string
	WebhookURL string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewTenant contains information needed to create a new tenant.
type NewTenant struct {
	Name       name.Name
	Slug       string
	Domain     string
	Modules    module.Set
	Country    string
	Currency   string
	Locale     string
	WebhookURL string
}

// UpdateTenant contains information needed to update a tenant.
type UpdateTenant struct {
	Name       *name.Name
	Domain     *string
	Active     *bool
	Modules    *module.Set
	Country    *string
	Currency   *string
	Locale     *string
	WebhookURL *string
}
