package tenantdb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/name"
)

type tenant struct {
	ID        uuid.UUID      `db:"tenant_id"`
	Name      string         `db:"name"`
	Slug      string         `db:"slug"`
	Domain    sql.NullString `db:"domain"`
	Active    bool           `db:"active"`
	Modules   string         `db:"modules"`
	Country   string         `db:"country"`
	Currency  string         `db:"currency"`
	Locale    string         `db:"locale"`
	Webhook   sql.NullString `db:"webhook_url"`
	CreatedAt time.Time      `db:"created_at"`
	UpdatedAt time.Time      `db:"updated_at"`
}

func toDBTenant(bus tenantbus.Tenant) tenant {
	return tenant{
		ID:   bus.ID,
		Name: bus.Name.String(),
		Slug: bus.Slug,
		Domain: sql.NullString{
			String: bus.Domain,
			Valid:  bus.Domain != "",
		},
		Active:    bus.Active,
		Modules:   bus.Modules.String(),
		Country:   bus.Country,
		Currency:  bus.Currency,
		Locale:    bus.Locale,
		Webhook: sql.NullString{
			String: bus.WebhookURL,
			Valid:  bus.WebhookURL != "",
		},
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusTenant(db tenant) (tenantbus.Tenant, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse name: %w", err)
	}

	modules, err := module.ParseSet(db.Modules)
	if err != nil {
		return tenantbus.Tenant{}, fmt.Errorf("parse modules: %w", err)
	}

	bus := tenantbus.Tenant{
		ID:         db.ID,
		Name:       nme,
		Slug:       db.Slug,
		Domain:     db.Domain.String,
		Active:     db.Active,
		Modules:    modules,
		Country:    db.Country,
		Currency:   db.Currency,
		Locale:     db.Locale,
		WebhookURL: db.Webhook.String,
		CreatedAt:  db.CreatedAt.In(time.Local),
		UpdatedAt:  db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}
