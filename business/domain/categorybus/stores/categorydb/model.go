package categorydb

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/types/name"
)

type category struct {
	ID        uuid.UUID `db:"category_id"`
	TenantID  uuid.UUID `db:"tenant_id"`
	Name      string    `db:"name"`
	Slug      string    `db:"slug"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func toDBCategory(bus categorybus.Category) category {
	return category{
		ID:        bus.ID,
		TenantID:  bus.TenantID,
		Name:      bus.Name.String(),
		Slug:      bus.Slug,
		CreatedAt: bus.CreatedAt.UTC(),
		UpdatedAt: bus.UpdatedAt.UTC(),
	}
}

func toBusCategory(db category) (categorybus.Category, error) {
	nme, err := name.Parse(db.Name)
	if err != nil {
		return categorybus.Category{}, fmt.Errorf("parse name: %w", err)
	}

	bus := categorybus.Category{
		ID:        db.ID,
		TenantID:  db.TenantID,
		Name:      nme,
		Slug:      db.Slug,
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusCategories(dbs []category) ([]categorybus.Category, error) {
	bus := make([]categorybus.Category, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusCategory(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
