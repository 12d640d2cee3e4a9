package categoryapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/categorybus"
	"github.com/workforcehq/jobboard/business/types/name"
)

// Category represents information about an individual job category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (c Category) Encode() ([]byte, string, error) {
	data, err := json.Marshal(c)
	return data, "application/json", err
}

func toAppCategory(bus categorybus.Category) Category {
	return Category{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Slug:        bus.Slug,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

func toAppCategories(cats []categorybus.Category) []Category {
	app := make([]Category, len(cats))
	for i, cat := range cats {
		app[i] = toAppCategory(cat)
	}
	return app
}

// NewCategory defines the data needed to add a new category.
type NewCategory struct {
	Name string `json:"name" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *NewCategory) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewCategory) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewCategory(app NewCategory, tenantID uuid.UUID) (categorybus.NewCategory, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return categorybus.NewCategory{}, fmt.Errorf("parse name: %w", err)
	}

	bus := categorybus.NewCategory{
		TenantID: tenantID,
		Name:     nme,
	}

	return bus, nil
}

// UpdateCategory defines the data needed to update a category.
type UpdateCategory struct {
	Name *string `json:"name"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateCategory) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateCategory) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateCategory(app UpdateCategory) (categorybus.UpdateCategory, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return categorybus.UpdateCategory{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	bus := categorybus.UpdateCategory{
		Name: nme,
	}

	return bus, nil
}
