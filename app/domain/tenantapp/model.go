package tenantapp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/types/module"
	"github.com/workforcehq/jobboard/business/types/name"
)

// Tenant represents information about a client organization.
type Tenant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Domain      string `json:"domain"`
	Active      bool   `json:"active"`
	Modules     string `json:"modules"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
	Locale      string `json:"locale"`
	WebhookURL  string `json:"webhookUrl"`
	DateCreated string `json:"dateCreated"`
	DateUpdated string `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (t Tenant) Encode() ([]byte, string, error) {
	data, err := json.Marshal(t)
	return data, "application/json", err
}

func toAppTenant(bus tenantbus.Tenant) Tenant {
	return Tenant{
		ID:          bus.ID.String(),
		Name:        bus.Name.String(),
		Slug:        bus.Slug,
		Domain:      bus.Domain,
		Active:      bus.Active,
		Modules:     bus.Modules.String(),
		Country:     bus.Country,
		Currency:    bus.Currency,
		Locale:      bus.Locale,
		WebhookURL:  bus.WebhookURL,
		DateCreated: bus.CreatedAt.Format(time.RFC3339),
		DateUpdated: bus.UpdatedAt.Format(time.RFC3339),
	}
}

// NewTenant defines the data needed to provision a tenant.
type NewTenant struct {
	Name       string `json:"name" validate:"required"`
	Slug       string `json:"slug" validate:"required,lowercase,alphanum"`
	Domain     string `json:"domain"`
	Modules    string `json:"modules"`
	Country    string `json:"country"`
	Currency   string `json:"currency"`
	Locale     string `json:"locale"`
	WebhookURL string `json:"webhookUrl" validate:"omitempty,url"`
}

// Decode implements the web.Decoder interface.
func (app *NewTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewTenant(app NewTenant) (tenantbus.NewTenant, error) {
	nme, err := name.Parse(app.Name)
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse name: %w", err)
	}

	modules, err := module.ParseSet(app.Modules)
	if err != nil {
		return tenantbus.NewTenant{}, fmt.Errorf("parse modules: %w", err)
	}

	bus := tenantbus.NewTenant{
		Name:       nme,
		Slug:       app.Slug,
		Domain:     app.Domain,
		Modules:    modules,
		Country:    app.Country,
		Currency:   app.Currency,
		Locale:     app.Locale,
		WebhookURL: app.WebhookURL,
	}

	return bus, nil
}

// UpdateTenant defines the data needed to update a tenant.
type UpdateTenant struct {
	Name       *string `json:"name"`
	Domain     *string `json:"domain"`
	Active     *bool   `json:"active"`
	Modules    *string `json:"modules"`
	Country    *string `json:"country"`
	Currency   *string `json:"currency"`
	Locale     *string `json:"locale"`
	WebhookURL *string `json:"webhookUrl" validate:"omitempty,url"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateTenant) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateTenant) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateTenant(app UpdateTenant) (tenantbus.UpdateTenant, error) {
	var nme *name.Name
	if app.Name != nil {
		nm, err := name.Parse(*app.Name)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse name: %w", err)
		}
		nme = &nm
	}

	var modules *module.Set
	if app.Modules != nil {
		set, err := module.ParseSet(*app.Modules)
		if err != nil {
			return tenantbus.UpdateTenant{}, fmt.Errorf("parse modules: %w", err)
		}
		modules = &set
	}

	bus := tenantbus.UpdateTenant{
		Name:       nme,
		Domain:     app.Domain,
		Active:     app.Active,
		Modules:    modules,
		Country:    app.Country,
		Currency:   app.Currency,
		Locale:     app.Locale,
		WebhookURL: app.WebhookURL,
	}

	return bus, nil
}
