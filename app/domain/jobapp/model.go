package jobapp

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/app/sdk/errs"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/domain/userbus"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

// Job represents information about an individual job posting.
type Job struct {
	ID             string   `json:"id"`
	TenantID       string   `json:"tenantId"`
	EmployerID     string   `json:"employerId"`
	CategoryID     string   `json:"categoryId,omitempty"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description"`
	Requirements   string   `json:"requirements"`
	Location       string   `json:"location"`
	Latitude       *float64 `json:"latitude,omitempty"`
	Longitude      *float64 `json:"longitude,omitempty"`
	Type           string   `json:"type"`
	SalaryMin      *float64 `json:"salaryMin,omitempty"`
	SalaryMax      *float64 `json:"salaryMax,omitempty"`
	SalaryCurrency string   `json:"salaryCurrency,omitempty"`
	SalaryPeriod   string   `json:"salaryPeriod,omitempty"`
	ShowSalary     bool     `json:"showSalary"`
	Status         string   `json:"status"`
	Featured       bool     `json:"featured"`
	Remote         bool     `json:"remote"`
	ContactEmail   string   `json:"contactEmail"`
	PublishedAt    string   `json:"publishedAt,omitempty"`
	ExpiresAt      string   `json:"expiresAt,omitempty"`
	ExternalID     string   `json:"externalId,omitempty"`
	ExternalSource string   `json:"externalSource,omitempty"`
	SyncedAt       string   `json:"syncedAt,omitempty"`
	DateCreated    string   `json:"dateCreated"`
	DateUpdated    string   `json:"dateUpdated"`
}

// Encode implements the web.Encoder interface.
func (j Job) Encode() ([]byte, string, error) {
	data, err := json.Marshal(j)
	return data, "application/json", err
}

func toAppJob(bus jobbus.Job) Job {
	app := Job{
		ID:             bus.ID.String(),
		TenantID:       bus.TenantID.String(),
		EmployerID:     bus.EmployerID.String(),
		Title:          bus.Title,
		Slug:           bus.Slug,
		Summary:        bus.Summary,
		Description:    bus.Description,
		Requirements:   bus.Requirements,
		Location:       bus.Location,
		Latitude:       bus.Latitude,
		Longitude:      bus.Longitude,
		Type:           bus.Type.String(),
		SalaryMin:      bus.SalaryMin,
		SalaryMax:      bus.SalaryMax,
		SalaryCurrency: bus.SalaryCurrency,
		SalaryPeriod:   bus.SalaryPeriod,
		ShowSalary:     bus.ShowSalary,
		Status:         bus.Status.String(),
		Featured:       bus.Featured,
		Remote:         bus.Remote,
		ContactEmail:   bus.ContactEmail.Address,
		ExternalID:     bus.ExternalID,
		ExternalSource: bus.ExternalSource,
		DateCreated:    bus.CreatedAt.Format(time.RFC3339),
		DateUpdated:    bus.UpdatedAt.Format(time.RFC3339),
	}

	if bus.CategoryID != nil {
		app.CategoryID = bus.CategoryID.String()
	}

	if bus.PublishedAt != nil {
		app.PublishedAt = bus.PublishedAt.Format(time.RFC3339)
	}

	if bus.ExpiresAt != nil {
		app.ExpiresAt = bus.ExpiresAt.Format(time.RFC3339)
	}

	if bus.SyncedAt != nil {
		app.SyncedAt = bus.SyncedAt.Format(time.RFC3339)
	}

	return app
}

func toAppJobs(jobs []jobbus.Job) []Job {
	app := make([]Job, len(jobs))
	for i, job := range jobs {
		app[i] = toAppJob(job)
	}
	return app
}

// NewJob defines the data needed to add a new job.
type NewJob struct {
	CategoryID     string   `json:"categoryId" validate:"omitempty,uuid"`
	Title          string   `json:"title" validate:"required"`
	Summary        string   `json:"summary"`
	Description    string   `json:"description" validate:"required"`
	Requirements   string   `json:"requirements"`
	Location       string   `json:"location"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	Type           string   `json:"type" validate:"required"`
	SalaryMin      *float64 `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salaryMax" validate:"omitempty,gte=0"`
	SalaryCurrency string   `json:"salaryCurrency"`
	SalaryPeriod   string   `json:"salaryPeriod"`
	ShowSalary     bool     `json:"showSalary"`
	Status         string   `json:"status" validate:"required"`
	Featured       bool     `json:"featured"`
	Remote         bool     `json:"remote"`
	ContactEmail   string   `json:"contactEmail" validate:"omitempty,email"`
	ExpiresAt      string   `json:"expiresAt"`
}

// Decode implements the web.Decoder interface.
func (app *NewJob) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app NewJob) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusNewJob(app NewJob, tenantID uuid.UUID, employer userbus.User) (jobbus.NewJob, error) {
	jobType, err := jobtype.Parse(app.Type)
	if err != nil {
		return jobbus.NewJob{}, fmt.Errorf("parse type: %w", err)
	}

	status, err := jobstatus.ParseCreate(app.Status)
	if err != nil {
		return jobbus.NewJob{}, fmt.Errorf("parse status: %w", err)
	}

	var categoryID *uuid.UUID
	if app.CategoryID != "" {
		id, err := uuid.Parse(app.CategoryID)
		if err != nil {
			return jobbus.NewJob{}, fmt.Errorf("parse category: %w", err)
		}
		categoryID = &id
	}

	var contact mail.Address
	if app.ContactEmail != "" {
		addr, err := mail.ParseAddress(app.ContactEmail)
		if err != nil {
			return jobbus.NewJob{}, fmt.Errorf("parse contact email: %w", err)
		}
		contact = *addr
	}

	var expiresAt *time.Time
	if app.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, app.ExpiresAt)
		if err != nil {
			return jobbus.NewJob{}, fmt.Errorf("parse expires at: %w", err)
		}
		expiresAt = &t
	}

	bus := jobbus.NewJob{
		TenantID:       tenantID,
		EmployerID:     employer.ID,
		EmployerEmail:  employer.Email,
		CategoryID:     categoryID,
		Title:          app.Title,
		Summary:        app.Summary,
		Description:    app.Description,
		Requirements:   app.Requirements,
		Location:       app.Location,
		Latitude:       app.Latitude,
		Longitude:      app.Longitude,
		Type:           jobType,
		SalaryMin:      app.SalaryMin,
		SalaryMax:      app.SalaryMax,
		SalaryCurrency: app.SalaryCurrency,
		SalaryPeriod:   app.SalaryPeriod,
		ShowSalary:     app.ShowSalary,
		Status:         status,
		Featured:       app.Featured,
		Remote:         app.Remote,
		ContactEmail:   contact,
		ExpiresAt:      expiresAt,
	}

	return bus, nil
}

// UpdateJob defines the data needed to update a job.
type UpdateJob struct {
	CategoryID     *string  `json:"categoryId" validate:"omitempty,uuid"`
	Title          *string  `json:"title"`
	Summary        *string  `json:"summary"`
	Description    *string  `json:"description"`
	Requirements   *string  `json:"requirements"`
	Location       *string  `json:"location"`
	Latitude       *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64 `json:"longitude" validate:"omitempty,longitude"`
	Type           *string  `json:"type"`
	SalaryMin      *float64 `json:"salaryMin" validate:"omitempty,gte=0"`
	SalaryMax      *float64 `json:"salaryMax" validate:"omitempty,gte=0"`
	SalaryCurrency *string  `json:"salaryCurrency"`
	SalaryPeriod   *string  `json:"salaryPeriod"`
	ShowSalary     *bool    `json:"showSalary"`
	Featured       *bool    `json:"featured"`
	Remote         *bool    `json:"remote"`
	ContactEmail   *string  `json:"contactEmail" validate:"omitempty,email"`
	ExpiresAt      *string  `json:"expiresAt"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateJob) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateJob) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusUpdateJob(app UpdateJob) (jobbus.UpdateJob, error) {
	bus := jobbus.UpdateJob{
		Title:          app.Title,
		Summary:        app.Summary,
		Description:    app.Description,
		Requirements:   app.Requirements,
		Location:       app.Location,
		Latitude:       app.Latitude,
		Longitude:      app.Longitude,
		SalaryMin:      app.SalaryMin,
		SalaryMax:      app.SalaryMax,
		SalaryCurrency: app.SalaryCurrency,
		SalaryPeriod:   app.SalaryPeriod,
		ShowSalary:     app.ShowSalary,
		Featured:       app.Featured,
		Remote:         app.Remote,
	}

	if app.CategoryID != nil {
		id, err := uuid.Parse(*app.CategoryID)
		if err != nil {
			return jobbus.UpdateJob{}, fmt.Errorf("parse category: %w", err)
		}
		bus.CategoryID = &id
	}

	if app.Type != nil {
		t, err := jobtype.Parse(*app.Type)
		if err != nil {
			return jobbus.UpdateJob{}, fmt.Errorf("parse type: %w", err)
		}
		bus.Type = &t
	}

	if app.ContactEmail != nil {
		addr, err := mail.ParseAddress(*app.ContactEmail)
		if err != nil {
			return jobbus.UpdateJob{}, fmt.Errorf("parse contact email: %w", err)
		}
		bus.ContactEmail = addr
	}

	if app.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *app.ExpiresAt)
		if err != nil {
			return jobbus.UpdateJob{}, fmt.Errorf("parse expires at: %w", err)
		}
		bus.ExpiresAt = &t
	}

	return bus, nil
}

// UpdateJobStatus defines the data needed to change a job status.
type UpdateJobStatus struct {
	Status string `json:"status" validate:"required"`
}

// Decode implements the web.Decoder interface.
func (app *UpdateJobStatus) Decode(data []byte) error {
	return json.Unmarshal(data, app)
}

// Validate checks the data in the model is considered clean.
func (app UpdateJobStatus) Validate() error {
	if err := errs.Check(app); err != nil {
		return errs.New(errs.InvalidArgument, fmt.Errorf("validate: %w", err))
	}
	return nil
}

func toBusStatus(app UpdateJobStatus) (jobstatus.Status, error) {
	status, err := jobstatus.Parse(app.Status)
	if err != nil {
		return jobstatus.Status{}, fmt.Errorf("parse status: %w", err)
	}

	return status, nil
}
