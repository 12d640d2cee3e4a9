package jobbus

import (
	"encoding/json"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

// Job represents information about an individual job posting.
type Job struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	EmployerID      uuid.UUID
	CategoryID      *uuid.UUID
	Title           string
	Slug            string
	Summary         string
	Description     string
	Requirements    string
	Location        string
	Latitude        *float64
	Longitude       *float64
	Type            jobtype.Type
	SalaryMin       *float64
	SalaryMax       *float64
	SalaryCurrency  string
	SalaryPeriod    string
	ShowSalary      bool
	Status          jobstatus.Status
	Featured        bool
	Remote          bool
	ContactEmail    mail.Address
	PublishedAt     *time.Time
	ExpiresAt       *time.Time
	ExternalID      string
	ExternalSource  string
	ExternalPayload json.RawMessage
	SyncedAt        *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewJob contains information needed to create a new job. EmployerEmail is
// the creating employer's address, used when ContactEmail is omitted.
type NewJob struct {
	TenantID       uuid.UUID
	EmployerID     uuid.UUID
	EmployerEmail  mail.Address
	CategoryID     *uuid.UUID
	Title          string
	Summary        string
	Description    string
	Requirements   string
	Location       string
	Latitude       *float64
	Longitude      *float64
	Type           jobtype.Type
	SalaryMin      *float64
	SalaryMax      *float64
	SalaryCurrency string
	SalaryPeriod   string
	ShowSalary     bool
	Status         jobstatus.Status
	Featured       bool
	Remote         bool
	ContactEmail   mail.Address
	ExpiresAt      *time.Time
}

// UpdateJob contains information needed to update a job.
type UpdateJob struct {
	CategoryID     *uuid.UUID
	Title          *string
	Summary        *string
	Description    *string
	Requirements   *string
	Location       *string
	Latitude       *float64
	Longitude      *float64
	Type           *jobtype.Type
	SalaryMin      *float64
	SalaryMax      *float64
	SalaryCurrency *string
	SalaryPeriod   *string
	ShowSalary     *bool
	Status         *jobstatus.Status
	Featured       *bool
	Remote         *bool
	ContactEmail   *mail.Address
	ExpiresAt      *time.Time
}

// UpsertJob contains the fields an external source can push for a job. Zero
// valued optional fields fall back to documented defaults.
type UpsertJob struct {
	TenantID       uuid.UUID
	ExternalSource string
	ExternalID     string
	Title          string
	Summary        string
	Description    string
	Requirements   string
	Location       string
	Type           jobtype.Type
	SalaryMin      *float64
	SalaryMax      *float64
	SalaryCurrency string
	Status         jobstatus.Status
	Remote         bool
	ExpiresAt      *time.Time
	Payload        json.RawMessage
}
