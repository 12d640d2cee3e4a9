package jobdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/domain/jobbus"
	"github.com/workforcehq/jobboard/business/types/jobstatus"
	"github.com/workforcehq/jobboard/business/types/jobtype"
)

type job struct {
	ID              uuid.UUID       `db:"job_id"`
	TenantID        uuid.UUID       `db:"tenant_id"`
	EmployerID      uuid.NullUUID   `db:"employer_id"`
	CategoryID      uuid.NullUUID   `db:"category_id"`
	Title           string          `db:"title"`
	Slug            string          `db:"slug"`
	Summary         string          `db:"summary"`
	Description     string          `db:"description"`
	Requirements    string          `db:"requirements"`
	Location        string          `db:"location"`
	Latitude        sql.NullFloat64 `db:"latitude"`
	Longitude       sql.NullFloat64 `db:"longitude"`
	Type            string          `db:"job_type"`
	SalaryMin       sql.NullFloat64 `db:"salary_min"`
	SalaryMax       sql.NullFloat64 `db:"salary_max"`
	SalaryCurrency  sql.NullString  `db:"salary_currency"`
	SalaryPeriod    sql.NullString  `db:"salary_period"`
	ShowSalary      bool            `db:"show_salary"`
	Status          string          `db:"status"`
	Featured        bool            `db:"featured"`
	Remote          bool            `db:"remote"`
	ContactEmail    sql.NullString  `db:"contact_email"`
	PublishedAt     sql.NullTime    `db:"published_at"`
	ExpiresAt       sql.NullTime    `db:"expires_at"`
	ExternalID      sql.NullString  `db:"external_id"`
	ExternalSource  sql.NullString  `db:"external_source"`
	ExternalPayload []byte          `db:"external_payload"`
	SyncedAt        sql.NullTime    `db:"synced_at"`
	CreatedAt       time.Time       `db:"created_at"`
	UpdatedAt       time.Time       `db:"updated_at"`
}

func toDBJob(bus jobbus.Job) job {
	db := job{
		ID:       bus.ID,
		TenantID: bus.TenantID,
		EmployerID: uuid.NullUUID{
			UUID:  bus.EmployerID,
			Valid: bus.EmployerID != uuid.Nil,
		},
		Title:           bus.Title,
		Slug:            bus.Slug,
		Summary:         bus.Summary,
		Description:     bus.Description,
		Requirements:    bus.Requirements,
		Location:        bus.Location,
		Type:            bus.Type.String(),
		ShowSalary:      bus.ShowSalary,
		Status:          bus.Status.String(),
		Featured:        bus.Featured,
		Remote:          bus.Remote,
		ContactEmail:    sql.NullString{String: bus.ContactEmail.Address, Valid: bus.ContactEmail.Address != ""},
		ExternalID:      sql.NullString{String: bus.ExternalID, Valid: bus.ExternalID != ""},
		ExternalSource:  sql.NullString{String: bus.ExternalSource, Valid: bus.ExternalSource != ""},
		SalaryCurrency:  sql.NullString{String: bus.SalaryCurrency, Valid: bus.SalaryCurrency != ""},
		SalaryPeriod:    sql.NullString{String: bus.SalaryPeriod, Valid: bus.SalaryPeriod != ""},
		ExternalPayload: bus.ExternalPayload,
		CreatedAt:       bus.CreatedAt.UTC(),
		UpdatedAt:       bus.UpdatedAt.UTC(),
	}

	if bus.CategoryID != nil {
		db.CategoryID = uuid.NullUUID{UUID: *bus.CategoryID, Valid: true}
	}

	if bus.Latitude != nil {
		db.Latitude = sql.NullFloat64{Float64: *bus.Latitude, Valid: true}
	}

	if bus.Longitude != nil {
		db.Longitude = sql.NullFloat64{Float64: *bus.Longitude, Valid: true}
	}

	if bus.SalaryMin != nil {
		db.SalaryMin = sql.NullFloat64{Float64: *bus.SalaryMin, Valid: true}
	}

	if bus.SalaryMax != nil {
		db.SalaryMax = sql.NullFloat64{Float64: *bus.SalaryMax, Valid: true}
	}

	if bus.PublishedAt != nil {
		db.PublishedAt = sql.NullTime{Time: bus.PublishedAt.UTC(), Valid: true}
	}

	if bus.ExpiresAt != nil {
		db.ExpiresAt = sql.NullTime{Time: bus.ExpiresAt.UTC(), Valid: true}
	}

	if bus.SyncedAt != nil {
		db.SyncedAt = sql.NullTime{Time: bus.SyncedAt.UTC(), Valid: true}
	}

	return db
}

func toBusJob(db job) (jobbus.Job, error) {
	typ, err := jobtype.Parse(db.Type)
	if err != nil {
		return jobbus.Job{}, fmt.Errorf("parse type: %w", err)
	}

	status, err := jobstatus.Parse(db.Status)
	if err != nil {
		return jobbus.Job{}, fmt.Errorf("parse status: %w", err)
	}

	bus := jobbus.Job{
		ID:              db.ID,
		TenantID:        db.TenantID,
		EmployerID:      db.EmployerID.UUID,
		Title:           db.Title,
		Slug:            db.Slug,
		Summary:         db.Summary,
		Description:     db.Description,
		Requirements:    db.Requirements,
		Location:        db.Location,
		Type:            typ,
		SalaryCurrency:  db.SalaryCurrency.String,
		SalaryPeriod:    db.SalaryPeriod.String,
		ShowSalary:      db.ShowSalary,
		Status:          status,
		Featured:        db.Featured,
		Remote:          db.Remote,
		ContactEmail:    mail.Address{Address: db.ContactEmail.String},
		ExternalID:      db.ExternalID.String,
		ExternalSource:  db.ExternalSource.String,
		ExternalPayload: json.RawMessage(db.ExternalPayload),
		CreatedAt:       db.CreatedAt.In(time.Local),
		UpdatedAt:       db.UpdatedAt.In(time.Local),
	}

	if db.CategoryID.Valid {
		id := db.CategoryID.UUID
		bus.CategoryID = &id
	}

	if db.Latitude.Valid {
		v := db.Latitude.Float64
		bus.Latitude = &v
	}

	if db.Longitude.Valid {
		v := db.Longitude.Float64
		bus.Longitude = &v
	}

	if db.SalaryMin.Valid {
		v := db.SalaryMin.Float64
		bus.SalaryMin = &v
	}

	if db.SalaryMax.Valid {
		v := db.SalaryMax.Float64
		bus.SalaryMax = &v
	}

	if db.PublishedAt.Valid {
		t := db.PublishedAt.Time.In(time.Local)
		bus.PublishedAt = &t
	}

	if db.ExpiresAt.Valid {
		t := db.ExpiresAt.Time.In(time.Local)
		bus.ExpiresAt = &t
	}

	if db.SyncedAt.Valid {
		t := db.SyncedAt.Time.In(time.Local)
		bus.SyncedAt = &t
	}

	return bus, nil
}

func toBusJobs(dbs []job) ([]jobbus.Job, error) {
	bus := make([]jobbus.Job, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusJob(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
