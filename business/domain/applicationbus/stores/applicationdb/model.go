package applicationdb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/types/appstatus"
)

type application struct {
	ID             uuid.UUID       `db:"application_id"`
	TenantID       uuid.UUID       `db:"tenant_id"`
	JobID          uuid.UUID       `db:"job_id"`
	CandidateID    uuid.NullUUID   `db:"candidate_id"`
	Status         string          `db:"status"`
	CoverLetter    string          `db:"cover_letter"`
	ExpectedSalary sql.NullFloat64 `db:"expected_salary"`
	AvailableFrom  sql.NullTime    `db:"available_from"`
	Notes          string          `db:"notes"`
	CandidateData  []byte          `db:"candidate_data"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

func toDBApplication(bus applicationbus.Application) (application, error) {
	data, err := json.Marshal(bus.CandidateData)
	if err != nil {
		return application{}, fmt.Errorf("marshal candidate data: %w", err)
	}

	db := application{
		ID:            bus.ID,
		TenantID:      bus.TenantID,
		JobID:         bus.JobID,
		Status:        bus.Status.String(),
		CoverLetter:   bus.CoverLetter,
		Notes:         bus.Notes,
		CandidateData: data,
		CreatedAt:     bus.CreatedAt.UTC(),
		UpdatedAt:     bus.UpdatedAt.UTC(),
	}

	if bus.CandidateID != nil {
		db.CandidateID = uuid.NullUUID{UUID: *bus.CandidateID, Valid: true}
	}

	if bus.ExpectedSalary != nil {
		db.ExpectedSalary = sql.NullFloat64{Float64: *bus.ExpectedSalary, Valid: true}
	}

	if bus.AvailableFrom != nil {
		db.AvailableFrom = sql.NullTime{Time: bus.AvailableFrom.UTC(), Valid: true}
	}

	return db, nil
}

func toBusApplication(db application) (applicationbus.Application, error) {
	status, err := appstatus.Parse(db.Status)
	if err != nil {
		return applicationbus.Application{}, fmt.Errorf("parse status: %w", err)
	}

	var data applicationbus.CandidateData
	if len(db.CandidateData) > 0 {
		if err := json.Unmarshal(db.CandidateData, &data); err != nil {
			return applicationbus.Application{}, fmt.Errorf("unmarshal candidate data: %w", err)
		}
	}

	bus := applicationbus.Application{
		ID:            db.ID,
		TenantID:      db.TenantID,
		JobID:         db.JobID,
		Status:        status,
		CoverLetter:   db.CoverLetter,
		Notes:         db.Notes,
		CandidateData: data,
		CreatedAt:     db.CreatedAt.In(time.Local),
		UpdatedAt:     db.UpdatedAt.In(time.Local),
	}

	if db.CandidateID.Valid {
		id := db.CandidateID.UUID
		bus.CandidateID = &id
	}

	if db.ExpectedSalary.Valid {
		v := db.ExpectedSalary.Float64
		bus.ExpectedSalary = &v
	}

	if db.AvailableFrom.Valid {
		t := db.AvailableFrom.Time.In(time.Local)
		bus.AvailableFrom = &t
	}

	return bus, nil
}

func toBusApplications(dbs []application) ([]applicationbus.Application, error) {
	bus := make([]applicationbus.Application, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusApplication(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
