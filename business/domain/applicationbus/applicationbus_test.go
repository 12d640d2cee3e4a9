package applicationbus_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/domain/applicationbus"
	"github.com/workforcehq/jobboard/business/sdk/order"
	"github.com/workforcehq/jobboard/business/sdk/page"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/business/types/appstatus"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// stubStorer keeps created applications in memory and answers the duplicate
// pre-check from them.
type stubStorer struct {
	created []applicationbus.Application
}

func (s *stubStorer) NewWithTx(tx sqldb.CommitRollbacker) (applicationbus.Storer, error) {
	return s, nil
}

func (s *stubStorer) Create(ctx context.Context, app applicationbus.Application) error {
	s.created = append(s.created, app)
	return nil
}

func (s *stubStorer) Update(ctx context.Context, app applicationbus.Application) error {
	return nil
}

func (s *stubStorer) Query(ctx context.Context, filter applicationbus.QueryFilter, orderBy order.By, page page.Page) ([]applicationbus.Application, error) {
	return nil, nil
}

func (s *stubStorer) Count(ctx context.Context, filter applicationbus.QueryFilter) (int, error) {
	return len(s.created), nil
}

func (s *stubStorer) QueryByID(ctx context.Context, applicationID uuid.UUID) (applicationbus.Application, error) {
	return applicationbus.Application{}, applicationbus.ErrNotFound
}

func (s *stubStorer) ExistsByEmail(ctx context.Context, jobID uuid.UUID, tenantID uuid.UUID, email string) (bool, error) {
	for _, app := range s.created {
		if app.JobID == jobID && app.TenantID == tenantID && strings.EqualFold(app.CandidateData.Email, email) {
			return true, nil
		}
	}
	return false, nil
}

func newCore(t *testing.T) (*applicationbus.Core, *stubStorer) {
	t.Helper()

	storer := &stubStorer{}
	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)

	return applicationbus.NewCore(log, storer), storer
}

func TestCreate(t *testing.T) {
	core, _ := newCore(t)

	na := applicationbus.NewApplication{
		TenantID: uuid.New(),
		JobID:    uuid.New(),
		CandidateData: applicationbus.CandidateData{
			FirstName: "Awa",
			LastName:  "Diop",
			Email:     "awa@example.test",
		},
	}

	app, err := core.Create(context.Background(), na)
	require.NoError(t, err)

	assert.True(t, app.Status.Equal(appstatus.Pending))
	assert.False(t, app.CandidateData.SubmittedAt.IsZero())
}

func TestCreateDuplicate(t *testing.T) {
	core, _ := newCore(t)
	ctx := context.Background()

	jobID := uuid.New()
	tenantID := uuid.New()

	na := applicationbus.NewApplication{
		TenantID: tenantID,
		JobID:    jobID,
		CandidateData: applicationbus.CandidateData{
			FirstName: "Awa",
			LastName:  "Diop",
			Email:     "awa@example.test",
		},
	}

	_, err := core.Create(ctx, na)
	require.NoError(t, err)

	// Same email, same job: refused regardless of case.
	na.CandidateData.Email = "AWA@example.test"
	_, err = core.Create(ctx, na)
	assert.ErrorIs(t, err, applicationbus.ErrDuplicate)

	// Same email on a different job is a fresh application.
	na.JobID = uuid.New()
	_, err = core.Create(ctx, na)
	assert.NoError(t, err)
}

func TestUpdateStatus(t *testing.T) {
	core, _ := newCore(t)

	app := applicationbus.Application{ID: uuid.New(), Status: appstatus.Pending}

	got, err := core.UpdateStatus(context.Background(), app, appstatus.Shortlisted)
	require.NoError(t, err)
	assert.True(t, got.Status.Equal(appstatus.Shortlisted))
}

func TestUpdateNotes(t *testing.T) {
	core, _ := newCore(t)

	app := applicationbus.Application{ID: uuid.New()}

	got, err := core.UpdateNotes(context.Background(), app, "strong portfolio")
	require.NoError(t, err)
	assert.Equal(t, "strong portfolio", got.Notes)
}
