package webhookbus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/business/sdk/sqldb"
	"github.com/workforcehq/jobboard/foundation/logger"
)

// stubStorer holds the outbox in memory.
type stubStorer struct {
	events map[uuid.UUID]Event
}

func newStubStorer() *stubStorer {
	return &stubStorer{events: make(map[uuid.UUID]Event)}
}

func (s *stubStorer) NewWithTx(tx sqldb.CommitRollbacker) (Storer, error) { return s, nil }

func (s *stubStorer) Create(ctx context.Context, evt Event) error {
	s.events[evt.ID] = evt
	return nil
}

func (s *stubStorer) Update(ctx context.Context, evt Event) error {
	s.events[evt.ID] = evt
	return nil
}

func (s *stubStorer) QueryDue(ctx context.Context, now time.Time, limit int) ([]Event, error) {
	var due []Event
	for _, evt := range s.events {
		if evt.Status == StatusPending && !evt.NextAttemptAt.After(now) {
			due = append(due, evt)
		}
		if len(due) == limit {
			break
		}
	}
	return due, nil
}

// tenantStorer serves a single tenant for every lookup.
type tenantStorer struct {
	tenant tenantbus.Tenant
}

func (s *tenantStorer) NewWithTx(tx sqldb.CommitRollbacker) (tenantbus.Storer, error) {
	return s, nil
}

func (s *tenantStorer) Create(ctx context.Context, t tenantbus.Tenant) error { return nil }
func (s *tenantStorer) Update(ctx context.Context, t tenantbus.Tenant) error { return nil }

func (s *tenantStorer) QueryByID(ctx context.Context, tenantID uuid.UUID) (tenantbus.Tenant, error) {
	return s.tenant, nil
}

func (s *tenantStorer) QueryBySlug(ctx context.Context, slug string) (tenantbus.Tenant, error) {
	return s.tenant, nil
}

func (s *tenantStorer) QueryByDomain(ctx context.Context, domain string) (tenantbus.Tenant, error) {
	return s.tenant, nil
}

func newDispatcher(t *testing.T, webhookURL string, maxAttempts int) (*Dispatcher, *Core, *stubStorer) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	storer := newStubStorer()
	core := NewCore(log, storer)

	tenants := tenantbus.NewCore(log, &tenantStorer{
		tenant: tenantbus.Tenant{ID: uuid.New(), Slug: "acme", Active: true, WebhookURL: webhookURL},
	}, tenantbus.ResolverConfig{})

	d := NewDispatcher(DispatcherConfig{
		Log:         log,
		Core:        core,
		Tenants:     tenants,
		MaxAttempts: maxAttempts,
		Timeout:     2 * time.Second,
	})

	return d, core, storer
}

func TestDispatchDelivers(t *testing.T) {
	type received struct {
		EventID  string          `json:"event_id"`
		Kind     string          `json:"event"`
		TenantID string          `json:"tenant_id"`
		Data     json.RawMessage `json:"data"`
	}

	var got received
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d, core, storer := newDispatcher(t, srv.URL, 8)
	ctx := context.Background()

	evt, err := core.Enqueue(ctx, NewEvent{
		TenantID: uuid.New(),
		Kind:     "application.created",
		Payload:  json.RawMessage(`{"application_id":"a-1"}`),
	})
	require.NoError(t, err)

	d.dispatch(ctx)

	assert.Equal(t, evt.ID.String(), got.EventID)
	assert.Equal(t, "application.created", got.Kind)
	assert.JSONEq(t, `{"application_id":"a-1"}`, string(got.Data))

	stored := storer.events[evt.ID]
	assert.Equal(t, StatusDelivered, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.Empty(t, stored.LastError)
}

func TestDispatchRetriesOnEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d, core, storer := newDispatcher(t, srv.URL, 8)
	ctx := context.Background()

	evt, err := core.Enqueue(ctx, NewEvent{
		TenantID: uuid.New(),
		Kind:     "application.created",
		Payload:  json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	d.dispatch(ctx)

	stored := storer.events[evt.ID]
	assert.Equal(t, StatusPending, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.NotEmpty(t, stored.LastError)
	assert.True(t, stored.NextAttemptAt.After(time.Now()), "retry must be scheduled in the future")

	// Once scheduled out, the event is no longer due.
	due, err := core.QueryDue(ctx, time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, due)
}

func TestDispatchExhaustsAttempts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	d, core, storer := newDispatcher(t, srv.URL, 2)
	ctx := context.Background()

	evt, err := core.Enqueue(ctx, NewEvent{
		TenantID: uuid.New(),
		Kind:     "application.created",
		Payload:  json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	for range 2 {
		// Pull the event back to due so each pass attempts it again.
		e := storer.events[evt.ID]
		e.NextAttemptAt = time.Now().Add(-time.Second)
		storer.events[evt.ID] = e

		d.dispatch(ctx)
	}

	stored := storer.events[evt.ID]
	assert.Equal(t, StatusFailed, stored.Status)
	assert.Equal(t, 2, stored.Attempts)
}

func TestDispatchNoEndpointFailsPermanently(t *testing.T) {
	d, core, storer := newDispatcher(t, "", 8)
	ctx := context.Background()

	evt, err := core.Enqueue(ctx, NewEvent{
		TenantID: uuid.New(),
		Kind:     "application.created",
		Payload:  json.RawMessage(`{}`),
	})
	require.NoError(t, err)

	d.dispatch(ctx)

	stored := storer.events[evt.ID]
	assert.Equal(t, StatusFailed, stored.Status)
}
