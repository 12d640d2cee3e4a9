package webhookbus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/workforcehq/jobboard/business/domain/tenantbus"
	"github.com/workforcehq/jobboard/foundation/logger"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// DispatcherConfig holds the dispatcher settings. Zero values fall back to
// the defaults below.
type DispatcherConfig struct {
	Log         *logger.Logger
	Core        *Core
	Tenants     *tenantbus.Core
	Interval    time.Duration
	BatchSize   int
	MaxAttempts int
	Timeout     time.Duration
}

// Dispatcher drains the outbox in the background. One dispatcher runs per
// process; at-least-once delivery tolerates the duplicate sends overlapping
// processes could produce.
type Dispatcher struct {
	log         *logger.Logger
	core        *Core
	tenants     *tenantbus.Core
	client      *http.Client
	interval    time.Duration
	batchSize   int
	maxAttempts int
	shutdown    chan struct{}
	wg          sync.WaitGroup
}

// NewDispatcher constructs a dispatcher ready to start.
func NewDispatcher(cfg DispatcherConfig) *Dispatcher {
	if cfg.Interval == 0 {
		cfg.Interval = 5 * time.Second
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 50
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 8
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Dispatcher{
		log:     cfg.Log,
		core:    cfg.Core,
		tenants: cfg.Tenants,
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   cfg.Timeout,
		},
		interval:    cfg.Interval,
		batchSize:   cfg.BatchSize,
		maxAttempts: cfg.MaxAttempts,
		shutdown:    make(chan struct{}),
	}
}

// Start launches the background delivery loop.
func (d *Dispatcher) Start() {
	d.wg.Add(1)

	go func() {
		defer d.wg.Done()

		ticker := time.NewTicker(d.interval)
		defer ticker.Stop()

		for {
			select {
			case <-d.shutdown:
				return
			case <-ticker.C:
				d.dispatch(context.Background())
			}
		}
	}()
}

// Stop halts the loop and waits for the in-flight pass to finish.
func (d *Dispatcher) Stop() {
	close(d.shutdown)
	d.wg.Wait()
}

func (d *Dispatcher) dispatch(ctx context.Context) {
	evts, err := d.core.QueryDue(ctx, time.Now(), d.batchSize)
	if err != nil {
		d.log.Error(ctx, "webhook: query due", "err", err)
		return
	}

	for _, evt := range evts {
		d.deliver(ctx, evt)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, evt Event) {
	tnt, err := d.tenants.QueryByID(ctx, evt.TenantID)
	if err != nil {
		d.fail(ctx, evt, fmt.Errorf("resolve tenant: %w", err))
		return
	}

	if tnt.WebhookURL == "" {
		// Nothing to deliver to and nothing a retry would change.
		if err := d.core.MarkFailed(ctx, evt, time.Now(), 0, fmt.Errorf("tenant has no webhook endpoint")); err != nil {
			d.log.Error(ctx, "webhook: mark failed", "event_id", evt.ID, "err", err)
		}
		return
	}

	if err := d.post(ctx, tnt.WebhookURL, evt); err != nil {
		d.fail(ctx, evt, err)
		return
	}

	if err := d.core.MarkDelivered(ctx, evt); err != nil {
		d.log.Error(ctx, "webhook: mark delivered", "event_id", evt.ID, "err", err)
		return
	}

	d.log.Info(ctx, "webhook: delivered", "event_id", evt.ID, "kind", evt.Kind, "tenant_id", evt.TenantID)
}

func (d *Dispatcher) post(ctx context.Context, url string, evt Event) error {
	body := struct {
		EventID   string          `json:"event_id"`
		Kind      string          `json:"event"`
		TenantID  string          `json:"tenant_id"`
		CreatedAt time.Time       `json:"created_at"`
		Data      json.RawMessage `json:"data"`
	}{
		EventID:   evt.ID.String(),
		Kind:      evt.Kind,
		TenantID:  evt.TenantID.String(),
		CreatedAt: evt.CreatedAt,
		Data:      evt.Payload,
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("post: endpoint returned %d", resp.StatusCode)
	}

	return nil
}

func (d *Dispatcher) fail(ctx context.Context, evt Event, cause error) {
	next := time.Now().Add(d.backoffFor(evt.Attempts))

	if err := d.core.MarkFailed(ctx, evt, next, d.maxAttempts, cause); err != nil {
		d.log.Error(ctx, "webhook: mark failed", "event_id", evt.ID, "err", err)
		return
	}

	d.log.Info(ctx, "webhook: delivery failed", "event_id", evt.ID, "kind", evt.Kind, "tenant_id", evt.TenantID, "attempts", evt.Attempts+1, "err", cause)
}

// backoffFor walks the exponential schedule to the delay for the given
// attempt number.
func (d *Dispatcher) backoffFor(attempts int) time.Duration {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = 10 * time.Second
	eb.MaxInterval = 15 * time.Minute

	delay := eb.NextBackOff()
	for range attempts {
		delay = eb.NextBackOff()
	}

	return delay
}
