// Package webhook posts invocation completion events to an HTTP endpoint.
//
// Retries with exponential backoff on 5xx responses and network errors.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pithecene-io/catalogi/adapter"
	"github.com/pithecene-io/catalogi/iox"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 10 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the webhook adapter.
type Config struct {
	// URL is the HTTP endpoint to POST to (required).
	URL string
	// Headers are custom HTTP headers added to each request.
	Headers map[string]string
	// Timeout is the per-request timeout (default 10s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure.
	Retries int
}

// Adapter publishes invocation completion events via HTTP POST.
type Adapter struct {
	config Config
	client *http.Client
}

// New creates a webhook adapter from the given config.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("webhook adapter requires a URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}

	return &Adapter{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// Publish sends the event as a JSON POST request.
// 4xx responses are non-retriable and fail immediately.
func (a *Adapter) Publish(ctx context.Context, event *adapter.InvocationCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("webhook: marshal event: %w", err)
	}
	return adapter.Retry(ctx, "webhook", a.config.Retries, func(ctx context.Context) error {
		return a.doRequest(ctx, body)
	})
}

// StatusError is returned for non-2xx HTTP responses.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.Code)
}

// Is makes 4xx responses match adapter.ErrPermanent.
func (e *StatusError) Is(target error) bool {
	return target == adapter.ErrPermanent && e.Code >= 400 && e.Code < 500
}

// doRequest performs a single HTTP POST and returns nil on 2xx.
func (a *Adapter) doRequest(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Catalogi-Event", adapter.EventTypeInvocationCompleted)
	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	// Drain body to allow connection reuse
	defer iox.DrainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode}
	}
	return nil
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	a.client.CloseIdleConnections()
	return nil
}

// Verify Adapter implements the adapter interface.
var _ adapter.Adapter = (*Adapter)(nil)
