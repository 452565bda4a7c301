// Package remote binds the service interfaces to a gateway over HTTP.
//
// Every service method becomes a POST to {endpoint}/{service}/{method} whose
// body carries the data, the configuration and the target id. The response
// body is the method's result, returned untouched. A 204 response is a nil
// result. Calls are never retried here: retry and backoff belong to the
// gateway-side service.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pithecene-io/catalogi/iox"
	"github.com/pithecene-io/catalogi/types"
)

// DefaultTimeout is the default per-call timeout.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of a failed response is kept in StatusError.
const maxErrorBody = 512

// Request is the body of every service call.
type Request struct {
	Data          types.Data `json:"data" msgpack:"data"`
	Configuration types.Data `json:"configuration" msgpack:"configuration"`
	ID            string     `json:"id,omitempty" msgpack:"id,omitempty"`
}

// Config configures the gateway client.
type Config struct {
	// Endpoint is the base URL of the gateway service API (required).
	Endpoint string
	// Codec selects the wire encoding: "json" (default) or "msgpack".
	Codec string
	// Headers are added to every request (e.g. Authorization).
	Headers map[string]string
	// Timeout is the per-call timeout (default 30s).
	Timeout time.Duration
}

// Client performs service calls against a gateway.
type Client struct {
	endpoint string
	codec    Codec
	headers  map[string]string
	http     *http.Client
}

// New creates a gateway client from the given config.
func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("remote service client requires an endpoint")
	}
	codec, err := CodecFor(cfg.Codec)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		codec:    codec,
		headers:  cfg.Headers,
		http:     &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// StatusError is returned for non-2xx gateway responses.
type StatusError struct {
	Service string
	Method  string
	Code    int
	Body    string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s.%s: unexpected status %d", e.Service, e.Method, e.Code)
	}
	return fmt.Sprintf("%s.%s: unexpected status %d: %s", e.Service, e.Method, e.Code, e.Body)
}

// Call invokes service.method on the gateway and returns the decoded result.
func (c *Client) Call(ctx context.Context, service, method string, req Request) (any, error) {
	body, err := c.codec.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: encode request: %w", service, method, err)
	}

	url := c.endpoint + "/" + service + "/" + method
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s.%s: create request: %w", service, method, err)
	}
	httpReq.Header.Set("Content-Type", c.codec.ContentType())
	httpReq.Header.Set("Accept", c.codec.ContentType())
	for k, v := range c.headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: request failed: %w", service, method, err)
	}
	defer iox.DrainClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			Service: service,
			Method:  method,
			Code:    resp.StatusCode,
			Body:    strings.TrimSpace(string(snippet)),
		}
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s.%s: read response: %w", service, method, err)
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		return nil, nil
	}

	var result any
	if err := c.codec.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("%s.%s: decode response: %w", service, method, err)
	}
	return result, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}
