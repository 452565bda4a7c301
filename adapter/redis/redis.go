// Package redis publishes invocation completion events on a Redis channel.
//
// Retries with exponential backoff on connection errors.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/pithecene-io/catalogi/adapter"
)

// DefaultChannel is the default pub/sub channel name.
const DefaultChannel = "catalogi:invocation_completed"

// DefaultTimeout is the default per-publish timeout.
const DefaultTimeout = 5 * time.Second

// DefaultRetries is the default number of retry attempts.
const DefaultRetries = 3

// Config configures the Redis pub/sub adapter.
type Config struct {
	// URL is the Redis connection URL (required).
	// Format: redis://[:password@]host:port[/db]
	URL string
	// Channel is the pub/sub channel name (default: catalogi:invocation_completed).
	Channel string
	// Timeout is the per-publish timeout (default 5s).
	Timeout time.Duration
	// Retries is the number of retry attempts on failure.
	Retries int
}

// Adapter publishes invocation completion events via Redis PUBLISH.
type Adapter struct {
	config Config
	client *goredis.Client
}

// New creates a Redis pub/sub adapter from the given config.
func New(cfg Config) (*Adapter, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis adapter requires a URL")
	}

	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis adapter: invalid URL: %w", err)
	}

	if cfg.Channel == "" {
		cfg.Channel = DefaultChannel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		return nil, fmt.Errorf("retries must be >= 0, got %d", cfg.Retries)
	}

	return &Adapter{
		config: cfg,
		client: goredis.NewClient(opts),
	}, nil
}

// Channel returns the channel events are published on.
func (a *Adapter) Channel() string {
	return a.config.Channel
}

// Publish sends the event as a JSON PUBLISH to the configured channel.
func (a *Adapter) Publish(ctx context.Context, event *adapter.InvocationCompletedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis: marshal event: %w", err)
	}
	return adapter.Retry(ctx, "redis", a.config.Retries, func(ctx context.Context) error {
		publishCtx, cancel := context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
		return a.client.Publish(publishCtx, a.config.Channel, body).Err()
	})
}

// Close releases adapter resources.
func (a *Adapter) Close() error {
	return a.client.Close()
}

// Verify Adapter implements the adapter interface.
var _ adapter.Adapter = (*Adapter)(nil)
