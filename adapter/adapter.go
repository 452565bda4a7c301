// Package adapter publishes invocation completion notifications.
//
// After every dispatched action or command the dispatcher hands an
// InvocationCompletedEvent to the configured adapter. Delivery failures are
// logged by the caller and never change the invocation's result.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pithecene-io/catalogi/types"
)

// EventTypeInvocationCompleted is the event_type of every published event.
const EventTypeInvocationCompleted = "invocation_completed"

// InvocationCompletedEvent is the payload published when an invocation finishes.
type InvocationCompletedEvent struct {
	ContractVersion string `json:"contract_version"`
	EventType       string `json:"event_type"` // always "invocation_completed"
	Plugin          string `json:"plugin"`
	InvocationID    string `json:"invocation_id"`
	Kind            string `json:"kind"`
	Operation       string `json:"operation"`
	Reference       string `json:"reference"`
	TargetID        string `json:"target_id,omitempty"`
	Outcome         string `json:"outcome"` // success, empty or error
	Message         string `json:"message,omitempty"`
	Timestamp       string `json:"timestamp"` // RFC 3339, invocation start
	DurationMs      int64  `json:"duration_ms"`
}

// NewInvocationCompletedEvent builds the event for a finished invocation.
func NewInvocationCompletedEvent(inv *types.Invocation) *InvocationCompletedEvent {
	return &InvocationCompletedEvent{
		ContractVersion: types.ContractVersion,
		EventType:       EventTypeInvocationCompleted,
		Plugin:          types.PluginPackage,
		InvocationID:    inv.ID,
		Kind:            string(inv.Kind),
		Operation:       inv.Operation,
		Reference:       inv.Reference,
		TargetID:        inv.TargetID,
		Outcome:         string(inv.Outcome),
		Message:         inv.Message,
		Timestamp:       inv.StartedAt.UTC().Format(time.RFC3339Nano),
		DurationMs:      inv.DurationMs,
	}
}

// Adapter publishes invocation completion events to a downstream system.
type Adapter interface {
	// Publish sends an event to the downstream system.
	// Must respect context cancellation and deadlines.
	Publish(ctx context.Context, event *InvocationCompletedEvent) error

	// Close releases adapter resources.
	Close() error
}

// ErrPermanent marks a failure that retrying cannot fix.
var ErrPermanent = errors.New("permanent failure")

// Backoff returns the wait before retry number n (1-based): 500ms, 1s, 2s, ...
func Backoff(n int) time.Duration {
	return time.Duration(1<<uint(n-1)) * 500 * time.Millisecond
}

// Retry calls attempt once plus up to retries more times, sleeping Backoff
// between calls. It stops early when attempt succeeds, returns an error
// wrapping ErrPermanent, or ctx is done. name prefixes returned errors.
func Retry(ctx context.Context, name string, retries int, attempt func(context.Context) error) error {
	var lastErr error
	attempts := 1 + retries

	for i := range attempts {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: context canceled: %w", name, err)
		}

		if i > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s: context canceled during backoff: %w", name, ctx.Err())
			case <-time.After(Backoff(i)):
			}
		}

		lastErr = attempt(ctx)
		if lastErr == nil {
			return nil
		}
		if errors.Is(lastErr, ErrPermanent) {
			return fmt.Errorf("%s: non-retriable error: %w", name, lastErr)
		}
	}

	return fmt.Errorf("%s: failed after %d attempts: %w", name, attempts, lastErr)
}
