package types

import "time"

// InvocationKind distinguishes how an operation was reached.
type InvocationKind string

const (
	// KindAction is an operation run by the action engine (trigger or `actions run`).
	KindAction InvocationKind = "action"
	// KindCommand is a catalog command run from the CLI.
	KindCommand InvocationKind = "command"
)

// Outcome is the terminal state of one invocation.
type Outcome string

const (
	// OutcomeSuccess means the service returned a non-empty result.
	OutcomeSuccess Outcome = "success"
	// OutcomeEmpty means the service returned nil, false or an empty collection.
	OutcomeEmpty Outcome = "empty"
	// OutcomeError means the service (or configuration lookup) returned an error.
	OutcomeError Outcome = "error"
)

// Invocation describes a single dispatched service call.
// It is what the journal stores and what completion events carry.
type Invocation struct {
	ID        string         `json:"invocation_id" yaml:"invocation_id"`
	Kind      InvocationKind `json:"kind" yaml:"kind"`
	Operation string         `json:"operation" yaml:"operation"`
	Reference string         `json:"reference" yaml:"reference"`
	TargetID  string         `json:"target_id,omitempty" yaml:"target_id,omitempty"`
	Outcome   Outcome        `json:"outcome" yaml:"outcome"`
	Message   string         `json:"message,omitempty" yaml:"message,omitempty"`
	StartedAt time.Time      `json:"started_at" yaml:"started_at"`
	// DurationMs is wall time of the service call in milliseconds.
	DurationMs int64 `json:"duration_ms" yaml:"duration_ms"`
}

// Day returns the journal partition day (YYYY-MM-DD, UTC) of the invocation.
func (i *Invocation) Day() string {
	return i.StartedAt.UTC().Format("2006-01-02")
}
