package lode

import (
	"encoding/json"
	"time"

	"github.com/pithecene-io/catalogi/types"
)

// RecordKindInvocation discriminates journal records.
const RecordKindInvocation = "invocation"

// InvocationRecord is the storage format of a journaled invocation.
type InvocationRecord struct {
	RecordKind      string `json:"record_kind"`
	ContractVersion string `json:"contract_version"`

	InvocationID string `json:"invocation_id"`
	Kind         string `json:"kind"`
	Reference    string `json:"reference"`
	TargetID     string `json:"target_id,omitempty"`
	Outcome      string `json:"outcome"`
	Message      string `json:"message,omitempty"`
	StartedAt    string `json:"started_at"`
	DurationMs   int64  `json:"duration_ms"`

	// Partition keys (used by Lode HiveLayout)
	Operation string `json:"operation"`
	Day       string `json:"day"`
}

// toInvocationRecordMap converts an invocation to the map form Lode writes.
func toInvocationRecordMap(inv *types.Invocation) map[string]any {
	m := map[string]any{
		"record_kind":      RecordKindInvocation,
		"contract_version": types.ContractVersion,
		"invocation_id":    inv.ID,
		"kind":             string(inv.Kind),
		"reference":        inv.Reference,
		"outcome":          string(inv.Outcome),
		"started_at":       inv.StartedAt.UTC().Format(time.RFC3339Nano),
		"duration_ms":      inv.DurationMs,
		"operation":        inv.Operation,
		"day":              inv.Day(),
	}
	if inv.TargetID != "" {
		m["target_id"] = inv.TargetID
	}
	if inv.Message != "" {
		m["message"] = inv.Message
	}
	return m
}

// fromRecordMap reads an invocation back from a decoded record.
// ok is false for records of another kind.
func fromRecordMap(record map[string]any) (inv types.Invocation, ok bool) {
	if record["record_kind"] != RecordKindInvocation {
		return types.Invocation{}, false
	}
	inv = types.Invocation{
		ID:         toString(record["invocation_id"]),
		Kind:       types.InvocationKind(toString(record["kind"])),
		Operation:  toString(record["operation"]),
		Reference:  toString(record["reference"]),
		TargetID:   toString(record["target_id"]),
		Outcome:    types.Outcome(toString(record["outcome"])),
		Message:    toString(record["message"]),
		DurationMs: toInt64(record["duration_ms"]),
	}
	if ts, err := time.Parse(time.RFC3339Nano, toString(record["started_at"])); err == nil {
		inv.StartedAt = ts
	}
	return inv, true
}

// toString converts a value to string, returning empty string for nil/non-string.
func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// toInt64 accepts the numeric forms a JSONL round trip can produce.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	case json.Number:
		i, _ := n.Int64()
		return i
	default:
		return 0
	}
}
