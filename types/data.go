// Package types defines core domain types shared by the catalogi packages.
//
//nolint:revive // types is a common Go package naming convention
package types

// Data is a free-form key/value mapping.
// It carries both the action payload and the configuration handed to a
// service call. Adapters pass it through without inspecting it.
type Data = map[string]any

// Clone returns a deep copy of d.
// Nested maps and slices are copied; scalar values are shared.
func Clone(d Data) Data {
	if d == nil {
		return nil
	}
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return Clone(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
