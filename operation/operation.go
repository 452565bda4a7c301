// Package operation holds the action handlers and catalog commands of the
// OpenCatalogi bundle.
//
// An Operation pairs a configuration schema with a RunFunc that forwards
// (data, configuration) to exactly one service method and hands back whatever
// that method returned. A Command is the CLI counterpart: it calls the
// service's "all" method, or its "by id" method when a target id is given,
// and reports whether the result was non-empty.
//
// Neither layer validates, retries, logs or wraps errors. That is left to
// the dispatcher and to the services.
package operation

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/pithecene-io/catalogi/schema"
	"github.com/pithecene-io/catalogi/types"
)

// ErrUnknownOperation is returned when no operation matches a name or reference.
var ErrUnknownOperation = errors.New("unknown operation")

// RunFunc forwards data and configuration to a service.
type RunFunc func(ctx context.Context, data, configuration types.Data) (any, error)

// Operation is a registered action handler.
type Operation struct {
	// Name is the short, stable lookup key (e.g. "developeroverheid.components").
	Name string
	// Reference is the handler's schema $id.
	Reference string
	// Action is the reference of the default action record whose
	// configuration this operation runs with.
	Action string
	// Schema builds the configuration schema. Must return an equal value on
	// every call.
	Schema func() schema.Schema
	// Run performs the service call.
	Run RunFunc
}

// Configuration returns the operation's configuration schema.
// Each call returns a fresh value.
func (o Operation) Configuration() schema.Schema {
	return o.Schema()
}

// Registry maps operation names and references to operations.
// It is safe for concurrent reads; Register should only be called at startup.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Operation
	byRef  map[string]string
}

// NewRegistry creates a registry holding ops.
func NewRegistry(ops ...Operation) *Registry {
	r := &Registry{
		byName: make(map[string]Operation),
		byRef:  make(map[string]string),
	}
	for _, op := range ops {
		r.Register(op)
	}
	return r
}

// Register adds an operation. Panics on a duplicate name or reference, or an
// incomplete operation, to surface wiring mistakes at startup.
func (r *Registry) Register(op Operation) {
	if op.Name == "" || op.Reference == "" || op.Schema == nil || op.Run == nil {
		panic(fmt.Sprintf("operation registry: incomplete operation %q", op.Name))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byName[op.Name]; exists {
		panic(fmt.Sprintf("operation registry: duplicate name %q", op.Name))
	}
	if _, exists := r.byRef[op.Reference]; exists {
		panic(fmt.Sprintf("operation registry: duplicate reference %q", op.Reference))
	}
	r.byName[op.Name] = op
	r.byRef[op.Reference] = op.Name
}

// Get returns the operation registered under a name or a handler reference.
func (r *Registry) Get(nameOrRef string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if op, ok := r.byName[nameOrRef]; ok {
		return op, nil
	}
	if name, ok := r.byRef[nameOrRef]; ok {
		return r.byName[name], nil
	}
	return Operation{}, fmt.Errorf("%w: %q", ErrUnknownOperation, nameOrRef)
}

// Lookup is Get without the error.
func (r *Registry) Lookup(nameOrRef string) (Operation, bool) {
	op, err := r.Get(nameOrRef)
	return op, err == nil
}

// List returns all operations sorted by name.
func (r *Registry) List() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Operation, 0, len(r.byName))
	for _, op := range r.byName {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Succeeded reports whether a service result counts as success.
// nil, false, and empty strings, slices, arrays and maps are failures;
// everything else succeeds.
func Succeeded(result any) bool {
	if result == nil {
		return false
	}
	v := reflect.ValueOf(result)
	switch v.Kind() {
	case reflect.Bool:
		return v.Bool()
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() > 0
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return false
		}
		return Succeeded(v.Elem().Interface())
	default:
		return true
	}
}
