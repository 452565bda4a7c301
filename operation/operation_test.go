package operation

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pithecene-io/catalogi/service"
	"github.com/pithecene-io/catalogi/types"
)

func TestSucceeded(t *testing.T) {
	var nilSlice []any
	var nilMap map[string]any
	var nilPtr *string
	empty := ""
	full := "x"

	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "done", true},
		{"empty slice", []any{}, false},
		{"nil slice", nilSlice, false},
		{"slice", []any{map[string]any{"id": "abc"}}, true},
		{"empty map", map[string]any{}, false},
		{"nil map", nilMap, false},
		{"map", map[string]any{"id": "abc"}, true},
		{"nil pointer", nilPtr, false},
		{"pointer to empty", &empty, false},
		{"pointer to value", &full, true},
		{"zero int", 0, true},
		{"float", 1.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Succeeded(tt.in); got != tt.want {
				t.Errorf("Succeeded(%#v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestCatalog_Complete(t *testing.T) {
	ops := Catalog((&recorder{}).set())
	if len(ops) != 19 {
		t.Fatalf("len(Catalog) = %d, want 19", len(ops))
	}

	// Panics on duplicate names or references.
	reg := NewRegistry(ops...)

	for _, op := range reg.List() {
		s := op.Configuration()
		if err := s.Check(); err != nil {
			t.Errorf("%s: %v", op.Name, err)
		}
		if s.ID != op.Reference {
			t.Errorf("%s: $id = %q, want %q", op.Name, s.ID, op.Reference)
		}
		if !strings.HasPrefix(op.Action, actionPrefix) {
			t.Errorf("%s: action %q lacks prefix", op.Name, op.Action)
		}
		if len(s.Required) == 0 {
			t.Errorf("%s: no required properties", op.Name)
		}
	}
}

func TestCatalog_SkipsMissingServices(t *testing.T) {
	r := &recorder{}
	ops := Catalog(service.Set{DeveloperOverheid: r})
	if len(ops) != 2 {
		t.Fatalf("len(Catalog) = %d, want 2", len(ops))
	}
	if len(Catalog(service.Set{})) != 0 {
		t.Error("expected empty catalog for empty set")
	}
}

func TestConfiguration_FreshValue(t *testing.T) {
	op := Catalog((&recorder{}).set())[0]

	first := op.Configuration()
	first.Properties["injected"] = first.Properties["schema"]
	first.Required = append(first.Required, "injected")

	second := op.Configuration()
	third := op.Configuration()
	if _, ok := second.Properties["injected"]; ok {
		t.Error("mutation of one Configuration() result leaked into the next")
	}
	if !reflect.DeepEqual(second, third) {
		t.Error("Configuration() is not stable across calls")
	}
}

func TestRun_ForwardsUnchanged(t *testing.T) {
	want := []any{map[string]any{"id": "abc"}}
	r := &recorder{result: want}
	reg := NewRegistry(Catalog(r.set())...)

	tests := []struct {
		name   string
		method string
	}{
		{"catalogi", "CatalogiHandler"},
		{"componentencatalogus.applications", "GetApplications"},
		{"componentencatalogus.components", "GetComponents"},
		{"componentencatalogus.application-to-gateway", "ApplicationToGateway"},
		{"developeroverheid.components", "GetComponents"},
		{"developeroverheid.repositories", "GetRepositories"},
		{"github.publiccode-repositories", "GetRepositories"},
		{"github.organisation", "GetOrganisations"},
		{"github.event", "UpdateRepositoryWithEvent"},
		{"enrich.publiccode", "EnrichPubliccode"},
		{"enrich.publiccode-from-url", "EnrichFromGithubURL"},
		{"enrich.organization", "EnrichOrganization"},
		{"find.organization-through-repositories", "FindOrganizations"},
		{"find.github-repository-through-organization", "FindRepositories"},
		{"federalization.sync", "SyncCatalogi"},
		{"federalization.register", "RegisterCatalogi"},
		{"form-input", "UpdatePublication"},
		{"download-object", "Download"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r.calls = nil
			op, err := reg.Get(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			data := types.Data{"body": "payload"}
			cfg := types.Data{"source": "s"}

			got, err := op.Run(context.Background(), data, cfg)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Run() = %v, want %v", got, want)
			}

			calls := r.Calls()
			if len(calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(calls))
			}
			c := calls[0]
			if c.Method != tt.method {
				t.Errorf("method = %q, want %q", c.Method, tt.method)
			}
			if !reflect.DeepEqual(c.Data, data) || !reflect.DeepEqual(c.Config, cfg) {
				t.Errorf("arguments changed: data=%v cfg=%v", c.Data, c.Config)
			}
			if c.ID != "" {
				t.Errorf("id = %q, want empty", c.ID)
			}
		})
	}
}

func TestRun_ErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	r := &recorder{err: boom}
	op, _ := NewRegistry(Catalog(r.set())...).Get("catalogi")

	if _, err := op.Run(context.Background(), types.Data{}, types.Data{}); err != boom {
		t.Errorf("Run() error = %v, want %v", err, boom)
	}
}

func TestRating_ResponseID(t *testing.T) {
	tests := []struct {
		name string
		data types.Data
		want string
	}{
		{"response id", types.Data{"response": map[string]any{"id": "xyz"}}, "xyz"},
		{"no response", types.Data{}, ""},
		{"int id", types.Data{"response": map[string]any{"id": 7}}, "7"},
		{"json number id", types.Data{"response": map[string]any{"id": float64(1234567)}}, "1234567"},
		{"json.Number id", types.Data{"response": map[string]any{"id": json.Number("42")}}, "42"},
		{"msgpack uint id", types.Data{"response": map[string]any{"id": uint16(9)}}, "9"},
		{"bool id", types.Data{"response": map[string]any{"id": true}}, ""},
		{"response not a map", types.Data{"response": "xyz"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{result: true}
			op, err := NewRegistry(Catalog(r.set())...).Get("rating")
			if err != nil {
				t.Fatal(err)
			}
			if _, err := op.Run(context.Background(), tt.data, types.Data{}); err != nil {
				t.Fatal(err)
			}
			calls := r.Calls()
			if len(calls) != 1 || calls[0].Method != "EnrichComponentsWithRating" {
				t.Fatalf("calls = %+v", calls)
			}
			if calls[0].ID != tt.want {
				t.Errorf("component id = %q, want %q", calls[0].ID, tt.want)
			}
			if !reflect.DeepEqual(calls[0].Data, tt.data) {
				t.Errorf("data = %v, want %v", calls[0].Data, tt.data)
			}
		})
	}
}

func TestRegistry_LookupByReference(t *testing.T) {
	reg := NewRegistry(Catalog((&recorder{}).set())...)

	op, err := reg.Get(HandlerRef("DeveloperOverheidGetComponents"))
	if err != nil {
		t.Fatal(err)
	}
	if op.Name != "developeroverheid.components" {
		t.Errorf("Name = %q", op.Name)
	}

	if _, ok := reg.Lookup("nope"); ok {
		t.Error("Lookup(nope) = ok")
	}
	if _, err := reg.Get("nope"); !errors.Is(err, ErrUnknownOperation) {
		t.Errorf("Get(nope) error = %v, want ErrUnknownOperation", err)
	}
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	ops := Catalog((&recorder{}).set())
	reg := NewRegistry(ops[0])

	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	reg.Register(ops[0])
}

func TestRegistry_IncompletePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on incomplete operation")
		}
	}()
	NewRegistry(Operation{Name: "x"})
}
