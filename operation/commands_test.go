package operation

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/pithecene-io/catalogi/types"
)

func commandNamed(t *testing.T, cmds []Command, name string) Command {
	t.Helper()
	for _, c := range cmds {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("command %q not found", name)
	return Command{}
}

func TestCommands_Complete(t *testing.T) {
	r := &recorder{}
	cmds := Commands(r.set())
	if len(cmds) != 13 {
		t.Fatalf("len(Commands) = %d, want 13", len(cmds))
	}

	reg := NewRegistry(Catalog(r.set())...)
	seen := make(map[string]bool)
	for _, c := range cmds {
		if seen[c.Name] {
			t.Errorf("duplicate command %q", c.Name)
		}
		seen[c.Name] = true

		if !strings.HasPrefix(c.Name, "opencatalogi:") {
			t.Errorf("%s: missing opencatalogi: prefix", c.Name)
		}
		if c.Usage == "" || c.Help == "" || c.All == nil {
			t.Errorf("%s: incomplete command", c.Name)
		}
		if (c.Target == nil) != (c.One == nil) {
			t.Errorf("%s: target and One must be set together", c.Name)
		}
		op, err := reg.Get(c.Operation)
		if err != nil {
			t.Errorf("%s: %v", c.Name, err)
			continue
		}
		if op.Action != c.Action {
			t.Errorf("%s: action %q, operation %s uses %q", c.Name, c.Action, op.Name, op.Action)
		}
	}
}

func TestDeveloperOverheidComponents_Scenario(t *testing.T) {
	tests := []struct {
		name   string
		result any
		wantOK bool
	}{
		{"components found", []any{map[string]any{"id": "abc"}}, true},
		{"nothing found", []any{}, false},
		{"null result", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &recorder{result: tt.result}
			cmd := commandNamed(t, Commands(r.set()), "opencatalogi:developeroverheid:components")
			cfg := types.Data{"source": developerOverheidSource}

			_, ok, err := cmd.Execute(context.Background(), cfg, "")
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.wantOK {
				t.Errorf("ok = %v, want %v", ok, tt.wantOK)
			}

			calls := r.Calls()
			if len(calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(calls))
			}
			c := calls[0]
			if c.Method != "GetComponents" {
				t.Errorf("method = %q, want GetComponents", c.Method)
			}
			if !reflect.DeepEqual(c.Data, types.Data{}) {
				t.Errorf("data = %v, want empty", c.Data)
			}
			if !reflect.DeepEqual(c.Config, cfg) {
				t.Errorf("config = %v, want %v", c.Config, cfg)
			}
		})
	}
}

func TestExecute_WithTarget(t *testing.T) {
	tests := []struct {
		command string
		method  string
	}{
		{"opencatalogi:componentencatalogus:applications", "GetApplication"},
		{"opencatalogi:componentencatalogus:components", "GetComponent"},
		{"opencatalogi:developeroverheid:components", "GetComponent"},
		{"opencatalogi:developeroverheid:repositories", "GetRepository"},
		{"opencatalogi:github:repositories", "GetRepository"},
		{"opencatalogi:github:organisation", "GetOrganisation"},
		{"opencatalogi:rating:components", "EnrichComponentsWithRating"},
		{"opencatalogi:enrichpubliccode:execute", "EnrichPubliccode"},
		{"opencatalogi:enrichorganization:execute", "EnrichOrganization"},
		{"opencatalogi:findorganizationthroughrepositories:execute", "FindOrganizations"},
		{"opencatalogi:findgithubrepositorythroughorganization:execute", "FindRepositories"},
		{"opencatalogi:federalization:sync", "SyncCatalogus"},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			r := &recorder{result: map[string]any{"id": "42"}}
			cmd := commandNamed(t, Commands(r.set()), tt.command)

			_, ok, err := cmd.Execute(context.Background(), types.Data{}, "42")
			if err != nil {
				t.Fatal(err)
			}
			if !ok {
				t.Error("ok = false, want true")
			}
			calls := r.Calls()
			if len(calls) != 1 {
				t.Fatalf("calls = %d, want 1", len(calls))
			}
			if calls[0].Method != tt.method || calls[0].ID != "42" {
				t.Errorf("call = %s(%q), want %s(\"42\")", calls[0].Method, calls[0].ID, tt.method)
			}
		})
	}
}

func TestExecute_AllPassesEmptyID(t *testing.T) {
	r := &recorder{result: true}
	cmd := commandNamed(t, Commands(r.set()), "opencatalogi:rating:components")

	if _, _, err := cmd.Execute(context.Background(), types.Data{}, ""); err != nil {
		t.Fatal(err)
	}
	calls := r.Calls()
	if len(calls) != 1 || calls[0].ID != "" {
		t.Errorf("calls = %+v, want one call with empty id", calls)
	}
}

func TestExecute_NoTarget(t *testing.T) {
	r := &recorder{result: true}
	cmd := commandNamed(t, Commands(r.set()), "opencatalogi:federalization:register")

	_, _, err := cmd.Execute(context.Background(), types.Data{}, "x")
	if !errors.Is(err, ErrNoTarget) {
		t.Errorf("error = %v, want ErrNoTarget", err)
	}
	if len(r.Calls()) != 0 {
		t.Error("service called despite rejected target")
	}
}

func TestExecute_ErrorPropagates(t *testing.T) {
	boom := errors.New("gateway down")
	r := &recorder{err: boom}
	cmd := commandNamed(t, Commands(r.set()), "opencatalogi:github:organisation")

	_, ok, err := cmd.Execute(context.Background(), types.Data{}, "")
	if err != boom {
		t.Errorf("error = %v, want %v", err, boom)
	}
	if ok {
		t.Error("ok = true on error")
	}
}
