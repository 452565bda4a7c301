package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pithecene-io/catalogi/metrics"
	"github.com/pithecene-io/catalogi/resource"
	"github.com/pithecene-io/catalogi/schema"
)

func TestIsTUISupported(t *testing.T) {
	tests := []struct {
		viewType string
		want     bool
	}{
		{ViewDescribeAction, true},
		{ViewDescribeResource, true},
		{ViewHistoryStats, true},

		{"actions_list", false},
		{"resources_list", false},
		{"history", false},
		{"version", false},
		{"describe_", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.viewType, func(t *testing.T) {
			if got := IsTUISupported(tt.viewType); got != tt.want {
				t.Errorf("IsTUISupported(%q) = %v, want %v", tt.viewType, got, tt.want)
			}
		})
	}
}

func TestRun_UnsupportedViewType(t *testing.T) {
	if err := Run("actions_list", nil); err == nil {
		t.Error("Expected error for unsupported view type")
	}
}

func TestRenderInspectStatic_Action(t *testing.T) {
	s := schema.Schema{
		ID:          "https://example.com/RatingHandler.json",
		Title:       "RatingHandler",
		Description: "Rates components.",
		Required:    []string{"componentSchema"},
		Properties: map[string]schema.Property{
			"componentSchema": {Type: "string", Description: "The component schema", Required: true},
			"note":            {Type: "string"},
		},
	}

	out := RenderInspectStatic(ViewDescribeAction, s)
	for _, want := range []string{"RatingHandler", "https://example.com/RatingHandler.json", "componentSchema *", "note", "1 of 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderInspectStatic_Resource(t *testing.T) {
	rec := resource.Record{
		Reference:     "https://example.com/action.json",
		Plugin:        "open-catalogi/open-catalogi-bundle",
		Version:       "1.0.0",
		Configuration: map[string]any{"source": "https://example.com/source.json"},
	}

	out := RenderInspectStatic(ViewDescribeResource, rec)
	for _, want := range []string{"https://example.com/action.json", "1.0.0", "source"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderInspectStatic_WrongData(t *testing.T) {
	out := RenderInspectStatic(ViewDescribeAction, "not a schema")
	if !strings.Contains(out, "Invalid data type") {
		t.Errorf("expected invalid data message, got:\n%s", out)
	}
}

func TestRenderStatsStatic(t *testing.T) {
	snap := metrics.Snapshot{
		Invocations: 5,
		Succeeded:   3,
		Empty:       1,
		Failed:      1,
		ByOperation: map[string]int64{"rating": 2, "developer.overheid.components": 3},
	}

	out := RenderStatsStatic(ViewHistoryStats, snap)
	for _, want := range []string{"Invocation Statistics", "Succeeded", "rating", "developer.overheid.components"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInspectModel_Quit(t *testing.T) {
	m := NewInspectModel(ViewDescribeAction, schema.Schema{})
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(InspectModel).View() != "" {
		t.Error("quitting model should render nothing")
	}
}
