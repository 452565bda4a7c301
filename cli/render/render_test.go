package render

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Format
		wantErr bool
	}{
		{"json lowercase", "json", FormatJSON, false},
		{"json uppercase", "JSON", FormatJSON, false},
		{"table", "table", FormatTable, false},
		{"yaml", "yaml", FormatYAML, false},
		{"empty", "", "", false},
		{"invalid", "xml", "", true},
		{"invalid with message", "csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat_InvalidErrorMessage(t *testing.T) {
	_, err := ParseFormat("xml")
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if !strings.Contains(err.Error(), "json, table, or yaml") {
		t.Errorf("error message should mention valid formats, got: %v", err)
	}
}

func TestRenderer_JSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatJSON, false, &buf)

	if err := r.Render(map[string]string{"key": "value"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, `"key"`) || !strings.Contains(got, `"value"`) {
		t.Errorf("JSON output missing expected content: %s", got)
	}
}

func TestRenderer_YAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatYAML, false, &buf)

	if err := r.Render(map[string]string{"key": "value"}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	if !strings.Contains(got, "key:") || !strings.Contains(got, "value") {
		t.Errorf("YAML output missing expected content: %s", got)
	}
}

func TestRenderer_Table_Struct(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)

	type invocation struct {
		ID        string    `json:"invocation_id"`
		Outcome   string    `json:"outcome"`
		StartedAt time.Time `json:"started_at"`
		hidden    string
	}

	data := invocation{ID: "inv-1", Outcome: "success", StartedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), hidden: "x"}
	if err := r.Render(data); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	got := buf.String()
	for _, want := range []string{"invocation_id:", "inv-1", "outcome:", "success", "2026-01-02T03:04:05Z"} {
		if !strings.Contains(got, want) {
			t.Errorf("table output missing %q: %s", want, got)
		}
	}
	if strings.Contains(got, "hidden") {
		t.Errorf("unexported field rendered: %s", got)
	}
}

func TestRenderer_Table_Slice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)

	type Item struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}

	data := []Item{
		{ID: "1", Name: "first"},
		{ID: "2", Name: "second"},
	}

	if err := r.Render(data); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "id") || !strings.Contains(lines[0], "name") {
		t.Errorf("unexpected header row: %q", lines[0])
	}
	if !strings.Contains(lines[2], "second") {
		t.Errorf("unexpected data row: %q", lines[2])
	}
}

func TestRenderer_Table_ServiceResult(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)

	// Gateway results decode as []any of map[string]any with ragged keys.
	data := []any{
		map[string]any{"id": "abc", "name": "first"},
		map[string]any{"id": "def", "url": "https://example.com"},
	}
	if err := r.Render(data); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got %q", lines)
	}
	header := strings.Fields(lines[0])
	want := []string{"id", "name", "url"}
	if strings.Join(header, " ") != strings.Join(want, " ") {
		t.Errorf("header = %v, want %v", header, want)
	}
	if !strings.Contains(lines[2], "https://example.com") {
		t.Errorf("second row missing url: %q", lines[2])
	}
}

func TestRenderer_Table_MapSortedKeys(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)

	if err := r.Render(map[string]any{"zeta": 1, "alpha": []any{1, 2, 3, 4}, "mid": map[string]any{}}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 || !strings.HasPrefix(lines[0], "alpha:") || !strings.HasPrefix(lines[2], "zeta:") {
		t.Fatalf("keys not sorted: %q", lines)
	}
	if !strings.Contains(lines[0], "[4 items]") || !strings.Contains(lines[1], "{}") {
		t.Errorf("unexpected collection formatting: %q", lines)
	}
}

func TestRenderer_Table_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render([]string{}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(no results)") {
		t.Errorf("Empty slice should show '(no results)', got: %s", buf.String())
	}
}

func TestRenderer_Table_Nil(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, false, &buf)

	if err := r.Render(nil); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "(no result)") {
		t.Errorf("nil should show '(no result)', got: %s", buf.String())
	}
}

func TestRenderer_NoColor_DoesNotAffectJSON(t *testing.T) {
	var bufColor, bufNoColor bytes.Buffer

	rColor := NewRendererWithWriter(FormatJSON, false, &bufColor)
	rNoColor := NewRendererWithWriter(FormatJSON, true, &bufNoColor)

	data := map[string]string{"key": "value"}
	if err := rColor.Render(data); err != nil {
		t.Fatalf("Render with color failed: %v", err)
	}
	if err := rNoColor.Render(data); err != nil {
		t.Fatalf("Render without color failed: %v", err)
	}

	if bufColor.String() != bufNoColor.String() {
		t.Errorf("--no-color should not affect JSON output")
	}
}

func TestRenderer_RenderTUI_Unsupported(t *testing.T) {
	r := NewRendererWithWriter(FormatTable, false, &bytes.Buffer{})
	err := r.RenderTUI("actions_list", nil)
	if err == nil || !strings.Contains(err.Error(), "--tui is not supported") {
		t.Errorf("expected unsupported error, got %v", err)
	}
}
