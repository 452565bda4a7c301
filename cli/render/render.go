// Package render provides centralized output rendering for the catalogi CLI.
//
// Format selection rules:
//   - If output is a TTY, default to table
//   - If output is not a TTY, default to json
//   - --format flag always overrides defaults
//   - Invalid formats are errors
//
// Color handling:
//   - --no-color affects table output only
//   - TUI mode is unaffected by --no-color (uses its own styling)
package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/pithecene-io/catalogi/cli/tui"
)

// Format represents an output format.
type Format string

// Supported formats.
const (
	FormatJSON  Format = "json"
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true)

// ParseFormat parses a format string, returning an error for invalid formats.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "yaml":
		return FormatYAML, nil
	case "":
		return "", nil // Let caller decide default
	default:
		return "", fmt.Errorf("invalid format: %q (must be json, table, or yaml)", s)
	}
}

// Renderer handles output formatting.
type Renderer struct {
	format  Format
	noColor bool
	out     io.Writer
}

// NewRenderer creates a renderer from CLI context.
func NewRenderer(c *cli.Context) (*Renderer, error) {
	format, err := ParseFormat(c.String("format"))
	if err != nil {
		return nil, err
	}

	if format == "" {
		if isTTY(os.Stdout) {
			format = FormatTable
		} else {
			format = FormatJSON
		}
	}

	return &Renderer{
		format:  format,
		noColor: c.Bool("no-color"),
		out:     c.App.Writer,
	}, nil
}

// NewRendererWithWriter creates a renderer with a custom writer (for testing).
func NewRendererWithWriter(format Format, noColor bool, out io.Writer) *Renderer {
	return &Renderer{
		format:  format,
		noColor: noColor,
		out:     out,
	}
}

// Format returns the selected output format.
func (r *Renderer) Format() Format {
	return r.format
}

// Render outputs the data in the configured format.
func (r *Renderer) Render(data any) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(data)
	case FormatTable:
		return r.renderTable(data)
	case FormatYAML:
		return r.renderYAML(data)
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
}

// RenderTUI initiates TUI mode for the given view type.
// TUI is opt-in and read-only.
func (r *Renderer) RenderTUI(viewType string, data any) error {
	if !tui.IsTUISupported(viewType) {
		return fmt.Errorf("--tui is not supported for %s", viewType)
	}
	return tui.Run(viewType, data)
}

func (r *Renderer) renderJSON(data any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (r *Renderer) renderYAML(data any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

func (r *Renderer) renderTable(data any) error {
	v := indirect(reflect.ValueOf(data))
	if v.Kind() == reflect.Slice || v.Kind() == reflect.Array {
		return r.renderSliceTable(v)
	}
	return r.renderStructTable(v, data)
}

func (r *Renderer) renderSliceTable(v reflect.Value) error {
	if v.Len() == 0 {
		_, err := fmt.Fprintln(r.out, "(no results)")
		return err
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)

	headers := r.getHeaders(v)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for i := 0; i < v.Len(); i++ {
		row := r.getRowValues(indirect(v.Index(i)), headers)
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	header, rest, _ := strings.Cut(buf.String(), "\n")
	if !r.noColor {
		header = headerStyle.Render(header)
	}
	_, err := fmt.Fprintf(r.out, "%s\n%s", header, rest)
	return err
}

func (r *Renderer) renderStructTable(v reflect.Value, data any) error {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)

	switch v.Kind() {
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			fmt.Fprintf(w, "%s:\t%s\n", r.getFieldName(field), r.formatValue(v.Field(i)))
		}
	case reflect.Map:
		values := make(map[string]string, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			values[fmt.Sprintf("%v", iter.Key().Interface())] = r.formatValue(iter.Value())
		}
		for _, key := range sortedKeys(v) {
			fmt.Fprintf(w, "%s:\t%s\n", key, values[key])
		}
	case reflect.Invalid:
		fmt.Fprintln(w, "(no result)")
	default:
		fmt.Fprintf(w, "%v\n", data)
	}

	return w.Flush()
}

// getHeaders derives column names from the first element. For maps, the
// union of keys across all rows is used, sorted.
func (r *Renderer) getHeaders(rows reflect.Value) []string {
	first := indirect(rows.Index(0))

	switch first.Kind() {
	case reflect.Struct:
		var headers []string
		t := first.Type()
		for i := 0; i < t.NumField(); i++ {
			if t.Field(i).IsExported() {
				headers = append(headers, r.getFieldName(t.Field(i)))
			}
		}
		return headers
	case reflect.Map:
		seen := make(map[string]bool)
		var headers []string
		for i := 0; i < rows.Len(); i++ {
			row := indirect(rows.Index(i))
			if row.Kind() != reflect.Map {
				continue
			}
			for _, key := range sortedKeys(row) {
				if !seen[key] {
					seen[key] = true
					headers = append(headers, key)
				}
			}
		}
		sort.Strings(headers)
		return headers
	default:
		return []string{"value"}
	}
}

func (r *Renderer) getRowValues(v reflect.Value, headers []string) []string {
	var values []string
	switch v.Kind() {
	case reflect.Struct:
		for i := 0; i < v.NumField(); i++ {
			if v.Type().Field(i).IsExported() {
				values = append(values, r.formatValue(v.Field(i)))
			}
		}
	case reflect.Map:
		cells := make(map[string]string, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			cells[fmt.Sprintf("%v", iter.Key().Interface())] = r.formatValue(iter.Value())
		}
		for _, h := range headers {
			values = append(values, cells[h])
		}
	default:
		values = append(values, r.formatValue(v))
	}
	return values
}

func (r *Renderer) getFieldName(f reflect.StructField) string {
	if tag := f.Tag.Get("json"); tag != "" {
		name, _, _ := strings.Cut(tag, ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return strings.ToLower(f.Name)
}

func (r *Renderer) formatValue(v reflect.Value) string {
	v = indirect(v)
	if !v.IsValid() {
		return ""
	}

	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if v.Len() == 0 {
			return "[]"
		}
		if v.Type().Elem().Kind() == reflect.String && v.Len() <= 3 {
			parts := make([]string, v.Len())
			for i := range parts {
				parts[i] = v.Index(i).String()
			}
			return strings.Join(parts, ",")
		}
		return fmt.Sprintf("[%d items]", v.Len())
	case reflect.Map:
		if v.Len() == 0 {
			return "{}"
		}
		return fmt.Sprintf("{%d keys}", v.Len())
	case reflect.Struct:
		if t, ok := v.Interface().(time.Time); ok {
			return t.Format(time.RFC3339)
		}
		return "{...}"
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// indirect unwraps pointers and interfaces. A nil pointer or interface
// yields the zero Value.
func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func sortedKeys(m reflect.Value) []string {
	keys := make([]string, 0, m.Len())
	for _, k := range m.MapKeys() {
		keys = append(keys, fmt.Sprintf("%v", k.Interface()))
	}
	sort.Strings(keys)
	return keys
}

// isTTY returns true if the writer is a TTY.
func isTTY(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
