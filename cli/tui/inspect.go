package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/catalogi/resource"
	"github.com/pithecene-io/catalogi/schema"
)

// InspectModel is a Bubble Tea model for describe views.
type InspectModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewInspectModel creates a new inspect model.
func NewInspectModel(viewType string, data any) InspectModel {
	return InspectModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m InspectModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m InspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View implements tea.Model.
func (m InspectModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case ViewDescribeAction:
		content = m.renderDescribeAction()
	case ViewDescribeResource:
		content = m.renderDescribeResource()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m InspectModel) renderDescribeAction() string {
	data, ok := m.data.(schema.Schema)
	if !ok {
		return "Invalid data type for " + ViewDescribeAction
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(data.Title))
	b.WriteString("\n\n")

	writeRow(&b, "Handler", data.ID)
	if data.Description != "" {
		writeRow(&b, "Description", data.Description)
	}
	writeRow(&b, "Required", fmt.Sprintf("%d of %d", len(data.Required), len(data.Properties)))

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render("Configuration"))
	b.WriteString("\n")
	for _, name := range data.PropertyNames() {
		p := data.Properties[name]
		label := ValueStyle.Render(name)
		if p.Required {
			label = RequiredStyle.Render(name + " *")
		}
		b.WriteString(fmt.Sprintf("  • %s %s\n", label, LabelStyle.Render("("+p.Type+")")))
		if p.Description != "" {
			b.WriteString("      " + p.Description + "\n")
		}
		if p.Reference != "" {
			b.WriteString("      → " + lipgloss.NewStyle().Foreground(mutedColor).Render(p.Reference) + "\n")
		}
	}

	return BoxStyle.Render(b.String())
}

func (m InspectModel) renderDescribeResource() string {
	data, ok := m.data.(resource.Record)
	if !ok {
		return "Invalid data type for " + ViewDescribeResource
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Action Resource"))
	b.WriteString("\n\n")

	writeRow(&b, "Reference", data.Reference)
	writeRow(&b, "Plugin", data.Plugin)
	writeRow(&b, "Version", data.Version)
	writeRow(&b, "Handler", data.Handler)
	if data.Source != "" {
		writeRow(&b, "Source", data.Source)
	}

	if len(data.Configuration) > 0 {
		b.WriteString("\n")
		b.WriteString(TitleStyle.Render("Configuration"))
		b.WriteString("\n")

		names := make([]string, 0, len(data.Configuration))
		for name := range data.Configuration {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			writeRow(&b, "  "+name, fmt.Sprintf("%v", data.Configuration[name]))
		}
	}

	return BoxStyle.Render(b.String())
}

func writeRow(b *strings.Builder, label, value string) {
	b.WriteString(fmt.Sprintf("%s %s\n",
		LabelStyle.Render(label+":"),
		ValueStyle.Render(value)))
}

// keyMap defines key bindings.
type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// RunInspectTUI runs the inspect TUI.
func RunInspectTUI(viewType string, data any) error {
	model := NewInspectModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderInspectStatic renders describe data without full TUI.
func RenderInspectStatic(viewType string, data any) string {
	model := NewInspectModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
