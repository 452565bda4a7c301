package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pithecene-io/catalogi/metrics"
)

// StatsModel is a Bubble Tea model for stats views.
type StatsModel struct {
	viewType string
	data     any
	width    int
	height   int
	quitting bool
}

// NewStatsModel creates a new stats model.
func NewStatsModel(viewType string, data any) StatsModel {
	return StatsModel{
		viewType: viewType,
		data:     data,
	}
}

// Init implements tea.Model.
func (m StatsModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m StatsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
func (m StatsModel) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.viewType {
	case ViewHistoryStats:
		content = m.renderHistoryStats()
	default:
		content = fmt.Sprintf("Unknown view type: %s", m.viewType)
	}

	help := HelpStyle.Render("Press q or Ctrl+C to quit")
	return content + "\n" + help
}

func (m StatsModel) renderHistoryStats() string {
	data, ok := m.data.(metrics.Snapshot)
	if !ok {
		return "Invalid data type for " + ViewHistoryStats
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Invocation Statistics"))
	b.WriteString("\n\n")

	boxes := []string{
		m.renderStatBox("Total", data.Invocations, highlightColor),
		m.renderStatBox("Succeeded", data.Succeeded, successColor),
		m.renderStatBox("Empty", data.Empty, warningColor),
		m.renderStatBox("Failed", data.Failed, errorColor),
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, boxes...))

	if len(data.ByOperation) > 0 {
		b.WriteString("\n\n")
		b.WriteString(TitleStyle.Render("By Operation"))
		b.WriteString("\n")

		names := make([]string, 0, len(data.ByOperation))
		for name := range data.ByOperation {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			b.WriteString(fmt.Sprintf("%s %s\n",
				LabelStyle.Width(36).Render(name),
				ValueStyle.Render(fmt.Sprintf("%d", data.ByOperation[name]))))
		}
	}

	return b.String()
}

func (m StatsModel) renderStatBox(label string, value int64, color lipgloss.Color) string {
	boxStyle := StatBoxStyle.BorderForeground(color)

	valueStr := StatValueStyle.Foreground(color).Render(fmt.Sprintf("%d", value))
	labelStr := StatLabelStyle.Render(label)

	content := lipgloss.JoinVertical(lipgloss.Center, valueStr, labelStr)

	return boxStyle.Render(content)
}

// RunStatsTUI runs the stats TUI.
func RunStatsTUI(viewType string, data any) error {
	model := NewStatsModel(viewType, data)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// RenderStatsStatic renders stats data without full TUI.
func RenderStatsStatic(viewType string, data any) string {
	model := NewStatsModel(viewType, data)
	model.width = 80
	model.height = 24
	return lipgloss.NewStyle().Padding(1, 2).Render(model.View())
}
