package tui

import (
	"fmt"
	"strings"
)

// View types with a TUI rendering.
const (
	ViewDescribeAction   = "describe_action"
	ViewDescribeResource = "describe_resource"
	ViewHistoryStats     = "history_stats"
)

// Run starts the appropriate TUI based on the view type.
// Returns an error if the view type doesn't support TUI.
func Run(viewType string, data any) error {
	if !IsTUISupported(viewType) {
		return fmt.Errorf("TUI mode is not supported for %s", viewType)
	}

	if strings.HasPrefix(viewType, "describe_") {
		return RunInspectTUI(viewType, data)
	}
	return RunStatsTUI(viewType, data)
}

// IsTUISupported returns true if the view type supports TUI mode.
// Only read-only describe and stats views do.
func IsTUISupported(viewType string) bool {
	for _, v := range SupportedTUIViews() {
		if v == viewType {
			return true
		}
	}
	return false
}

// SupportedTUIViews returns a list of view types that support TUI.
func SupportedTUIViews() []string {
	return []string{
		ViewDescribeAction,
		ViewDescribeResource,
		ViewHistoryStats,
	}
}
