package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/sprout/internal/tui/theme"
)

// Tab is one top-level screen in the tab bar
type Tab struct {
	Key    string
	Title  string
	Active bool
}

// RenderTabs renders the tab bar, e.g. "1 Catalog  2 My garden"
func RenderTabs(tabs []Tab) string {
	active := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(theme.Title)).
		Background(lipgloss.Color(theme.SelectedBg)).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Subtle)).
		Padding(0, 1)

	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		label := tab.Key + " " + tab.Title
		if tab.Active {
			parts[i] = active.Render(label)
		} else {
			parts[i] = inactive.Render(label)
		}
	}
	return strings.Join(parts, " ")
}
