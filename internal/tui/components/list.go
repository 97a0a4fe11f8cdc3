package components

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/sprout/internal/tui/theme"
)

// Row is one line of a selectable list
type Row struct {
	Text   string
	Marker string // optional, rendered before Text
	Color  string // marker color
}

// RenderList renders rows with the cursor row highlighted. Only a window of
// height rows around the cursor is shown.
func RenderList(rows []Row, cursor, height int) string {
	if len(rows) == 0 {
		return ""
	}

	start, end := window(len(rows), cursor, height)

	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color(theme.Accent)).
		Background(lipgloss.Color(theme.SelectedBg)).
		Bold(true)
	normal := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))

	var b strings.Builder
	for i := start; i < end; i++ {
		row := rows[i]
		marker := " "
		if row.Marker != "" {
			marker = lipgloss.NewStyle().Foreground(lipgloss.Color(row.Color)).Render(row.Marker)
		}
		prefix := "  "
		style := normal
		if i == cursor {
			prefix = "> "
			style = selected
		}
		b.WriteString(prefix + marker + " " + style.Render(row.Text))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// window returns the [start, end) slice of n rows that keeps cursor visible.
func window(n, cursor, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	if start+height > n {
		start = n - height
	}
	return start, start + height
}
