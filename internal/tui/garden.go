package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/sprout/internal/stream"
	"github.com/thenoetrevino/sprout/internal/tui/components"
	"github.com/thenoetrevino/sprout/internal/tui/theme"
	"github.com/thenoetrevino/sprout/internal/viewmodel"
)

// gardenScreen lists the planted plants with watering-due marks.
type gardenScreen struct {
	vm     *viewmodel.GardenPlantingList
	sub    *stream.Subscription[[]viewmodel.GardenRow]
	rows   []viewmodel.GardenRow
	loaded bool
	cursor int
	done   chan struct{}
}

func newGardenScreen(vm *viewmodel.GardenPlantingList) *gardenScreen {
	return &gardenScreen{vm: vm, done: make(chan struct{})}
}

func (s *gardenScreen) start() tea.Cmd {
	s.sub = s.vm.Plantings()
	return tea.Batch(listen(s.sub), listenEvents(s.vm, s.done))
}

func (s *gardenScreen) setRows(msg valueMsg[[]viewmodel.GardenRow]) tea.Cmd {
	if msg.sub != s.sub {
		return nil
	}
	s.rows = msg.value
	s.loaded = true
	s.cursor = clamp(s.cursor, len(s.rows))
	return listen(s.sub)
}

func (s *gardenScreen) move(delta int) {
	s.cursor = clamp(s.cursor+delta, len(s.rows))
}

func (s *gardenScreen) selectedID() string {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return ""
	}
	return s.rows[s.cursor].Plant.ID
}

func (s *gardenScreen) water() {
	if id := s.selectedID(); id != "" {
		s.vm.Water(id)
	}
}

func (s *gardenScreen) remove() {
	if id := s.selectedID(); id != "" {
		s.vm.Remove(id)
	}
}

func (s *gardenScreen) close() {
	close(s.done)
	if s.sub != nil {
		s.sub.Close()
	}
	s.vm.Close()
}

func (s *gardenScreen) view(height int) string {
	var b strings.Builder

	title := "My garden"
	if s.vm.Status() == viewmodel.StatusPending {
		title += "  (saving...)"
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render(title))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString("Loading garden...")
	case len(s.rows) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).
			Render("Your garden is empty. Add plants from the catalog."))
	default:
		rows := make([]components.Row, len(s.rows))
		for i, r := range s.rows {
			row := components.Row{
				Text:   fmt.Sprintf("%-24s planted %s", r.Plant.Name, r.Planting.PlantDate.Format("Jan 2")),
				Marker: "●",
				Color:  theme.Planted,
			}
			if r.NeedsWater {
				row.Marker = "!"
				row.Color = theme.NeedsWater
				row.Text += "  needs water"
			}
			rows[i] = row
		}
		b.WriteString(components.RenderList(rows, s.cursor, height))
	}
	return b.String()
}
