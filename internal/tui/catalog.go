package tui

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/stream"
	"github.com/thenoetrevino/sprout/internal/tui/components"
	"github.com/thenoetrevino/sprout/internal/tui/theme"
	"github.com/thenoetrevino/sprout/internal/viewmodel"
)

// catalogScreen lists every plant, optionally filtered to one grow zone.
type catalogScreen struct {
	vm     *viewmodel.PlantList
	sub    *stream.Subscription[[]*models.Plant]
	plants []*models.Plant
	loaded bool
	cursor int
}

func newCatalogScreen(vm *viewmodel.PlantList) *catalogScreen {
	return &catalogScreen{vm: vm}
}

func (s *catalogScreen) start() tea.Cmd {
	s.sub = s.vm.Plants()
	return listen(s.sub)
}

func (s *catalogScreen) setPlants(msg valueMsg[[]*models.Plant]) tea.Cmd {
	if msg.sub != s.sub {
		return nil
	}
	s.plants = msg.value
	s.loaded = true
	s.cursor = clamp(s.cursor, len(s.plants))
	return listen(s.sub)
}

func (s *catalogScreen) toggleGrowZone(zone int) {
	if s.vm.IsFiltered() {
		s.vm.ClearGrowZoneNumber()
	} else {
		s.vm.SetGrowZoneNumber(zone)
	}
	s.cursor = 0
}

func (s *catalogScreen) move(delta int) {
	s.cursor = clamp(s.cursor+delta, len(s.plants))
}

func (s *catalogScreen) selected() *models.Plant {
	if s.cursor < 0 || s.cursor >= len(s.plants) {
		return nil
	}
	return s.plants[s.cursor]
}

func (s *catalogScreen) close() {
	if s.sub != nil {
		s.sub.Close()
	}
	s.vm.Close()
}

func (s *catalogScreen) view(height int) string {
	var b strings.Builder

	title := "All plants"
	if zone, ok := s.vm.GrowZoneNumber(); ok {
		title = fmt.Sprintf("Plants for grow zone %d", zone)
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render(title))
	b.WriteString("\n\n")

	switch {
	case !s.loaded:
		b.WriteString("Loading plants...")
	case len(s.plants) == 0:
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("No plants found"))
	default:
		rows := make([]components.Row, len(s.plants))
		for i, p := range s.plants {
			rows[i] = components.Row{Text: fmt.Sprintf("%-24s zone %d", p.Name, p.GrowZoneNumber)}
		}
		b.WriteString(components.RenderList(rows, s.cursor, height))
	}
	return b.String()
}

// clamp keeps a cursor inside [0, n).
func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
