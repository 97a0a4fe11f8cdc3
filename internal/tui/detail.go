package tui

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/stream"
	"github.com/thenoetrevino/sprout/internal/tui/components"
	"github.com/thenoetrevino/sprout/internal/tui/theme"
	"github.com/thenoetrevino/sprout/internal/viewmodel"
)

// detailScreen shows one plant and adds it to or removes it from the garden.
type detailScreen struct {
	vm         *viewmodel.PlantDetail
	plantSub   *stream.Subscription[*models.Plant]
	plantedSub *stream.Subscription[bool]
	plant      *models.Plant
	planted    bool
	spinner    spinner.Model
	spinning   bool
	back       screenID
	done       chan struct{}
}

func newDetailScreen(vm *viewmodel.PlantDetail, back screenID) *detailScreen {
	return &detailScreen{
		vm:   vm,
		back: back,
		done: make(chan struct{}),
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent))),
		),
	}
}

func (s *detailScreen) start() tea.Cmd {
	s.plantSub = s.vm.Plant()
	s.plantedSub = s.vm.IsPlanted()
	return tea.Batch(listen(s.plantSub), listen(s.plantedSub), listenEvents(s.vm, s.done))
}

func (s *detailScreen) setPlant(msg valueMsg[*models.Plant]) tea.Cmd {
	if msg.sub != s.plantSub {
		return nil
	}
	s.plant = msg.value
	return listen(s.plantSub)
}

func (s *detailScreen) setPlanted(msg valueMsg[bool]) tea.Cmd {
	if msg.sub != s.plantedSub {
		return nil
	}
	s.planted = msg.value
	return listen(s.plantedSub)
}

func (s *detailScreen) add() tea.Cmd {
	s.vm.AddPlantToGarden()
	return s.startSpinner()
}

func (s *detailScreen) remove() tea.Cmd {
	s.vm.RemovePlantFromGarden()
	return s.startSpinner()
}

func (s *detailScreen) startSpinner() tea.Cmd {
	if s.spinning {
		return nil
	}
	s.spinning = true
	return s.spinner.Tick
}

// tick advances the spinner while a write is pending.
func (s *detailScreen) tick(msg spinner.TickMsg) tea.Cmd {
	if !s.spinning {
		return nil
	}
	if s.vm.Status() != viewmodel.StatusPending {
		s.spinning = false
		return nil
	}
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *detailScreen) close() {
	close(s.done)
	if s.plantSub != nil {
		s.plantSub.Close()
	}
	if s.plantedSub != nil {
		s.plantedSub.Close()
	}
	s.vm.Close()
}

func (s *detailScreen) view(width int) string {
	if s.plant == nil {
		return "Loading plant..."
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title)).Render(s.plant.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render(
		fmt.Sprintf("Grow zone %d · water every %d days", s.plant.GrowZoneNumber, s.plant.WateringInterval)))
	b.WriteString("\n\n")

	if s.planted {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Planted)).Render("● In your garden"))
	} else {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle)).Render("○ Not in your garden"))
	}
	if s.vm.Status() == viewmodel.StatusPending {
		b.WriteString("  " + s.spinner.View() + " saving...")
	}
	b.WriteString("\n\n")

	b.WriteString(components.RenderDescription(components.DescriptionProps{
		Description: s.plant.Description,
		Width:       min(width, 100),
	}))
	return b.String()
}
