// Package tui is the interactive terminal UI: a plant catalog, a plant
// detail screen and the user's garden.
package tui

import (
	"strings"
	"sync"
	"time"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/sprout/internal/app"
	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/tui/components"
	"github.com/thenoetrevino/sprout/internal/tui/notifications"
	"github.com/thenoetrevino/sprout/internal/tui/theme"
	"github.com/thenoetrevino/sprout/internal/viewmodel"
)

type screenID int

const (
	catalogView screenID = iota
	gardenView
	detailView
)

// noticeTimeout is how long a daemon connection notice stays visible.
const noticeTimeout = 5 * time.Second

// chromeHeight is the rows used by tabs, titles, snackbar and help.
const chromeHeight = 10

// Model is the root bubbletea model.
type Model struct {
	app  *app.App
	cfg  *config.Config
	keys keyMap
	help help.Model

	width  int
	height int

	screen  screenID
	catalog *catalogScreen
	garden  *gardenScreen
	detail  *detailScreen
	vmOpts  []viewmodel.Option

	notices   chan daemonNotice
	notice    *daemonNotice
	noticeSeq int

	done      chan struct{}
	closeOnce sync.Once
}

// New creates the root model. The catalog screen is shown first.
func New(a *app.App, cfg *config.Config) *Model {
	if cfg == nil {
		cfg = a.Config()
	}
	theme.Init(cfg.ColorScheme)

	m := &Model{
		app:     a,
		cfg:     cfg,
		keys:    newKeyMap(cfg.KeyMappings),
		help:    help.New(),
		screen:  catalogView,
		notices: make(chan daemonNotice, 8),
		done:    make(chan struct{}),
	}
	if cfg.SubscriptionGracePeriod > 0 {
		m.vmOpts = append(m.vmOpts, viewmodel.WithGracePeriod(cfg.SubscriptionGracePeriod))
	}
	m.catalog = newCatalogScreen(viewmodel.NewPlantList(a.PlantService, m.vmOpts...))

	if client := a.EventClient(); client != nil {
		client.SetNotifyFunc(func(level, message string) {
			select {
			case m.notices <- daemonNotice{level: level, message: message}:
			default:
			}
		})
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.catalog.start(), listenNotices(m.notices, m.done))
}

// Close releases every open view-model. It is safe to call more than once.
func (m *Model) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		if m.detail != nil {
			m.detail.close()
			m.detail = nil
		}
		if m.garden != nil {
			m.garden.close()
			m.garden = nil
		}
		if m.catalog != nil {
			m.catalog.close()
			m.catalog = nil
		}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.SetWidth(msg.Width)
		return m, nil

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case valueMsg[[]*models.Plant]:
		if m.catalog != nil {
			return m, m.catalog.setPlants(msg)
		}
	case valueMsg[[]viewmodel.GardenRow]:
		if m.garden != nil {
			return m, m.garden.setRows(msg)
		}
	case valueMsg[*models.Plant]:
		if m.detail != nil {
			return m, m.detail.setPlant(msg)
		}
	case valueMsg[bool]:
		if m.detail != nil {
			return m, m.detail.setPlanted(msg)
		}

	case spinner.TickMsg:
		if m.detail != nil {
			return m, m.detail.tick(msg)
		}

	case uiEventMsg:
		return m, m.handleUIEvent(msg.source)
	case expireSnackbarMsg:
		if msg.source.DismissEvent(msg.event) {
			return m, m.scheduleExpiry(msg.source)
		}

	case noticeMsg:
		m.noticeSeq++
		n := daemonNotice(msg)
		m.notice = &n
		seq := m.noticeSeq
		return m, tea.Batch(
			listenNotices(m.notices, m.done),
			tea.Tick(noticeTimeout, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} }),
		)
	case clearNoticeMsg:
		if msg.seq == m.noticeSeq {
			m.notice = nil
		}
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.ShowHelp):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.DismissMessage):
		if source := m.activeSource(); source != nil {
			source.DismissSnackbar()
			return m, m.scheduleExpiry(source)
		}
		return m, nil
	case key.Matches(msg, m.keys.ShowCatalog):
		return m, m.showCatalog()
	case key.Matches(msg, m.keys.ShowGarden):
		return m, m.showGarden()
	}

	switch {
	case m.screen == catalogView && m.catalog != nil:
		return m, m.handleCatalogKey(msg)
	case m.screen == gardenView && m.garden != nil:
		return m, m.handleGardenKey(msg)
	case m.screen == detailView && m.detail != nil:
		return m, m.handleDetailKey(msg)
	}
	return m, nil
}

func (m *Model) handleCatalogKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.catalog.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.catalog.move(1)
	case key.Matches(msg, m.keys.ToggleGrowZone):
		m.catalog.toggleGrowZone(m.cfg.GrowZone)
	case key.Matches(msg, m.keys.Open):
		if p := m.catalog.selected(); p != nil {
			return m.openDetail(p.ID)
		}
	}
	return nil
}

func (m *Model) handleGardenKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		m.garden.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.garden.move(1)
	case key.Matches(msg, m.keys.Water):
		m.garden.water()
	case key.Matches(msg, m.keys.RemoveFromGarden):
		m.garden.remove()
	case key.Matches(msg, m.keys.Open):
		if id := m.garden.selectedID(); id != "" {
			return m.openDetail(id)
		}
	}
	return nil
}

func (m *Model) handleDetailKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Back):
		back := m.detail.back
		m.detail.close()
		m.detail = nil
		m.screen = back
	case key.Matches(msg, m.keys.AddToGarden):
		return m.detail.add()
	case key.Matches(msg, m.keys.RemoveFromGarden):
		return m.detail.remove()
	}
	return nil
}

func (m *Model) openDetail(plantID string) tea.Cmd {
	back := m.screen
	m.detail = newDetailScreen(
		viewmodel.NewPlantDetail(plantID, m.app.PlantService, m.app.GardenService, m.vmOpts...),
		back,
	)
	m.screen = detailView
	return m.detail.start()
}

// showCatalog switches tabs, closing the screens it leaves behind.
func (m *Model) showCatalog() tea.Cmd {
	if m.screen == catalogView {
		return nil
	}
	m.closeDetail()
	if m.garden != nil {
		m.garden.close()
		m.garden = nil
	}
	m.screen = catalogView
	if m.catalog == nil {
		m.catalog = newCatalogScreen(viewmodel.NewPlantList(m.app.PlantService, m.vmOpts...))
		return m.catalog.start()
	}
	return nil
}

func (m *Model) showGarden() tea.Cmd {
	if m.screen == gardenView {
		return nil
	}
	m.closeDetail()
	if m.catalog != nil {
		m.catalog.close()
		m.catalog = nil
	}
	m.screen = gardenView
	if m.garden == nil {
		m.garden = newGardenScreen(viewmodel.NewGardenPlantingList(m.app.GardenService, m.vmOpts...))
		return m.garden.start()
	}
	return nil
}

func (m *Model) closeDetail() {
	if m.detail != nil {
		m.detail.close()
		m.detail = nil
	}
}

// activeSource is the view-model whose snackbar is on screen.
func (m *Model) activeSource() eventSource {
	switch m.screen {
	case detailView:
		if m.detail != nil {
			return m.detail.vm
		}
	case gardenView:
		if m.garden != nil {
			return m.garden.vm
		}
	}
	return nil
}

func (m *Model) sourceDone(source eventSource) <-chan struct{} {
	if m.detail != nil && source == eventSource(m.detail.vm) {
		return m.detail.done
	}
	if m.garden != nil && source == eventSource(m.garden.vm) {
		return m.garden.done
	}
	return nil
}

func (m *Model) handleUIEvent(source eventSource) tea.Cmd {
	done := m.sourceDone(source)
	if done == nil {
		return nil
	}
	return tea.Batch(listenEvents(source, done), m.scheduleExpiry(source))
}

// scheduleExpiry starts the timeout of the snackbar now showing for source.
func (m *Model) scheduleExpiry(source eventSource) tea.Cmd {
	e, ok := source.PeekEvent()
	if !ok {
		return nil
	}
	return expireSnackbar(source, e)
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.Content = m.render()
	return v
}

func (m *Model) render() string {
	var b strings.Builder

	tab := m.screen
	if tab == detailView && m.detail != nil {
		tab = m.detail.back
	}
	tabs := components.RenderTabs([]components.Tab{
		{Key: m.cfg.KeyMappings.ShowCatalog, Title: "Catalog", Active: tab == catalogView},
		{Key: m.cfg.KeyMappings.ShowGarden, Title: "My garden", Active: tab == gardenView},
	})
	b.WriteString(tabs)
	if m.notice != nil {
		b.WriteString("  ")
		b.WriteString(notifications.RenderInline(notifications.ParseSeverity(m.notice.level), m.notice.message))
	}
	b.WriteString("\n\n")

	listHeight := 0
	if m.height > chromeHeight {
		listHeight = m.height - chromeHeight
	}
	width := m.width
	if width <= 0 {
		width = 80
	}

	switch {
	case m.screen == catalogView && m.catalog != nil:
		b.WriteString(m.catalog.view(listHeight))
	case m.screen == gardenView && m.garden != nil:
		b.WriteString(m.garden.view(listHeight))
	case m.screen == detailView && m.detail != nil:
		b.WriteString(m.detail.view(width))
	}

	if source := m.activeSource(); source != nil {
		if e, ok := source.PeekEvent(); ok {
			severity := notifications.Info
			if e.Err != nil {
				severity = notifications.Error
			}
			b.WriteString("\n\n")
			b.WriteString(notifications.Render(severity, e.Message()))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}
