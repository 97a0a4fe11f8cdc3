package tui

import (
	"context"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/sprout/internal/app"
	"github.com/thenoetrevino/sprout/internal/config"
	"github.com/thenoetrevino/sprout/internal/models"
	"github.com/thenoetrevino/sprout/internal/stream"
	"github.com/thenoetrevino/sprout/internal/testutil"
	"github.com/thenoetrevino/sprout/internal/viewmodel"
)

func testConfig() *config.Config {
	return &config.Config{
		GrowZone:    9,
		KeyMappings: config.DefaultKeyMappings(),
		ColorScheme: config.DefaultColorScheme(),
	}
}

func setupModel(t *testing.T) (*Model, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	testutil.SeedTestPlants(t, db)
	cfg := testConfig()
	a := app.New(db, app.WithConfig(cfg))

	m := New(a, cfg)
	t.Cleanup(m.Close)
	m.Init()
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, a
}

// pumpUntil feeds values from sub into the model until done reports true.
func pumpUntil[T any](t *testing.T, m *Model, sub *stream.Subscription[T], done func(T) bool) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case v, ok := <-sub.C():
			require.True(t, ok, "subscription closed")
			m.Update(valueMsg[T]{sub: sub, value: v})
			if done(v) {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for value")
		}
	}
}

func press(m *Model, k string) tea.Cmd {
	var msg tea.KeyPressMsg
	switch k {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		r := []rune(k)[0]
		msg = tea.KeyPressMsg{Code: r, Text: k}
	}
	_, cmd := m.Update(msg)
	return cmd
}

func loadCatalog(t *testing.T, m *Model) {
	t.Helper()
	pumpUntil(t, m, m.catalog.sub, func(p []*models.Plant) bool { return len(p) == 3 })
}

func TestModel_CatalogListsPlants(t *testing.T) {
	m, _ := setupModel(t)
	loadCatalog(t, m)

	content := m.View().Content
	assert.Contains(t, content, "All plants")
	assert.Contains(t, content, "Basil")
	assert.Contains(t, content, "Sunflower")
	assert.Contains(t, content, "Tomato")
	assert.True(t, m.View().AltScreen)
}

func TestModel_CursorMovement(t *testing.T) {
	m, _ := setupModel(t)
	loadCatalog(t, m)

	press(m, "j")
	press(m, "j")
	press(m, "j")
	assert.Equal(t, 2, m.catalog.cursor, "cursor stops at the last row")
	assert.Equal(t, "tomato", m.catalog.selected().ID)

	press(m, "k")
	assert.Equal(t, "sunflower", m.catalog.selected().ID)
}

func TestModel_ToggleGrowZone(t *testing.T) {
	m, _ := setupModel(t)
	loadCatalog(t, m)

	press(m, "z")
	pumpUntil(t, m, m.catalog.sub, func(p []*models.Plant) bool { return len(p) == 2 })
	assert.Contains(t, m.View().Content, "Plants for grow zone 9")
	assert.NotContains(t, m.View().Content, "Basil")

	press(m, "z")
	pumpUntil(t, m, m.catalog.sub, func(p []*models.Plant) bool { return len(p) == 3 })
	assert.False(t, m.catalog.vm.IsFiltered())
}

func TestModel_DetailAddAndRemove(t *testing.T) {
	m, a := setupModel(t)
	loadCatalog(t, m)

	press(m, "enter")
	require.Equal(t, detailView, m.screen)
	require.NotNil(t, m.detail)
	d := m.detail
	assert.Equal(t, "basil", d.vm.PlantID())

	pumpUntil(t, m, d.plantSub, func(p *models.Plant) bool { return p != nil })
	pumpUntil(t, m, d.plantedSub, func(bool) bool { return true })
	assert.Contains(t, m.View().Content, "Not in your garden")

	cmd := press(m, "a")
	assert.NotNil(t, cmd, "adding starts the spinner")
	d.vm.Wait()
	pumpUntil(t, m, d.plantedSub, func(planted bool) bool { return planted })

	planted, err := a.GardenService.GetGardenPlanting(context.Background(), "basil")
	require.NoError(t, err)
	assert.NotNil(t, planted)

	m.Update(uiEventMsg{source: d.vm})
	content := m.View().Content
	assert.Contains(t, content, "In your garden")
	assert.Contains(t, content, "Added plant to garden")

	press(m, "c")
	_, ok := d.vm.PeekEvent()
	assert.False(t, ok, "dismiss clears the snackbar")

	press(m, "x")
	d.vm.Wait()
	pumpUntil(t, m, d.plantedSub, func(planted bool) bool { return !planted })
	assert.Contains(t, m.View().Content, "Removed plant from garden")
}

func TestModel_BackClosesDetail(t *testing.T) {
	m, _ := setupModel(t)
	loadCatalog(t, m)

	press(m, "enter")
	d := m.detail
	require.NotNil(t, d)

	press(m, "esc")
	assert.Equal(t, catalogView, m.screen)
	assert.Nil(t, m.detail)

	select {
	case <-d.done:
	default:
		t.Fatal("detail screen was not closed")
	}
}

func TestModel_GardenTab(t *testing.T) {
	m, a := setupModel(t)
	loadCatalog(t, m)

	press(m, "2")
	require.Equal(t, gardenView, m.screen)
	assert.Nil(t, m.catalog, "leaving the catalog closes it")
	require.NotNil(t, m.garden)

	pumpUntil(t, m, m.garden.sub, func([]viewmodel.GardenRow) bool { return true })
	assert.Contains(t, m.View().Content, "Your garden is empty")

	res := a.GardenService.CreateGardenPlanting(context.Background(), "tomato")
	require.NoError(t, res.Err)
	pumpUntil(t, m, m.garden.sub, func(rows []viewmodel.GardenRow) bool { return len(rows) == 1 })
	assert.Contains(t, m.View().Content, "Tomato")

	press(m, "w")
	m.garden.vm.Wait()
	e, ok := m.garden.vm.PeekEvent()
	require.True(t, ok)
	assert.Equal(t, viewmodel.EventSuccess, e.Kind)

	m.Update(expireSnackbarMsg{source: m.garden.vm, event: e})
	_, ok = m.garden.vm.PeekEvent()
	assert.False(t, ok, "expired snackbar is dismissed")

	press(m, "x")
	m.garden.vm.Wait()
	pumpUntil(t, m, m.garden.sub, func(rows []viewmodel.GardenRow) bool { return len(rows) == 0 })

	press(m, "1")
	assert.Equal(t, catalogView, m.screen)
	assert.Nil(t, m.garden)
	require.NotNil(t, m.catalog)
	loadCatalog(t, m)
}

func TestModel_OpenFromGardenReturnsToGarden(t *testing.T) {
	m, a := setupModel(t)
	require.NoError(t, a.GardenService.CreateGardenPlanting(context.Background(), "sunflower").Err)

	press(m, "2")
	pumpUntil(t, m, m.garden.sub, func(rows []viewmodel.GardenRow) bool { return len(rows) == 1 })

	press(m, "enter")
	require.Equal(t, detailView, m.screen)
	assert.Equal(t, "sunflower", m.detail.vm.PlantID())

	press(m, "esc")
	assert.Equal(t, gardenView, m.screen)
}

func TestModel_StaleExpiryKeepsNewerEvent(t *testing.T) {
	m, _ := setupModel(t)
	loadCatalog(t, m)
	press(m, "enter")
	d := m.detail

	press(m, "a")
	d.vm.Wait()
	first, ok := d.vm.PeekEvent()
	require.True(t, ok)
	press(m, "c")

	press(m, "x")
	d.vm.Wait()
	second, ok := d.vm.PeekEvent()
	require.True(t, ok)
	require.NotEqual(t, first.ID, second.ID)

	m.Update(expireSnackbarMsg{source: d.vm, event: first})
	current, ok := d.vm.PeekEvent()
	require.True(t, ok)
	assert.Equal(t, second.ID, current.ID)
}

func TestModel_DaemonNotice(t *testing.T) {
	m, _ := setupModel(t)

	m.Update(noticeMsg{level: "warning", message: "Lost connection to daemon"})
	assert.Contains(t, m.View().Content, "Lost connection to daemon")

	m.Update(clearNoticeMsg{seq: m.noticeSeq - 1})
	assert.NotNil(t, m.notice, "stale clear is ignored")

	m.Update(clearNoticeMsg{seq: m.noticeSeq})
	assert.Nil(t, m.notice)
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := setupModel(t)
	assert.False(t, m.help.ShowAll)
	press(m, "?")
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View().Content, "grow zone filter")
}

func TestModel_QuitClosesScreens(t *testing.T) {
	m, _ := setupModel(t)
	loadCatalog(t, m)
	sub := m.catalog.sub

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
	assert.Nil(t, m.catalog)

	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-sub.C():
			if !ok {
				m.Close()
				return
			}
		case <-deadline:
			t.Fatal("catalog subscription still open")
		}
	}
}
