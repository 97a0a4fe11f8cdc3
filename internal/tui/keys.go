package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/sprout/internal/config"
)

// keyMap holds the bindings built from the user's key mappings.
type keyMap struct {
	Up               key.Binding
	Down             key.Binding
	Open             key.Binding
	Back             key.Binding
	ShowCatalog      key.Binding
	ShowGarden       key.Binding
	AddToGarden      key.Binding
	RemoveFromGarden key.Binding
	Water            key.Binding
	ToggleGrowZone   key.Binding
	DismissMessage   key.Binding
	ShowHelp         key.Binding
	Quit             key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Up:               binding(km.Up, "up", "move up", "up"),
		Down:             binding(km.Down, "down", "move down", "down"),
		Open:             binding(km.Open, "", "open plant"),
		Back:             binding(km.Back, "", "back"),
		ShowCatalog:      binding(km.ShowCatalog, "", "catalog"),
		ShowGarden:       binding(km.ShowGarden, "", "my garden"),
		AddToGarden:      binding(km.AddToGarden, "", "add to garden"),
		RemoveFromGarden: binding(km.RemoveFromGarden, "", "remove from garden"),
		Water:            binding(km.Water, "", "water"),
		ToggleGrowZone:   binding(km.ToggleGrowZone, "", "grow zone filter"),
		DismissMessage:   binding(km.DismissMessage, "", "dismiss message"),
		ShowHelp:         binding(km.ShowHelp, "", "toggle help"),
		Quit:             binding(km.Quit, "", "quit", "ctrl+c"),
	}
}

// binding creates a binding for the configured key plus any fixed extras.
// helpKey overrides the key shown in help when set.
func binding(configured, helpKey, desc string, extra ...string) key.Binding {
	if helpKey == "" {
		helpKey = configured
	} else {
		helpKey = configured + "/" + helpKey
	}
	keys := append([]string{configured}, extra...)
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(helpKey, desc))
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.AddToGarden, k.RemoveFromGarden, k.ShowHelp, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open, k.Back},
		{k.ShowCatalog, k.ShowGarden, k.ToggleGrowZone},
		{k.AddToGarden, k.RemoveFromGarden, k.Water},
		{k.DismissMessage, k.ShowHelp, k.Quit},
	}
}
