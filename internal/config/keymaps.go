package config

import (
	"fmt"
	"sort"
	"strings"
)

// KeyMappings defines all configurable key bindings
type KeyMappings struct {
	// Navigation
	Up   string `yaml:"up"`
	Down string `yaml:"down"`
	Open string `yaml:"open"`
	Back string `yaml:"back"`

	// Screens
	ShowCatalog string `yaml:"show_catalog"`
	ShowGarden  string `yaml:"show_garden"`

	// Garden actions
	AddToGarden      string `yaml:"add_to_garden"`
	RemoveFromGarden string `yaml:"remove_from_garden"`
	Water            string `yaml:"water"`

	// Catalog
	ToggleGrowZone string `yaml:"toggle_grow_zone"`

	// Other
	DismissMessage string `yaml:"dismiss_message"`
	ShowHelp       string `yaml:"show_help"`
	Quit           string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		Up:   "k",
		Down: "j",
		Open: "enter",
		Back: "esc",

		ShowCatalog: "1",
		ShowGarden:  "2",

		AddToGarden:      "a",
		RemoveFromGarden: "x",
		Water:            "w",

		ToggleGrowZone: "z",

		DismissMessage: "c",
		ShowHelp:       "?",
		Quit:           "q",
	}
}

// fields lists every binding by its YAML name.
func (k *KeyMappings) fields() map[string]*string {
	return map[string]*string{
		"up":                 &k.Up,
		"down":               &k.Down,
		"open":               &k.Open,
		"back":               &k.Back,
		"show_catalog":       &k.ShowCatalog,
		"show_garden":        &k.ShowGarden,
		"add_to_garden":      &k.AddToGarden,
		"remove_from_garden": &k.RemoveFromGarden,
		"water":              &k.Water,
		"toggle_grow_zone":   &k.ToggleGrowZone,
		"dismiss_message":    &k.DismissMessage,
		"show_help":          &k.ShowHelp,
		"quit":               &k.Quit,
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	want := defaults.fields()
	for name, field := range k.fields() {
		if *field == "" {
			*field = *want[name]
		}
	}
}

// checkConflicts rejects two actions bound to the same key.
func (k *KeyMappings) checkConflicts() error {
	byKey := make(map[string][]string)
	for name, field := range k.fields() {
		byKey[*field] = append(byKey[*field], name)
	}

	var conflicts []string
	for key, names := range byKey {
		if len(names) > 1 {
			sort.Strings(names)
			conflicts = append(conflicts, fmt.Sprintf("%q is bound to %s", key, strings.Join(names, ", ")))
		}
	}
	if len(conflicts) == 0 {
		return nil
	}
	sort.Strings(conflicts)
	return fmt.Errorf("conflicting key mappings: %s", strings.Join(conflicts, "; "))
}
