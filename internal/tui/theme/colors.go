// Package theme holds the active TUI colors.
package theme

import "github.com/thenoetrevino/sprout/internal/config"

// Colors holds the current theme colors, initialized by Init
var (
	Accent     string
	Planted    string
	NeedsWater string
	Border     string
	SelectedBg string
	Title      string
	Subtle     string
	Normal     string
	InfoFg     string
	InfoBg     string
	WarningFg  string
	WarningBg  string
	ErrorFg    string
	ErrorBg    string
)

func init() {
	Init(config.DefaultColorScheme())
}

// Init initializes the theme colors from the given color scheme
func Init(colors config.ColorScheme) {
	Accent = colors.Accent
	Planted = colors.Planted
	NeedsWater = colors.NeedsWater
	Border = colors.Border
	SelectedBg = colors.SelectedBg
	Title = colors.Title
	Subtle = colors.Subtle
	Normal = colors.Normal
	InfoFg = colors.InfoFg
	InfoBg = colors.InfoBg
	WarningFg = colors.WarningFg
	WarningBg = colors.WarningBg
	ErrorFg = colors.ErrorFg
	ErrorBg = colors.ErrorBg
}
