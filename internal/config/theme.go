package config

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset" validate:"omitempty,oneof=default monochrome"`

	// Primary accent color (selections, titles, highlights)
	Accent string `yaml:"accent" validate:"omitempty,hexcolor"`

	// Garden state
	Planted    string `yaml:"planted" validate:"omitempty,hexcolor"`
	NeedsWater string `yaml:"needs_water" validate:"omitempty,hexcolor"`

	// UI elements
	Border     string `yaml:"border" validate:"omitempty,hexcolor"`
	SelectedBg string `yaml:"selected_bg" validate:"omitempty,hexcolor"`

	// Text
	Title  string `yaml:"title" validate:"omitempty,hexcolor"`
	Subtle string `yaml:"subtle" validate:"omitempty,hexcolor"`
	Normal string `yaml:"normal" validate:"omitempty,hexcolor"`

	// Notifications (foreground/background pairs)
	InfoFg    string `yaml:"info_fg" validate:"omitempty,hexcolor"`
	InfoBg    string `yaml:"info_bg" validate:"omitempty,hexcolor"`
	WarningFg string `yaml:"warning_fg" validate:"omitempty,hexcolor"`
	WarningBg string `yaml:"warning_bg" validate:"omitempty,hexcolor"`
	ErrorFg   string `yaml:"error_fg" validate:"omitempty,hexcolor"`
	ErrorBg   string `yaml:"error_bg" validate:"omitempty,hexcolor"`
}

// DefaultColorScheme returns the default green theme
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "default",

		Accent: "#5FAF5F",

		Planted:    "#87D75F",
		NeedsWater: "#5FAFFF",

		Border:     "#5F875F",
		SelectedBg: "#303A30",

		Title:  "#AFD787",
		Subtle: "#6C6C6C",
		Normal: "#D0D0D0",

		InfoFg:    "#00AFFF",
		InfoBg:    "#00005F",
		WarningFg: "#FFD700",
		WarningBg: "#875F00",
		ErrorFg:   "#FF5F5F",
		ErrorBg:   "#5F0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset: "monochrome",

		Accent: "#FFFFFF",

		Planted:    "#FFFFFF",
		NeedsWater: "#D0D0D0",

		Border:     "#FFFFFF",
		SelectedBg: "#3A3A3A",

		Title:  "#FFFFFF",
		Subtle: "#585858",
		Normal: "#D0D0D0",

		InfoFg:    "#FFFFFF",
		InfoBg:    "#1C1C1C",
		WarningFg: "#FFFFFF",
		WarningBg: "#3A3A3A",
		ErrorFg:   "#FFFFFF",
		ErrorBg:   "#585858",
	}
}

// presetScheme returns a preset color scheme by name
func presetScheme(name string) ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

func (c *ColorScheme) colors() []*string {
	return []*string{
		&c.Accent, &c.Planted, &c.NeedsWater, &c.Border, &c.SelectedBg,
		&c.Title, &c.Subtle, &c.Normal,
		&c.InfoFg, &c.InfoBg, &c.WarningFg, &c.WarningBg, &c.ErrorFg, &c.ErrorBg,
	}
}

// ApplyDefaults fills in missing colors from the preset.
func (c *ColorScheme) ApplyDefaults() {
	preset := presetScheme(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	base := preset.colors()
	for i, field := range c.colors() {
		if *field == "" {
			*field = *base[i]
		}
	}
}

// MergeFrom overrides colors with the non-empty values of other.
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.colors()
	for i, field := range c.colors() {
		if *src[i] != "" {
			*field = *src[i]
		}
	}
}
