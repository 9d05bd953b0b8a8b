package main

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorBase     lipgloss.Color = "#1e1e2e"
	colorCrust    lipgloss.Color = "#11111b"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

// namedAccents maps the accent names allowed in modal definitions to palette
// colors. Definitions referencing other names fall back to the app accent.
var namedAccents = map[string]lipgloss.Color{
	"pink":     colorPink,
	"mauve":    colorMauve,
	"red":      colorRed,
	"peach":    colorPeach,
	"yellow":   colorYellow,
	"green":    colorGreen,
	"teal":     colorTeal,
	"sky":      colorSky,
	"blue":     colorBlue,
	"lavender": colorLavender,
}

// accentColor resolves an accent name from config to a palette color.
func accentColor(name string) lipgloss.Color {
	if c, ok := namedAccents[name]; ok {
		return c
	}
	return colorAccent
}

// AccentNames returns every accent name accepted in modal definitions,
// for config validation.
func AccentNames() []string {
	names := make([]string, 0, len(namedAccents))
	for n := range namedAccents {
		names = append(names, n)
	}
	return names
}
