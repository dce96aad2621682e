package config

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors components style themselves with.
type Palette struct {
	Primary  lipgloss.Color
	Success  lipgloss.Color
	Warning  lipgloss.Color
	Error    lipgloss.Color
	Info     lipgloss.Color
	Emphasis lipgloss.Color
	Border   lipgloss.Color
	Muted    lipgloss.Color
}

// Palette returns the configured theme.
func (c *AppConfiguration) Palette() Palette {
	if c == nil {
		return GetTheme("default")
	}
	return GetTheme(c.App.Theme)
}
