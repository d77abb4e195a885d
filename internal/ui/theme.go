// Package ui provides terminal output helpers for rbxts-luau: spinners for
// long-running tool steps, result cards and markdown panels. Every
// component degrades to plain text when no terminal is attached.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Colors is the palette used by UI components.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Error     string
	Muted     string
}

// Theme carries the palette and the color switch.
type Theme struct {
	NoColor bool
	Colors  Colors
}

// NewTheme returns the default theme. Color is disabled when noColor is set
// or the NO_COLOR environment variable is present.
func NewTheme(noColor bool) *Theme {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		noColor = true
	}
	return &Theme{
		NoColor: noColor,
		Colors: Colors{
			Primary:   "#00A2FF",
			Secondary: "#7C3AED",
			Success:   "#10B981",
			Error:     "#EF4444",
			Muted:     "#6B7280",
		},
	}
}

// style returns a foreground style for color, or a plain style without color.
func (t *Theme) style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Title renders s as a heading.
func (t *Theme) Title(s string) string {
	return t.style(t.Colors.Primary).Bold(true).Render(s)
}

// Success renders s as a success message.
func (t *Theme) Success(s string) string {
	return t.style(t.Colors.Success).Render(s)
}

// Error renders s as an error message.
func (t *Theme) Error(s string) string {
	return t.style(t.Colors.Error).Render(s)
}

// Muted renders s as secondary text.
func (t *Theme) Muted(s string) string {
	return t.style(t.Colors.Muted).Render(s)
}
