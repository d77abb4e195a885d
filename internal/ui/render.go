package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

// Card renders a bordered box with a title and one muted line per item. Without
// color it falls back to a plain indented list.
func (t *Theme) Card(title string, lines []string) string {
	if t.NoColor {
		var b strings.Builder
		b.WriteString(title)
		b.WriteString("\n")
		for _, l := range lines {
			b.WriteString("  ")
			b.WriteString(l)
			b.WriteString("\n")
		}
		return b.String()
	}

	body := t.Title(title)
	if len(lines) > 0 {
		muted := make([]string, len(lines))
		for i, l := range lines {
			muted[i] = t.Muted(l)
		}
		body += "\n\n" + strings.Join(muted, "\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.Colors.Secondary)).
		Padding(0, 1).
		Render(body) + "\n"
}

// Markdown renders md for the terminal, wrapped at width columns.
// Without color the "notty" style is used so output stays plain.
func (t *Theme) Markdown(md string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if t.NoColor {
		opts = append(opts, glamour.WithStandardStyle("notty"))
	} else {
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}
