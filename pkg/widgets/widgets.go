// Package widgets renders the sections of the lytelode dashboard. Every
// function here is pure: it takes data and a palette and returns a string,
// so the app model decides what to show and the widgets decide how.
package widgets

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/lytelode/pkg/theme"
)

// Zone IDs for clickable regions.
const (
	ZoneThemeToggle  = "theme-toggle"
	ZoneSearchButton = "search-button"
	zoneResultPrefix = "result-"
)

// ResultZone returns the zone ID of the i-th search result.
func ResultZone(i int) string {
	return zoneResultPrefix + strconv.Itoa(i)
}

// MarkFunc wraps s in a clickable zone named id. A nil MarkFunc leaves s
// unchanged.
type MarkFunc func(id, s string) string

func (m MarkFunc) mark(id, s string) string {
	if m == nil {
		return s
	}
	return m(id, s)
}

// Styles are the lipgloss styles derived from a theme.
type Styles struct {
	Theme theme.Theme

	Text    lipgloss.Style
	Dim     lipgloss.Style
	Logo    lipgloss.Style
	Heading lipgloss.Style
	Section lipgloss.Style
	Card    lipgloss.Style
	Cursor  lipgloss.Style
	Button  lipgloss.Style
	Off     lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
}

// NewStyles builds the style set for th.
func NewStyles(th theme.Theme) Styles {
	fg := lipgloss.Color(th.Foreground)
	return Styles{
		Theme:   th,
		Text:    lipgloss.NewStyle().Foreground(fg),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color(th.Dim)),
		Logo:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Accent)),
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Title)),
		Section: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(th.Border)).
			Padding(0, 1),
		Card: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(th.Card)).
			Padding(0, 1),
		Cursor: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Cursor)),
		Button: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(th.ButtonFG)).
			Background(lipgloss.Color(th.ButtonBG)),
		Off:   lipgloss.NewStyle().Foreground(lipgloss.Color(th.ButtonDisabled)),
		Error: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Error)),
		Info:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(th.Info)),
	}
}

// section draws a titled, bordered block of width cells.
func (s Styles) section(title, body string, width int) string {
	inner := width - s.Section.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	content := s.Heading.Render(Truncate(title, inner))
	if body != "" {
		content += "\n" + body
	}
	return s.Section.Width(inner + s.Section.GetHorizontalPadding()).Render(content)
}
