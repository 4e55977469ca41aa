package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Header and footer texts.
const (
	Logo       = "⚡ Lytelode"
	Tagline    = "Loadshedding Tracker for South Africa"
	FooterText = "Data provided by EskomSePush API • Lytelode"
)

// ThemeToggleLabel names the mode a click on the toggle switches to.
func ThemeToggleLabel(dark bool) string {
	if dark {
		return "☀ light"
	}
	return "☾ dark"
}

// Header renders the logo line with the theme toggle right-aligned, then the
// tagline.
func Header(s Styles, width int, mark MarkFunc) string {
	logo := s.Logo.Render(Logo)
	toggle := mark.mark(ZoneThemeToggle, s.Dim.Render("["+ThemeToggleLabel(s.Theme.Dark)+"]"))

	gap := width - VisibleLen(logo) - VisibleLen(toggle)
	if gap < 1 {
		gap = 1
	}
	top := logo + strings.Repeat(" ", gap) + toggle
	return lipgloss.JoinVertical(lipgloss.Left, top, s.Dim.Render(Truncate(Tagline, width)))
}

// Footer renders the attribution line centered in width.
func Footer(s Styles, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.Dim.Render(Truncate(FooterText, width)))
}
