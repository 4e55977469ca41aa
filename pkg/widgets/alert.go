package widgets

import "github.com/charmbracelet/lipgloss"

// LoadingText accompanies the spinner while any request is outstanding.
const LoadingText = "Loading power data..."

const dismissHint = "esc to dismiss"

// Alert renders an error or informational notice with a dismiss hint.
// Informational notices use the info color instead of the error color.
func Alert(s Styles, msg string, info bool, width int) string {
	if msg == "" {
		return ""
	}
	style, icon := s.Error, "✖ "
	if info {
		style, icon = s.Info, "ℹ "
	}

	hint := s.Dim.Render(dismissHint)
	room := width - VisibleLen(hint) - 1
	text := style.Render(Truncate(icon+msg, room))
	return lipgloss.JoinHorizontal(lipgloss.Top, PadRight(text, room), " ", hint)
}

// Loader renders the spinner frame and the loading text.
func Loader(s Styles, spinnerView string) string {
	return spinnerView + " " + s.Logo.Render(LoadingText)
}
