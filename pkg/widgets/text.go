package widgets

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleLen returns the visible width of s in terminal cells, ignoring ANSI
// escape sequences and counting wide characters as two cells.
func VisibleLen(s string) int {
	return ansi.StringWidth(s)
}

// Truncate shortens s to at most maxWidth visible cells, appending "…" when
// anything was cut. Escape sequences before the cut point are kept.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	return ansi.Truncate(s, maxWidth, "…")
}

// PadRight pads s with trailing spaces to exactly width visible cells. s is
// returned unchanged when it is already that wide.
func PadRight(s string, width int) string {
	vis := VisibleLen(s)
	if vis >= width {
		return s
	}
	return s + strings.Repeat(" ", width-vis)
}

// Strip removes all ANSI escape sequences from s.
func Strip(s string) string {
	return ansi.Strip(s)
}
