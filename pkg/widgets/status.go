package widgets

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
)

// Status card texts.
const (
	StatusTitle       = "National Status"
	StatusUnavailable = "Unable to load status"
	updatedLayout     = "2006-01-02 15:04"
)

// StatusCard renders the national stage and when it was last updated, shown
// in loc. stale marks data kept from an earlier successful fetch after a
// later one failed.
func StatusCard(s Styles, st *api.NationalStatus, stale bool, loc *time.Location, width int) string {
	if st == nil {
		return s.section(StatusTitle, s.Dim.Render(StatusUnavailable), width)
	}

	stage := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color(s.Theme.StageColor(st.Stage()))).
		Render(fmt.Sprintf("Stage: %d", st.Stage()))

	updated := "Updated: unknown"
	if t, ok := st.UpdatedAt(); ok {
		updated = "Updated: " + FormatUpdated(t, loc)
	}
	if stale {
		updated += " (stale)"
	}

	return s.section(StatusTitle, stage+"\n"+s.Dim.Render(updated), width)
}

// FormatUpdated formats a status timestamp in loc, or UTC when loc is nil.
func FormatUpdated(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(updatedLayout)
}
