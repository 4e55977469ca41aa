package widgets

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
)

// Schedule section texts.
const (
	ScheduleTitle = "Loadshedding Schedule"
	NoEvents      = "No loadshedding events scheduled"
	dayLayout     = "Mon 2006-01-02"
	clockLayout   = "15:04"
)

// Schedule renders the selected area's upcoming events as cards, one per
// event, in the order given. Callers pass the events to show; the widget
// does not truncate. The area's last update time is shown when it parses.
// Times are displayed in loc.
func Schedule(s Styles, area *api.AreaDetail, events []api.Event, loc *time.Location, width int) string {
	if area == nil {
		return ""
	}
	if loc == nil {
		loc = time.UTC
	}

	inner := width - s.Section.GetHorizontalFrameSize()
	intro := s.Text.Render(Truncate(fmt.Sprintf("Next events for %s:", area.Info.Name), inner))
	if t, ok := api.ParseTimestamp(area.LastUpdated); ok {
		intro += "\n" + s.Dim.Render("Updated: "+FormatUpdated(t, loc))
	}
	if len(events) == 0 {
		return s.section(ScheduleTitle, intro+"\n"+s.Dim.Render(NoEvents), width)
	}

	cards := make([]string, 0, len(events))
	for _, e := range events {
		cards = append(cards, EventCard(s, e, loc))
	}
	return s.section(ScheduleTitle, intro+"\n"+flowCards(cards, inner), width)
}

// EventCard renders one event. The client only delivers events whose window
// parses, but raw strings are shown if that ever fails.
func EventCard(s Styles, e api.Event, loc *time.Location) string {
	var day, from, to string
	if start, end, ok := e.Window(); ok {
		start, end = start.In(loc), end.In(loc)
		day = start.Format(dayLayout)
		from = start.Format(clockLayout)
		to = end.Format(clockLayout)
	} else {
		day, from, to = "?", e.Start, e.End
	}

	label := s.Dim
	lines := []string{
		label.Render("Day:") + " " + day,
		label.Render("Start:") + " " + from,
		label.Render("End:") + " " + to,
	}
	if e.Stage != nil {
		stage := lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color(s.Theme.StageColor(*e.Stage))).
			Render(fmt.Sprintf("%d", *e.Stage))
		lines = append(lines, label.Render("Stage:")+" "+stage)
	}
	return s.Card.Render(strings.Join(lines, "\n"))
}

// flowCards lays cards out left to right, wrapping to a new row when the
// next card would not fit in width.
func flowCards(cards []string, width int) string {
	var rows []string
	var row []string
	used := 0
	for _, c := range cards {
		w := lipgloss.Width(c)
		if len(row) > 0 && used+1+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, used = nil, 0
		}
		if len(row) > 0 {
			row = append(row, " ")
			used++
		}
		row = append(row, c)
		used += w
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
