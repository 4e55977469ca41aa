package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
)

// Search section texts.
const (
	SearchTitle   = "Find Your Area"
	SearchButton  = "[ Search ]"
	SearchHint    = "Type at least 3 characters"
	ResultsHeader = "Search Results:"
)

// SearchBox renders the query input with its Search button. input is the
// already rendered text input; the button is greyed out and the hint shown
// when canSearch is false.
func SearchBox(s Styles, input string, canSearch bool, width int, mark MarkFunc) string {
	var button string
	if canSearch {
		button = mark.mark(ZoneSearchButton, s.Button.Render(SearchButton))
	} else {
		button = s.Off.Render(SearchButton)
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, input, " ", button)
	if !canSearch {
		body += "\n" + s.Dim.Render(SearchHint)
	}
	return s.section(SearchTitle, body, width)
}

// ResultList renders area search results. cursor is highlighted when
// focused is true; the entry whose schedule is loading (pendingID) is marked
// with a bullet. Each row is a clickable zone. An empty list renders nothing.
func ResultList(s Styles, areas []api.AreaSummary, cursor int, focused bool, pendingID string, width int, mark MarkFunc) string {
	if len(areas) == 0 {
		return ""
	}

	inner := width - s.Section.GetHorizontalFrameSize()
	lines := make([]string, 0, len(areas))
	for i, a := range areas {
		prefix := "  "
		if focused && i == cursor {
			prefix = "> "
		}
		label := a.Label()
		if a.ID != "" && a.ID == pendingID {
			label += " •"
		}
		row := Truncate(prefix+label, inner)

		if focused && i == cursor {
			row = s.Cursor.Render(row)
		} else {
			row = s.Text.Render(row)
		}
		lines = append(lines, mark.mark(ResultZone(i), row))
	}

	title := ResultsHeader
	if len(areas) > 1 {
		title = fmt.Sprintf("%s %d", ResultsHeader, len(areas))
	}
	return s.section(title, strings.Join(lines, "\n"), width)
}
