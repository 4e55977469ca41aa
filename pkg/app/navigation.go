package app

// Focus identifies which part of the dashboard receives keys.
type Focus int

const (
	// FocusInput sends keys to the search input.
	FocusInput Focus = iota
	// FocusResults sends keys to the search result list.
	FocusResults
)

func (f Focus) String() string {
	if f == FocusResults {
		return "results"
	}
	return "input"
}

// CycleFocus switches between the search input and the result list. The
// result list can only take focus while it has entries.
func (m *AppModel) CycleFocus() {
	if m.focus == FocusInput && len(m.state.Results) > 0 {
		m.setFocus(FocusResults)
		return
	}
	m.setFocus(FocusInput)
}

// MoveCursor moves the result cursor by delta, clamped to the list.
func (m *AppModel) MoveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *AppModel) setFocus(f Focus) {
	m.focus = f
	if f == FocusInput {
		m.input.Focus()
		m.keys.Quit.SetEnabled(false)
		m.keys.Help.SetEnabled(false)
		return
	}
	m.input.Blur()
	m.keys.Quit.SetEnabled(true)
	m.keys.Help.SetEnabled(true)
}

// syncFocus keeps focus and cursor valid after the result list changed.
func (m *AppModel) syncFocus() {
	if m.focus == FocusResults && len(m.state.Results) == 0 {
		m.setFocus(FocusInput)
	}
	m.clampCursor()
}

func (m *AppModel) clampCursor() {
	n := len(m.state.Results)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
