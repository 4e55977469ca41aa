package app

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
	"gitlab.com/tinyland/lab/lytelode/pkg/prefs"
	"gitlab.com/tinyland/lab/lytelode/pkg/state"
	"gitlab.com/tinyland/lab/lytelode/pkg/theme"
	"gitlab.com/tinyland/lab/lytelode/pkg/widgets"
)

// maxContentWidth caps how wide the dashboard is drawn on large terminals.
const maxContentWidth = 96

// Options wires the model to its collaborators. Fetcher is required; the
// rest have usable defaults.
type Options struct {
	// Context is the parent of every request context. Defaults to
	// context.Background().
	Context context.Context

	Fetcher Fetcher

	// Store persists the dark mode preference. A nil Store keeps the
	// preference in memory only.
	Store prefs.Store

	Logger *slog.Logger

	// Location is the zone times are displayed in. Defaults to UTC.
	Location *time.Location

	// Zones enables mouse support. Nil disables click handling.
	Zones *zone.Manager
}

// AppModel is the root bubbletea model of the dashboard.
type AppModel struct {
	ctx     context.Context
	fetcher Fetcher
	store   prefs.Store
	saver   *prefWriter
	logger  *slog.Logger
	loc     *time.Location
	zones   *zone.Manager

	state     state.ViewState
	statusTok state.Token

	theme  theme.Theme
	styles widgets.Styles

	input   textinput.Model
	spinner spinner.Model
	help    help.Model
	keys    keyMap

	focus    Focus
	cursor   int
	width    int
	height   int
	quitting bool
}

// NewAppModel reads the persisted preference once, applies its theme and
// begins the initial national status fetch, which Init returns.
func NewAppModel(opts Options) AppModel {
	m := AppModel{
		ctx:     opts.Context,
		fetcher: opts.Fetcher,
		store:   opts.Store,
		logger:  opts.Logger,
		loc:     opts.Location,
		zones:   opts.Zones,
		keys:    defaultKeyMap(),
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.loc == nil {
		m.loc = time.UTC
	}

	dark := false
	if m.store != nil {
		d, err := prefs.LoadDarkMode(m.ctx, m.store)
		if err != nil {
			m.logger.Warn("reading dark mode preference", "error", err)
		}
		dark = d
	}
	m.state = state.New(dark)
	m.saver = newPrefWriter(m.store)

	m.input = textinput.New()
	m.input.Placeholder = "Search for your area..."
	m.input.Prompt = "> "
	m.input.CharLimit = 64
	m.input.Cursor.SetMode(cursor.CursorStatic)

	m.spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.help = help.New()

	m.applyTheme()
	m.setFocus(FocusInput)

	m.state, m.statusTok = m.state.BeginStatus()
	return m
}

// Init starts the status fetch issued by NewAppModel and the spinner.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		FetchStatusCmd(m.ctx, m.fetcher, m.statusTok),
		m.spinner.Tick,
	)
}

// Update is the single place the view state changes.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = m.contentWidth()
		m.input.Width = max(m.contentWidth()-lipgloss.Width(widgets.SearchButton)-10, 10)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case StatusEvent:
		if !m.accept(msg.Token, msg.Err) {
			return m, nil
		}
		if msg.Err != nil {
			m.state = m.state.StatusFailed(msg.Token, msg.Err)
		} else {
			m.state = m.state.StatusFetched(msg.Token, msg.Status)
		}
		return m, nil

	case SearchEvent:
		if !m.accept(msg.Token, msg.Err) {
			return m, nil
		}
		if msg.Err != nil {
			m.state = m.state.SearchFailed(msg.Token, msg.Err)
		} else {
			m.state = m.state.SearchSucceeded(msg.Token, msg.Areas)
			m.logger.Debug("search complete", "query", msg.Query, "areas", len(msg.Areas))
		}
		m.cursor = 0
		if len(m.state.Results) > 0 {
			m.setFocus(FocusResults)
		}
		m.syncFocus()
		return m, nil

	case AreaEvent:
		if !m.accept(msg.Token, msg.Err) {
			return m, nil
		}
		if msg.Err != nil {
			m.state = m.state.AreaFailed(msg.Token, msg.Err)
		} else {
			m.state = m.state.AreaLoaded(msg.Token, msg.Detail)
		}
		m.syncFocus()
		return m, nil

	case PreferenceSavedEvent:
		switch {
		case msg.Err != nil:
			m.logger.Warn("saving dark mode preference", "dark", msg.DarkMode, "seq", msg.Seq, "error", msg.Err)
		case msg.Superseded:
			m.logger.Debug("skipped superseded preference save", "dark", msg.DarkMode, "seq", msg.Seq)
		}
		return m, nil

	case spinner.TickMsg:
		// Ticks stop while idle; the next request restarts them.
		if !m.state.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.focus == FocusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// accept reports whether a completion belongs to the latest request of its
// kind. Failures are logged either way.
func (m *AppModel) accept(tok state.Token, err error) bool {
	latest := m.state.Current(tok)
	if err != nil {
		m.logger.Warn("request failed",
			"op", tok.Kind.String(),
			"seq", tok.Seq,
			"status_code", api.StatusCode(err),
			"superseded", !latest,
			"error", err,
		)
	}
	if !latest {
		m.logger.Debug("discarding superseded response", "op", tok.Kind.String(), "seq", tok.Seq)
	}
	return latest
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.ForceQ):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Theme):
		return m, m.togglePreference()
	case key.Matches(msg, m.keys.Refresh):
		return m, m.refreshStatus()
	case key.Matches(msg, m.keys.Escape):
		m.escape()
		return m, nil
	case key.Matches(msg, m.keys.Focus):
		m.CycleFocus()
		return m, nil
	}

	if m.focus == FocusInput {
		if key.Matches(msg, m.keys.Submit) {
			return m, m.search()
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.MoveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.MoveCursor(1)
	case key.Matches(msg, m.keys.Submit):
		return m, m.selectArea(m.cursor)
	}
	return m, nil
}

func (m AppModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.zones == nil || msg.Action != tea.MouseActionRelease || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.zones.Get(widgets.ZoneThemeToggle).InBounds(msg) {
		return m, m.togglePreference()
	}
	if m.zones.Get(widgets.ZoneSearchButton).InBounds(msg) {
		return m, m.search()
	}
	for i := range m.state.Results {
		if m.zones.Get(widgets.ResultZone(i)).InBounds(msg) {
			m.cursor = i
			return m, m.selectArea(i)
		}
	}
	return m, nil
}

// spin restarts the spinner when a request begins from an idle state.
func (m *AppModel) spin(wasLoading bool) tea.Cmd {
	if wasLoading {
		return nil
	}
	return m.spinner.Tick
}

func (m *AppModel) refreshStatus() tea.Cmd {
	was := m.state.Loading()
	m.state, m.statusTok = m.state.BeginStatus()
	return tea.Batch(FetchStatusCmd(m.ctx, m.fetcher, m.statusTok), m.spin(was))
}

func (m *AppModel) search() tea.Cmd {
	was := m.state.Loading()
	next, tok, ok := m.state.BeginSearch(m.input.Value())
	if !ok {
		return nil
	}
	m.state = next
	m.syncFocus()
	m.logger.Debug("searching", "query", next.Query, "seq", tok.Seq)
	return tea.Batch(SearchCmd(m.ctx, m.fetcher, tok, next.Query), m.spin(was))
}

func (m *AppModel) selectArea(i int) tea.Cmd {
	if i < 0 || i >= len(m.state.Results) {
		return nil
	}
	id := m.state.Results[i].ID
	was := m.state.Loading()
	next, tok := m.state.BeginSelect(id)
	m.state = next
	m.logger.Debug("loading area", "id", id, "seq", tok.Seq)
	return tea.Batch(FetchAreaCmd(m.ctx, m.fetcher, tok, id), m.spin(was))
}

func (m *AppModel) togglePreference() tea.Cmd {
	m.state = m.state.TogglePreference()
	m.applyTheme()
	return m.savePreferenceCmd(m.state.DarkMode)
}

// escape dismisses a visible error, otherwise clears the search.
func (m *AppModel) escape() {
	if m.state.HasError() {
		m.state = m.state.DismissError()
		return
	}
	m.state = m.state.ClearSearch()
	m.input.SetValue("")
	m.cursor = 0
	m.setFocus(FocusInput)
}

// applyTheme restyles every component for the current dark mode flag.
func (m *AppModel) applyTheme() {
	m.theme = theme.ForMode(m.state.DarkMode)
	m.styles = widgets.NewStyles(m.theme)

	m.input.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	m.input.TextStyle = m.styles.Text
	m.input.PlaceholderStyle = m.styles.Dim
	m.input.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Cursor))

	m.spinner.Style = m.styles.Logo

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HelpKey))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HelpDesc))
	m.help.Styles.ShortKey = keyStyle
	m.help.Styles.FullKey = keyStyle
	m.help.Styles.ShortDesc = descStyle
	m.help.Styles.FullDesc = descStyle
	m.help.Styles.ShortSeparator = descStyle
	m.help.Styles.FullSeparator = descStyle
	m.help.Styles.Ellipsis = descStyle
}

// View renders the dashboard top to bottom.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Initializing..."
	}

	w := m.contentWidth()
	s := m.styles
	mark := m.markFunc()

	parts := []string{widgets.Header(s, w, mark)}
	if m.state.Loading() {
		parts = append(parts, widgets.Loader(s, m.spinner.View()))
	}
	if m.state.HasError() {
		parts = append(parts, widgets.Alert(s, m.state.Error, m.state.ErrorLevel == state.LevelInfo, w))
	}
	parts = append(parts,
		widgets.StatusCard(s, m.state.Status, m.state.StatusStale, m.loc, w),
		widgets.SearchBox(s, m.input.View(), state.CanSearch(m.input.Value()), w, mark),
	)
	if list := widgets.ResultList(s, m.state.Results, m.cursor, m.focus == FocusResults, m.state.PendingID, w, mark); list != "" {
		parts = append(parts, list)
	}
	if sched := widgets.Schedule(s, m.state.Area, m.state.VisibleEvents(), m.loc, w); sched != "" {
		parts = append(parts, sched)
	}
	parts = append(parts, m.help.View(m.keys), widgets.Footer(s, w))

	out := strings.Join(parts, "\n")
	if m.zones != nil {
		out = m.zones.Scan(out)
	}
	return out
}

func (m AppModel) markFunc() widgets.MarkFunc {
	if m.zones == nil {
		return nil
	}
	return m.zones.Mark
}

func (m AppModel) contentWidth() int {
	return min(m.width, maxContentWidth)
}

// State returns the current view state.
func (m AppModel) State() state.ViewState {
	return m.state
}

// Theme returns the active palette.
func (m AppModel) Theme() theme.Theme {
	return m.theme
}

// FocusedOn returns which part of the dashboard receives keys.
func (m AppModel) FocusedOn() Focus {
	return m.focus
}

// Cursor returns the index of the highlighted search result.
func (m AppModel) Cursor() int {
	return m.cursor
}

// Query returns the text currently in the search input.
func (m AppModel) Query() string {
	return m.input.Value()
}

// Width returns the current terminal width.
func (m AppModel) Width() int {
	return m.width
}

// Height returns the current terminal height.
func (m AppModel) Height() int {
	return m.height
}

// Quitting reports whether the user asked to quit.
func (m AppModel) Quitting() bool {
	return m.quitting
}

// HelpVisible reports whether the full help is shown.
func (m AppModel) HelpVisible() bool {
	return m.help.ShowAll
}
