package app

import (
	"context"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
	"gitlab.com/tinyland/lab/lytelode/pkg/prefs"
	"gitlab.com/tinyland/lab/lytelode/pkg/state"
)

// Fetcher is the subset of *api.Client the dashboard needs.
type Fetcher interface {
	Status(ctx context.Context) (*api.NationalStatus, error)
	SearchAreas(ctx context.Context, query string) ([]api.AreaSummary, error)
	Area(ctx context.Context, id string) (*api.AreaDetail, error)
}

// FetchStatusCmd returns a Cmd that requests the national status and
// delivers a StatusEvent tagged with tok.
func FetchStatusCmd(ctx context.Context, f Fetcher, tok state.Token) tea.Cmd {
	return func() tea.Msg {
		st, err := f.Status(ctx)
		return StatusEvent{Token: tok, Status: st, Err: err}
	}
}

// SearchCmd returns a Cmd that searches for areas matching query and
// delivers a SearchEvent tagged with tok.
func SearchCmd(ctx context.Context, f Fetcher, tok state.Token, query string) tea.Cmd {
	return func() tea.Msg {
		areas, err := f.SearchAreas(ctx, query)
		return SearchEvent{Token: tok, Query: query, Areas: areas, Err: err}
	}
}

// FetchAreaCmd returns a Cmd that loads the schedule of areaID and delivers
// an AreaEvent tagged with tok.
func FetchAreaCmd(ctx context.Context, f Fetcher, tok state.Token, areaID string) tea.Cmd {
	return func() tea.Msg {
		detail, err := f.Area(ctx, areaID)
		return AreaEvent{Token: tok, AreaID: areaID, Detail: detail, Err: err}
	}
}

// prefWriter serializes dark mode saves. Each toggle takes a sequence
// number and a save whose number is no longer the latest is skipped, so the
// store ends up holding the most recent toggle.
type prefWriter struct {
	store prefs.Store

	mu     sync.Mutex
	latest atomic.Uint64
}

func newPrefWriter(store prefs.Store) *prefWriter {
	if store == nil {
		return nil
	}
	return &prefWriter{store: store}
}

// next reserves the sequence number for a new save.
func (w *prefWriter) next() uint64 {
	return w.latest.Add(1)
}

func (w *prefWriter) save(ctx context.Context, seq uint64, dark bool) (skipped bool, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if seq != w.latest.Load() {
		return true, nil
	}
	return false, prefs.SaveDarkMode(ctx, w.store, dark)
}

// savePreferenceCmd returns a Cmd that persists the dark mode flag and
// delivers a PreferenceSavedEvent. A save overtaken by a later toggle is
// skipped and reported as superseded.
func (m *AppModel) savePreferenceCmd(dark bool) tea.Cmd {
	if m.saver == nil {
		return nil
	}
	w, ctx, seq := m.saver, m.ctx, m.saver.next()
	return func() tea.Msg {
		skipped, err := w.save(ctx, seq, dark)
		return PreferenceSavedEvent{Seq: seq, DarkMode: dark, Superseded: skipped, Err: err}
	}
}
