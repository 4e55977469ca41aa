// Package state holds the dashboard's view state and the pure transitions
// between states. Nothing here performs I/O: callers begin a transition,
// run the request themselves and feed the outcome back with the token they
// were given. Responses carrying a token older than the latest one issued
// for the same kind of request are ignored.
package state

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
)

// MinQueryLen is the minimum number of runes in a trimmed search query.
const MinQueryLen = 3

// MaxEvents is how many schedule events the dashboard shows for an area.
const MaxEvents = 5

// User-facing messages.
const (
	MsgStatusFailed = "Unable to load national status. Please try again."
	MsgSearchFailed = "Error searching for areas. Please try again."
	MsgAreaFailed   = "Unable to load the schedule for this area. Please try again."
)

// Kind identifies one of the independent request cycles.
type Kind int

const (
	KindStatus Kind = iota
	KindSearch
	KindArea
)

func (k Kind) String() string {
	switch k {
	case KindStatus:
		return "status"
	case KindSearch:
		return "search"
	case KindArea:
		return "area"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Level distinguishes failures from informational notices.
type Level int

const (
	LevelNone Level = iota
	LevelError
	LevelInfo
)

// Token ties a response to the request that produced it.
type Token struct {
	Kind Kind   `json:"kind"`
	Seq  uint64 `json:"seq"`
}

// Cycle tracks one request kind: the latest issued sequence number and
// whether that request is still outstanding.
type Cycle struct {
	Seq      uint64 `json:"seq"`
	InFlight bool   `json:"in_flight"`
}

// ViewState is everything the dashboard renders. It is a value type; all
// transitions return a new ViewState and never mutate slices in place.
type ViewState struct {
	Status      *api.NationalStatus `json:"status,omitempty"`
	StatusStale bool                `json:"status_stale,omitempty"`

	Query      string            `json:"query"`
	Results    []api.AreaSummary `json:"results,omitempty"`
	SelectedID string            `json:"selected_id,omitempty"`
	PendingID  string            `json:"pending_id,omitempty"`
	Area       *api.AreaDetail   `json:"area,omitempty"`

	DarkMode bool `json:"dark_mode"`

	Error       string `json:"error,omitempty"`
	ErrorLevel  Level  `json:"error_level,omitempty"`
	ErrorSource Kind   `json:"error_source,omitempty"`

	Cycles [3]Cycle `json:"cycles"`
}

// New returns the initial state for the given persisted preference.
func New(darkMode bool) ViewState {
	return ViewState{DarkMode: darkMode}
}

// Loading reports whether any request is outstanding.
func (s ViewState) Loading() bool {
	for _, c := range s.Cycles {
		if c.InFlight {
			return true
		}
	}
	return false
}

// InFlight reports whether the latest request of kind k is outstanding.
func (s ViewState) InFlight(k Kind) bool {
	return s.Cycles[k].InFlight
}

// HasError reports whether an error or notice is showing.
func (s ViewState) HasError() bool {
	return s.Error != ""
}

// CanSearch reports whether query is long enough to be submitted.
func CanSearch(query string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(query)) >= MinQueryLen
}

// VisibleEvents returns at most MaxEvents events of the selected area.
func (s ViewState) VisibleEvents() []api.Event {
	if s.Area == nil {
		return nil
	}
	if len(s.Area.Events) > MaxEvents {
		return s.Area.Events[:MaxEvents]
	}
	return s.Area.Events
}

func (s ViewState) begin(k Kind) (ViewState, Token) {
	s.Cycles[k].Seq++
	s.Cycles[k].InFlight = true
	return s, Token{Kind: k, Seq: s.Cycles[k].Seq}
}

// Current reports whether tok is the latest token issued for its kind.
// Completions carrying any other token are ignored.
func (s ViewState) Current(tok Token) bool {
	return tok.Seq != 0 && s.Cycles[tok.Kind].Seq == tok.Seq
}

// supersede invalidates any outstanding request of kind k so its response
// is discarded when it arrives.
func (s ViewState) supersede(k Kind) ViewState {
	if s.Cycles[k].InFlight {
		s.Cycles[k].Seq++
		s.Cycles[k].InFlight = false
	}
	return s
}

func (s ViewState) finish(k Kind) ViewState {
	s.Cycles[k].InFlight = false
	return s
}

func (s ViewState) setError(k Kind, level Level, msg string) ViewState {
	s.Error = msg
	s.ErrorLevel = level
	s.ErrorSource = k
	return s
}

// clearErrorFrom drops the error if it was raised by kind k.
func (s ViewState) clearErrorFrom(k Kind) ViewState {
	if s.Error != "" && s.ErrorSource == k {
		return s.DismissError()
	}
	return s
}

// BeginStatus starts a national status fetch.
func (s ViewState) BeginStatus() (ViewState, Token) {
	return s.begin(KindStatus)
}

// StatusFetched applies a successful status response.
func (s ViewState) StatusFetched(tok Token, st *api.NationalStatus) ViewState {
	if !s.Current(tok) {
		return s
	}
	s = s.finish(KindStatus)
	s.Status = st
	s.StatusStale = false
	return s.clearErrorFrom(KindStatus)
}

// StatusFailed applies a failed status response. Previously loaded status
// is kept and marked stale.
func (s ViewState) StatusFailed(tok Token, err error) ViewState {
	if !s.Current(tok) {
		return s
	}
	s = s.finish(KindStatus)
	if s.Status != nil {
		s.StatusStale = true
	}
	return s.setError(KindStatus, LevelError, api.UserMessage(err, MsgStatusFailed))
}

// BeginSearch starts an area search. ok is false, and s is returned
// unchanged, when the trimmed query is shorter than MinQueryLen. Any area
// request still in flight is superseded.
func (s ViewState) BeginSearch(query string) (next ViewState, tok Token, ok bool) {
	if !CanSearch(query) {
		return s, Token{}, false
	}
	s = s.supersede(KindArea)
	s.PendingID = ""
	s = s.DismissError()
	s.Query = strings.TrimSpace(query)
	s.Results = nil
	s, tok = s.begin(KindSearch)
	return s, tok, true
}

// SearchSucceeded applies a search response. Zero areas produce an
// informational notice rather than an error.
func (s ViewState) SearchSucceeded(tok Token, areas []api.AreaSummary) ViewState {
	if !s.Current(tok) {
		return s
	}
	s = s.finish(KindSearch)
	if len(areas) == 0 {
		s.Results = nil
		return s.setError(KindSearch, LevelInfo, fmt.Sprintf("No areas found matching %q", s.Query))
	}
	s.Results = areas
	s.SelectedID = ""
	s.Area = nil
	return s.clearErrorFrom(KindSearch)
}

// SearchFailed applies a failed search.
func (s ViewState) SearchFailed(tok Token, err error) ViewState {
	if !s.Current(tok) {
		return s
	}
	s = s.finish(KindSearch)
	s.Results = nil
	return s.setError(KindSearch, LevelError, api.UserMessage(err, MsgSearchFailed))
}

// BeginSelect starts loading the schedule for areaID.
func (s ViewState) BeginSelect(areaID string) (ViewState, Token) {
	s = s.DismissError()
	s.PendingID = areaID
	return s.begin(KindArea)
}

// AreaLoaded applies a successful area response. The result list is
// cleared: results and area detail are never shown together.
func (s ViewState) AreaLoaded(tok Token, detail *api.AreaDetail) ViewState {
	if !s.Current(tok) {
		return s
	}
	s = s.finish(KindArea)
	s.Area = detail
	s.SelectedID = s.PendingID
	s.PendingID = ""
	s.Results = nil
	return s.clearErrorFrom(KindArea)
}

// AreaFailed applies a failed area response. Any previous detail is
// dropped so it cannot be mistaken for the requested area.
func (s ViewState) AreaFailed(tok Token, err error) ViewState {
	if !s.Current(tok) {
		return s
	}
	s = s.finish(KindArea)
	s.Area = nil
	s.SelectedID = ""
	s.PendingID = ""
	return s.setError(KindArea, LevelError, api.UserMessage(err, MsgAreaFailed))
}

// ClearSearch resets the search side of the dashboard. Outstanding search
// and area requests are superseded.
func (s ViewState) ClearSearch() ViewState {
	s = s.supersede(KindSearch).supersede(KindArea)
	s.Query = ""
	s.Results = nil
	s.SelectedID = ""
	s.PendingID = ""
	s.Area = nil
	return s
}

// TogglePreference flips dark mode.
func (s ViewState) TogglePreference() ViewState {
	s.DarkMode = !s.DarkMode
	return s
}

// DismissError clears any error or notice.
func (s ViewState) DismissError() ViewState {
	s.Error = ""
	s.ErrorLevel = LevelNone
	s.ErrorSource = KindStatus
	return s
}
