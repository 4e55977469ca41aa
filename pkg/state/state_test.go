package state

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
)

func stage(n int) *int { return &n }

var capeTown = api.AreaSummary{ID: "12345", Name: "Cape Town", Region: "Western Cape"}

func statusAt(stage int) *api.NationalStatus {
	return &api.NationalStatus{Status: api.StageInfo{EskomStage: stage, Timestamp: "2024-06-01T10:00:00Z"}}
}

var serverError = &api.Error{Op: "test", Kind: api.KindTransport, StatusCode: 500}

func TestNew(t *testing.T) {
	s := New(true)
	assert.True(t, s.DarkMode)
	assert.False(t, s.Loading())
	assert.False(t, s.HasError())
	assert.Nil(t, s.Status)
}

func TestCanSearch(t *testing.T) {
	assert.False(t, CanSearch(""))
	assert.False(t, CanSearch("  Ca  "))
	assert.False(t, CanSearch("\t\n"))
	assert.True(t, CanSearch("Cap"))
	assert.True(t, CanSearch("  Cap "))
	// Runes, not bytes.
	assert.False(t, CanSearch("ék"))
	assert.True(t, CanSearch("éké"))
}

func TestBeginSearch_shortQueryIsNoOp(t *testing.T) {
	s := New(false)
	s, tok := s.BeginStatus()
	s = s.StatusFetched(tok, statusAt(2))
	s = s.SearchFailed(Token{}, serverError) // ignored: zero token

	for _, q := range []string{"", "a", "ab", "  ab  ", "   "} {
		next, tok, ok := s.BeginSearch(q)
		assert.False(t, ok, q)
		assert.Equal(t, Token{}, tok, q)
		assert.Equal(t, s, next, q)
	}
}

func TestSearch_success(t *testing.T) {
	s := New(false)

	s, tok, ok := s.BeginSearch("  Cap ")
	require.True(t, ok)
	assert.True(t, s.Loading())
	assert.Equal(t, "Cap", s.Query)

	s = s.SearchSucceeded(tok, []api.AreaSummary{capeTown})

	assert.False(t, s.Loading())
	require.Len(t, s.Results, 1)
	assert.Equal(t, "Cape Town (Western Cape)", s.Results[0].Label())
	assert.False(t, s.HasError())
}

func TestSearch_emptyResultIsInformational(t *testing.T) {
	s := New(false)
	s, tok, _ := s.BeginSearch("Cap")

	s = s.SearchSucceeded(tok, []api.AreaSummary{})

	assert.False(t, s.Loading())
	assert.Empty(t, s.Results)
	assert.Equal(t, `No areas found matching "Cap"`, s.Error)
	assert.Equal(t, LevelInfo, s.ErrorLevel)
}

func TestSearch_failureClearsResults(t *testing.T) {
	s := New(false)
	s, tok, _ := s.BeginSearch("Cap")
	s = s.SearchSucceeded(tok, []api.AreaSummary{capeTown})

	s, tok, _ = s.BeginSearch("Cape")
	assert.Empty(t, s.Results, "begin clears prior results")
	s = s.SearchFailed(tok, serverError)

	assert.False(t, s.Loading())
	assert.Empty(t, s.Results)
	assert.Equal(t, MsgSearchFailed, s.Error)
	assert.Equal(t, LevelError, s.ErrorLevel)
}

func TestSearch_applicationErrorMessage(t *testing.T) {
	s := New(false)
	s, tok, _ := s.BeginSearch("Cap")

	s = s.SearchFailed(tok, &api.Error{Kind: api.KindApplication, StatusCode: 200, Message: "API key not configured"})

	assert.Equal(t, "API key not configured", s.Error)
}

func TestSearch_beginClearsPriorError(t *testing.T) {
	s := New(false)
	s, tok := s.BeginStatus()
	s = s.StatusFailed(tok, serverError)
	require.True(t, s.HasError())

	s, _, _ = s.BeginSearch("Cap")

	assert.False(t, s.HasError())
}

func TestSearch_staleResponseDiscarded(t *testing.T) {
	s := New(false)
	s, first, _ := s.BeginSearch("Cape")
	s, second, _ := s.BeginSearch("Durban")

	// The older response arrives after the newer request was issued.
	s = s.SearchSucceeded(first, []api.AreaSummary{capeTown})
	assert.Empty(t, s.Results)
	assert.True(t, s.Loading(), "latest search still outstanding")

	durban := api.AreaSummary{ID: "99", Name: "Durban", Region: "KZN"}
	s = s.SearchSucceeded(second, []api.AreaSummary{durban})
	assert.Equal(t, []api.AreaSummary{durban}, s.Results)
	assert.False(t, s.Loading())

	// And a late failure for the first request changes nothing.
	after := s.SearchFailed(first, serverError)
	assert.Equal(t, s, after)
}

func TestStatus_success(t *testing.T) {
	s := New(false)
	s, tok := s.BeginStatus()
	assert.True(t, s.Loading())
	assert.True(t, s.InFlight(KindStatus))

	s = s.StatusFetched(tok, statusAt(4))

	assert.False(t, s.Loading())
	assert.Equal(t, 4, s.Status.Stage())
	assert.False(t, s.StatusStale)
}

func TestStatus_failureKeepsStaleData(t *testing.T) {
	s := New(false)
	s, tok := s.BeginStatus()
	s = s.StatusFetched(tok, statusAt(4))

	s, tok = s.BeginStatus()
	s = s.StatusFailed(tok, serverError)

	assert.False(t, s.Loading())
	require.NotNil(t, s.Status)
	assert.Equal(t, 4, s.Status.Stage())
	assert.True(t, s.StatusStale)
	assert.Equal(t, MsgStatusFailed, s.Error)
	assert.Equal(t, KindStatus, s.ErrorSource)

	// A later success clears both the stale flag and its own error.
	s, tok = s.BeginStatus()
	s = s.StatusFetched(tok, statusAt(6))
	assert.False(t, s.StatusStale)
	assert.False(t, s.HasError())
}

func TestStatus_failureWithoutPriorDataNotStale(t *testing.T) {
	s := New(false)
	s, tok := s.BeginStatus()

	s = s.StatusFailed(tok, errors.New("dial tcp: connection refused"))

	assert.Nil(t, s.Status)
	assert.False(t, s.StatusStale)
	assert.Equal(t, MsgStatusFailed, s.Error)
}

func TestStatus_successDoesNotClearOtherKindsError(t *testing.T) {
	s := New(false)
	s, statusTok := s.BeginStatus()
	s, searchTok, _ := s.BeginSearch("Cap")
	s = s.SearchFailed(searchTok, serverError)

	s = s.StatusFetched(statusTok, statusAt(1))

	assert.Equal(t, MsgSearchFailed, s.Error)
}

func TestSelectArea_successClearsResults(t *testing.T) {
	s := New(false)
	s, tok, _ := s.BeginSearch("Cap")
	s = s.SearchSucceeded(tok, []api.AreaSummary{capeTown})

	s, areaTok := s.BeginSelect("12345")
	assert.True(t, s.Loading())
	s = s.AreaLoaded(areaTok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})

	assert.False(t, s.Loading())
	assert.Empty(t, s.Results)
	assert.Equal(t, "12345", s.SelectedID)
	require.NotNil(t, s.Area)
	assert.Equal(t, "Cape Town", s.Area.Info.Name)
}

func TestSelectArea_failureClearsDetail(t *testing.T) {
	s := New(false)
	s, tok := s.BeginSelect("12345")
	s = s.AreaLoaded(tok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})

	s, tok = s.BeginSelect("67890")
	s = s.AreaFailed(tok, serverError)

	assert.False(t, s.Loading())
	assert.Nil(t, s.Area)
	assert.Empty(t, s.SelectedID)
	assert.Equal(t, MsgAreaFailed, s.Error)
}

func TestSelectArea_failureKeepsResults(t *testing.T) {
	s := New(false)
	s, tok, _ := s.BeginSearch("Cap")
	s = s.SearchSucceeded(tok, []api.AreaSummary{capeTown})

	s, areaTok := s.BeginSelect("12345")
	s = s.AreaFailed(areaTok, serverError)

	assert.Len(t, s.Results, 1)
}

func TestSelectArea_lastIssuedWins(t *testing.T) {
	s := New(false)
	s, first := s.BeginSelect("1")
	s, second := s.BeginSelect("2")

	s = s.AreaLoaded(second, &api.AreaDetail{Info: api.AreaInfo{Name: "Two"}})
	s = s.AreaLoaded(first, &api.AreaDetail{Info: api.AreaInfo{Name: "One"}})

	assert.Equal(t, "2", s.SelectedID)
	assert.Equal(t, "Two", s.Area.Info.Name)
}

func TestSearchResultsClearPreviousArea(t *testing.T) {
	s := New(false)
	s, areaTok := s.BeginSelect("12345")
	s = s.AreaLoaded(areaTok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})

	s, tok, _ := s.BeginSearch("Durban")
	s = s.SearchSucceeded(tok, []api.AreaSummary{{ID: "9", Name: "Durban"}})

	assert.Nil(t, s.Area)
	assert.Empty(t, s.SelectedID)
	assert.Len(t, s.Results, 1)
}

func TestSearch_supersedesInFlightArea(t *testing.T) {
	s := New(false)
	s, areaTok := s.BeginSelect("1")

	s, tok, ok := s.BeginSearch("Durban")
	require.True(t, ok)
	assert.False(t, s.InFlight(KindArea))
	assert.Empty(t, s.PendingID)

	durban := []api.AreaSummary{{ID: "9", Name: "Durban", Region: "KwaZulu-Natal"}}
	s = s.SearchSucceeded(tok, durban)
	s = s.AreaLoaded(areaTok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})

	assert.Equal(t, "Durban", s.Query)
	assert.Equal(t, durban, s.Results)
	assert.Nil(t, s.Area)
	assert.Empty(t, s.SelectedID)
	assert.False(t, s.Loading())
}

func TestSearch_keepsLoadedArea(t *testing.T) {
	s := New(false)
	s, areaTok := s.BeginSelect("1")
	s = s.AreaLoaded(areaTok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})

	s, _, _ = s.BeginSearch("Durban")

	require.NotNil(t, s.Area)
	assert.Equal(t, "1", s.SelectedID)
}

func TestClearSearch_fromAnyState(t *testing.T) {
	states := map[string]ViewState{}

	s := New(false)
	states["initial"] = s

	withResults, tok, _ := s.BeginSearch("Cap")
	withResults = withResults.SearchSucceeded(tok, []api.AreaSummary{capeTown})
	states["results"] = withResults

	withArea, areaTok := withResults.BeginSelect("12345")
	withArea = withArea.AreaLoaded(areaTok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})
	states["area"] = withArea

	pending, _, _ := withArea.BeginSearch("Durban")
	pending, _ = pending.BeginSelect("1")
	states["in flight"] = pending

	for name, st := range states {
		c := st.ClearSearch()
		assert.Empty(t, c.Query, name)
		assert.Empty(t, c.Results, name)
		assert.Empty(t, c.SelectedID, name)
		assert.Nil(t, c.Area, name)
		assert.False(t, c.InFlight(KindSearch), name)
		assert.False(t, c.InFlight(KindArea), name)
	}
}

func TestClearSearch_supersedesInFlightRequests(t *testing.T) {
	s := New(false)
	s, searchTok, _ := s.BeginSearch("Cap")
	s, areaTok := s.BeginSelect("12345")

	s = s.ClearSearch()
	s = s.SearchSucceeded(searchTok, []api.AreaSummary{capeTown})
	s = s.AreaLoaded(areaTok, &api.AreaDetail{Info: api.AreaInfo{Name: "Cape Town"}})

	assert.Empty(t, s.Results)
	assert.Nil(t, s.Area)
	assert.False(t, s.Loading())
}

func TestClearSearch_keepsStatusRequest(t *testing.T) {
	s := New(false)
	s, tok := s.BeginStatus()

	s = s.ClearSearch()
	assert.True(t, s.Loading())

	s = s.StatusFetched(tok, statusAt(3))
	assert.Equal(t, 3, s.Status.Stage())
}

func TestLoadingClearedOnEveryOutcome(t *testing.T) {
	outcomes := map[string]func(ViewState) ViewState{
		"status ok": func(s ViewState) ViewState {
			s, tok := s.BeginStatus()
			return s.StatusFetched(tok, statusAt(1))
		},
		"status failed": func(s ViewState) ViewState {
			s, tok := s.BeginStatus()
			return s.StatusFailed(tok, serverError)
		},
		"search ok": func(s ViewState) ViewState {
			s, tok, _ := s.BeginSearch("Cap")
			return s.SearchSucceeded(tok, []api.AreaSummary{capeTown})
		},
		"search empty": func(s ViewState) ViewState {
			s, tok, _ := s.BeginSearch("Cap")
			return s.SearchSucceeded(tok, nil)
		},
		"search failed": func(s ViewState) ViewState {
			s, tok, _ := s.BeginSearch("Cap")
			return s.SearchFailed(tok, serverError)
		},
		"area ok": func(s ViewState) ViewState {
			s, tok := s.BeginSelect("12345")
			return s.AreaLoaded(tok, &api.AreaDetail{})
		},
		"area failed": func(s ViewState) ViewState {
			s, tok := s.BeginSelect("12345")
			return s.AreaFailed(tok, serverError)
		},
	}
	for name, run := range outcomes {
		s := run(New(false))
		assert.False(t, s.Loading(), name)
	}
}

func TestTogglePreferenceTwice(t *testing.T) {
	for _, initial := range []bool{false, true} {
		s := New(initial)
		s = s.TogglePreference()
		assert.Equal(t, !initial, s.DarkMode)
		s = s.TogglePreference()
		assert.Equal(t, initial, s.DarkMode)
	}
}

func TestDismissError(t *testing.T) {
	s := New(false)
	s, tok, _ := s.BeginSearch("Cap")
	s = s.SearchSucceeded(tok, nil)
	require.True(t, s.HasError())

	s = s.DismissError()

	assert.False(t, s.HasError())
	assert.Equal(t, LevelNone, s.ErrorLevel)
}

func TestVisibleEventsTruncates(t *testing.T) {
	events := make([]api.Event, 8)
	for i := range events {
		events[i] = api.Event{Start: "2024-06-01T10:00:00Z", End: "2024-06-01T12:00:00Z", Stage: stage(i)}
	}
	s := New(false)
	s, tok := s.BeginSelect("12345")
	s = s.AreaLoaded(tok, &api.AreaDetail{Events: events})

	visible := s.VisibleEvents()

	require.Len(t, visible, MaxEvents)
	assert.Equal(t, 0, *visible[0].Stage)
	assert.Len(t, s.Area.Events, 8, "truncation does not delete")
	assert.Nil(t, New(false).VisibleEvents())
}

func TestViewStateSerializes(t *testing.T) {
	s := New(true)
	s, tok, _ := s.BeginSearch("Cap")
	s = s.SearchSucceeded(tok, []api.AreaSummary{capeTown})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var back ViewState
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "status", KindStatus.String())
	assert.Equal(t, "search", KindSearch.String())
	assert.Equal(t, "area", KindArea.String())
}
