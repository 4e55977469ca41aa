// Package app provides the bubbletea model for the lytelode dashboard. It
// owns a state.ViewState, turns key and mouse input into state transitions,
// runs API requests as commands and renders the result with pkg/widgets.
//
// All state changes happen inside Update. Requests run on command
// goroutines and report back with one of the events below, each carrying
// the token of the request that produced it.
package app

import (
	"gitlab.com/tinyland/lab/lytelode/pkg/api"
	"gitlab.com/tinyland/lab/lytelode/pkg/state"
)

// StatusEvent delivers the outcome of a national status request.
type StatusEvent struct {
	Token  state.Token
	Status *api.NationalStatus
	Err    error
}

// SearchEvent delivers the outcome of an area search.
type SearchEvent struct {
	Token state.Token
	Query string
	Areas []api.AreaSummary
	Err   error
}

// AreaEvent delivers the outcome of an area detail request.
type AreaEvent struct {
	Token  state.Token
	AreaID string
	Detail *api.AreaDetail
	Err    error
}

// PreferenceSavedEvent reports that the dark mode preference was written,
// or why it could not be. Superseded is set when a later toggle made this
// save unnecessary.
type PreferenceSavedEvent struct {
	Seq        uint64
	DarkMode   bool
	Superseded bool
	Err        error
}
