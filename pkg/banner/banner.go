// Package banner provides the non-interactive, single-frame rendering of the
// lytelode dashboard. It is what -status and -health print, and what runs
// instead of the TUI when stdout is not a terminal.
package banner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"gitlab.com/tinyland/lab/lytelode/pkg/api"
	"gitlab.com/tinyland/lab/lytelode/pkg/state"
	"gitlab.com/tinyland/lab/lytelode/pkg/widgets"
)

// DefaultWidth is the frame width used when the terminal size is unknown.
const DefaultWidth = 60

// Source is the subset of *api.Client a report needs.
type Source interface {
	Status(ctx context.Context) (*api.NationalStatus, error)
	Health(ctx context.Context) (*api.HealthStatus, error)
}

// Report holds the data for a single frame. Errors are kept per request so
// one failing endpoint does not hide the other.
type Report struct {
	BaseURL string

	Status    *api.NationalStatus
	StatusErr error

	// WithHealth is set when the health endpoint was queried.
	WithHealth bool
	Health     *api.HealthStatus
	HealthErr  error
}

// Collect fetches the national status and, when withHealth is set, the
// backend health concurrently.
func Collect(ctx context.Context, src Source, baseURL string, withHealth bool) Report {
	r := Report{BaseURL: baseURL, WithHealth: withHealth}

	// Goroutines record their own errors; the group never fails.
	var g errgroup.Group
	g.Go(func() error {
		r.Status, r.StatusErr = src.Status(ctx)
		return nil
	})
	if withHealth {
		g.Go(func() error {
			r.Health, r.HealthErr = src.Health(ctx)
			return nil
		})
	}
	_ = g.Wait()
	return r
}

// Failed reports whether any requested endpoint failed or reported itself
// unhealthy.
func (r Report) Failed() bool {
	if r.StatusErr != nil {
		return true
	}
	if r.WithHealth && (r.HealthErr != nil || r.Health == nil || !r.Health.OK()) {
		return true
	}
	return false
}

// Render draws the report as one frame of the given width. Times are shown
// in loc.
func Render(r Report, s widgets.Styles, loc *time.Location, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	parts := []string{s.Logo.Render(widgets.Logo) + "  " + s.Dim.Render(widgets.Tagline)}
	parts = append(parts, widgets.StatusCard(s, r.Status, false, loc, width))
	if r.StatusErr != nil {
		parts = append(parts, s.Error.Render(api.UserMessage(r.StatusErr, state.MsgStatusFailed)))
	}
	if r.WithHealth {
		parts = append(parts, bnHealthLines(r, s, loc)...)
	}
	return strings.Join(parts, "\n") + "\n"
}

// bnHealthLines describes the backend: where it is, whether it answered and
// whether it has upstream credentials.
func bnHealthLines(r Report, s widgets.Styles, loc *time.Location) []string {
	lines := []string{s.Heading.Render("Backend") + " " + s.Dim.Render(r.BaseURL)}
	switch {
	case r.HealthErr != nil:
		lines = append(lines, s.Error.Render("✖ unreachable: "+r.HealthErr.Error()))
	case r.Health == nil:
		lines = append(lines, s.Error.Render("✖ no health response"))
	default:
		mark, style := "✔", s.Info
		if !r.Health.OK() {
			mark, style = "✖", s.Error
		}
		line := style.Render(fmt.Sprintf("%s status %s", mark, r.Health.Status))
		if t, ok := api.ParseTimestamp(r.Health.Timestamp); ok {
			line += s.Dim.Render(" at " + widgets.FormatUpdated(t, loc))
		}
		lines = append(lines, line)

		configured := "upstream API key configured"
		if !r.Health.APIConfigured {
			configured = "upstream API key missing"
		}
		lines = append(lines, s.Dim.Render(configured))
	}
	return lines
}
