package api

import (
	"fmt"
	"strings"
	"time"
)

// NationalStatus is the payload of GET /api/status.
type NationalStatus struct {
	Status StageInfo `json:"status"`
}

// StageInfo carries the current national stage and when it last changed.
type StageInfo struct {
	EskomStage int    `json:"eskom_stage"`
	Timestamp  string `json:"timestamp"`
}

// Stage returns the current national stage.
func (s *NationalStatus) Stage() int {
	return s.Status.EskomStage
}

// UpdatedAt parses the status timestamp. The zero time and false are
// returned when the value is missing or unparsable.
func (s *NationalStatus) UpdatedAt() (time.Time, bool) {
	return ParseTimestamp(s.Status.Timestamp)
}

// AreaSummary is one entry of an area search result.
type AreaSummary struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

// Label is the display label used in result lists, e.g. "Cape Town (Western Cape)".
func (a AreaSummary) Label() string {
	if a.Region == "" {
		return a.Name
	}
	return fmt.Sprintf("%s (%s)", a.Name, a.Region)
}

// AreaInfo describes the area an AreaDetail belongs to.
type AreaInfo struct {
	Name   string `json:"name"`
	Region string `json:"region,omitempty"`
}

// AreaDetail is the payload of GET /api/area/{id}.
type AreaDetail struct {
	Info        AreaInfo `json:"info"`
	Events      []Event  `json:"events"`
	LastUpdated string   `json:"last_updated,omitempty"`
}

// Event is a single scheduled interruption. Stage is nil when the schedule
// does not attribute the event to a stage.
type Event struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Stage *int   `json:"stage"`
}

// Window returns the parsed start and end times. ok is false if either
// timestamp is unparsable or start is not strictly before end.
func (e Event) Window() (start, end time.Time, ok bool) {
	start, okStart := ParseTimestamp(e.Start)
	end, okEnd := ParseTimestamp(e.End)
	if !okStart || !okEnd || !start.Before(end) {
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// HealthStatus is the payload of GET /api/health.
type HealthStatus struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	APIConfigured bool   `json:"api_configured"`
}

// OK reports whether the backend considers itself healthy.
func (h *HealthStatus) OK() bool {
	return strings.EqualFold(h.Status, "ok")
}

// timestampLayouts lists the ISO-8601 shapes the backend is known to emit.
// Upstream stage timestamps carry a zone; the backend's own fallback values
// come from a naive local clock and carry none.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseTimestamp parses an ISO-8601 timestamp as produced by the backend.
// Zone-less values are interpreted as UTC.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
