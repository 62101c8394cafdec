// Package filter narrows fetched competitions by name, city and date.
//
// Criteria combine with AND; within a list (several names or cities) any
// entry may match. Competitions whose date label cannot be parsed are never
// excluded by date criteria.
//
//	f := filter.NewFilter()
//	f.Cities = []string{"San Jose"}
//	f.WeekendsOnly = true
//	kept := f.Apply(events)
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/cube-sniper/internal/event"
)

// Filter represents competition filtering criteria
type Filter struct {
	// Date range filtering, inclusive
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`

	// Competition name filtering (case-insensitive substring match)
	Names []string `json:"names,omitempty"`

	// City filtering (case-insensitive substring match)
	Cities []string `json:"cities,omitempty"`

	// Only competitions starting on a Saturday or Sunday
	WeekendsOnly bool `json:"weekends_only,omitempty"`

	// Anchor places date labels without a year; zero means now
	Anchor time.Time `json:"-"`
}

// NewFilter creates a new empty filter that matches every competition
func NewFilter() *Filter {
	return &Filter{
		Names:  []string{},
		Cities: []string{},
	}
}

// IsEmpty checks if the filter has any active criteria
func (f *Filter) IsEmpty() bool {
	return f.DateFrom == nil &&
		f.DateTo == nil &&
		len(f.Names) == 0 &&
		len(f.Cities) == 0 &&
		!f.WeekendsOnly
}

// Matches checks if a competition passes all active criteria
func (f *Filter) Matches(evt *event.Event) bool {
	if f.IsEmpty() {
		return true
	}

	anchor := f.Anchor
	if anchor.IsZero() {
		anchor = time.Now()
	}

	start := event.ParseDateAt(evt.DateLabel, anchor)
	if !start.IsZero() {
		if f.DateFrom != nil && start.Before(*f.DateFrom) {
			return false
		}
		if f.DateTo != nil && start.After(*f.DateTo) {
			return false
		}
		if f.WeekendsOnly {
			weekday := start.Weekday()
			if weekday != time.Saturday && weekday != time.Sunday {
				return false
			}
		}
	}

	if !containsAny(evt.Name, f.Names) {
		return false
	}
	if !containsAny(evt.City, f.Cities) {
		return false
	}

	return true
}

// containsAny reports whether s contains one of needles, ignoring case.
// An empty needle list matches everything.
func containsAny(s string, needles []string) bool {
	if len(needles) == 0 {
		return true
	}
	lower := strings.ToLower(s)
	for _, n := range needles {
		if strings.Contains(lower, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

// Apply returns the competitions that match. An empty filter returns events
// unchanged; otherwise a new slice is returned and events is not modified.
func (f *Filter) Apply(events []*event.Event) []*event.Event {
	if f.IsEmpty() {
		return events
	}

	filtered := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		if f.Matches(evt) {
			filtered = append(filtered, evt)
		}
	}

	return filtered
}

// String returns a human-readable description of the active criteria.
// Format: "From: Mar 1, 2026 | To: Mar 15, 2026 | Cities: San Jose | Weekends only"
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}

	var parts []string

	if f.DateFrom != nil {
		parts = append(parts, fmt.Sprintf("From: %s", f.DateFrom.Format("Jan 2, 2006")))
	}
	if f.DateTo != nil {
		parts = append(parts, fmt.Sprintf("To: %s", f.DateTo.Format("Jan 2, 2006")))
	}
	if len(f.Names) > 0 {
		parts = append(parts, fmt.Sprintf("Names: %s", strings.Join(f.Names, ", ")))
	}
	if len(f.Cities) > 0 {
		parts = append(parts, fmt.Sprintf("Cities: %s", strings.Join(f.Cities, ", ")))
	}
	if f.WeekendsOnly {
		parts = append(parts, "Weekends only")
	}

	return strings.Join(parts, " | ")
}
