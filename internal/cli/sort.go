package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/nearby"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByDistanceDesc SortOrder = "distance-desc"
	SortByDistance     SortOrder = "distance"
	SortByName         SortOrder = "name"
	SortByDate         SortOrder = "date"
)

// Valid reports whether o is a known sort order
func (o SortOrder) Valid() bool {
	switch o {
	case SortByDistanceDesc, SortByDistance, SortByName, SortByDate:
		return true
	}
	return false
}

// sortResults sorts results in place. Ties keep their upstream order.
func sortResults(results []nearby.Result, order SortOrder) {
	switch order {
	case SortByDistanceDesc:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DistanceMiles > results[j].DistanceMiles
		})
	case SortByDistance:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].DistanceMiles < results[j].DistanceMiles
		})
	case SortByName:
		sort.SliceStable(results, func(i, j int) bool {
			return strings.ToLower(results[i].Event.Name) < strings.ToLower(results[j].Event.Name)
		})
	case SortByDate:
		sort.SliceStable(results, func(i, j int) bool {
			return compareByDate(results[i].Event, results[j].Event)
		})
	}
}

// compareByDate compares two events by their date
// Returns true if event i should come before event j
func compareByDate(i, j *event.Event) bool {
	dateI := event.ParseDate(i.DateLabel)
	dateJ := event.ParseDate(j.DateLabel)

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		if !dateI.Equal(dateJ) {
			return dateI.Before(dateJ)
		}
		return strings.ToLower(i.Name) < strings.ToLower(j.Name)
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	if !dateJ.IsZero() {
		return false
	}

	// Neither has a valid date
	return strings.ToLower(i.Name) < strings.ToLower(j.Name)
}
