// Package nearby filters competitions by great-circle distance from a
// search point.
package nearby

import (
	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/geo"
)

// Result pairs an event with its distance from the search origin.
// Event points into the slice passed to WithinRadius.
type Result struct {
	Event         *event.Event `json:"event"`
	DistanceMiles float64      `json:"distance_miles"`
}

// WithinRadius returns every event whose distance from origin is at most
// radiusMiles, in input order. A negative radius matches nothing.
func WithinRadius(events []*event.Event, origin geo.Coordinate, radiusMiles float64) []Result {
	results := make([]Result, 0)
	for _, evt := range events {
		d := geo.Distance(origin, evt.Location)
		if d <= radiusMiles {
			results = append(results, Result{Event: evt, DistanceMiles: d})
		}
	}
	return results
}
