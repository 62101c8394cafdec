package nearby

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/geo"
)

var origin = geo.Coordinate{Latitude: 37.7749, Longitude: -122.4194}

func testEvents() []*event.Event {
	coords := []geo.Coordinate{
		{Latitude: 34.0522, Longitude: -118.2437}, // Los Angeles, ~347 mi
		origin,                                  // exactly at the origin
		{Latitude: 37.8715, Longitude: -122.2730}, // Berkeley, ~10 mi
		{Latitude: 47.6062, Longitude: -122.3321}, // Seattle, ~680 mi
		{Latitude: 38.5816, Longitude: -121.4944}, // Sacramento, ~75 mi
	}

	events := make([]*event.Event, len(coords))
	for i, c := range coords {
		events[i] = event.NewEvent(fmt.Sprintf("E%d", i), fmt.Sprintf("Event %d", i), "", "", c, "")
	}
	return events
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Event.Name
	}
	return out
}

func TestWithinRadius(t *testing.T) {
	events := testEvents()

	results := WithinRadius(events, origin, 150)
	assert.Equal(t, []string{"Event 1", "Event 2", "Event 4"}, names(results), "input order preserved")

	for _, r := range results {
		assert.InDelta(t, geo.Distance(origin, r.Event.Location), r.DistanceMiles, 1e-12)
		assert.LessOrEqual(t, r.DistanceMiles, 150.0)
	}
}

func TestWithinRadius_ReferencesInput(t *testing.T) {
	events := testEvents()

	results := WithinRadius(events, origin, 1000)
	require.Len(t, results, len(events))
	for i, r := range results {
		assert.Same(t, events[i], r.Event)
	}
}

func TestWithinRadius_BoundaryIsInclusive(t *testing.T) {
	events := testEvents()
	d := geo.Distance(origin, events[0].Location)

	assert.Len(t, WithinRadius(events[:1], origin, d), 1)
	assert.Empty(t, WithinRadius(events[:1], origin, d-1e-9))
}

func TestWithinRadius_ZeroRadius(t *testing.T) {
	results := WithinRadius(testEvents(), origin, 0)
	require.Len(t, results, 1)
	assert.Equal(t, "Event 1", results[0].Event.Name)
	assert.Zero(t, results[0].DistanceMiles)
}

func TestWithinRadius_NegativeRadius(t *testing.T) {
	assert.Empty(t, WithinRadius(testEvents(), origin, -1))
}

func TestWithinRadius_Empty(t *testing.T) {
	results := WithinRadius(nil, origin, 100)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestWithinRadius_Monotonic(t *testing.T) {
	events := testEvents()
	radii := []float64{0, 5, 10, 50, 100, 347, 348, 700, 5000}

	var prev []string
	for _, radius := range radii {
		got := names(WithinRadius(events, origin, radius))
		assert.Subset(t, got, prev, "radius %v dropped a record", radius)
		prev = got
	}
	assert.Len(t, prev, len(events))
}

func TestWithinRadius_DoesNotMutateInput(t *testing.T) {
	events := testEvents()
	before := make([]event.Event, len(events))
	for i, e := range events {
		before[i] = *e
	}

	WithinRadius(events, origin, 200)

	for i, e := range events {
		assert.Equal(t, before[i], *e)
	}
}
