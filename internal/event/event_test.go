package event

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cube-sniper/internal/geo"
)

func TestNewEvent(t *testing.T) {
	loc := geo.Coordinate{Latitude: 37.7749, Longitude: -122.4194}
	evt := NewEvent("BayAreaOpen2026", "Bay Area Open 2026", "2026-03-14", "San Francisco, California",
		loc, "https://www.worldcubeassociation.org/competitions/BayAreaOpen2026")

	assert.Equal(t, "BayAreaOpen2026", evt.ID)
	assert.Equal(t, "Bay Area Open 2026", evt.Name)
	assert.Equal(t, "2026-03-14", evt.DateLabel)
	assert.Equal(t, loc, evt.Location)
	assert.Equal(t, "San Francisco, California", evt.City)
	assert.Equal(t, "https://www.worldcubeassociation.org/competitions/BayAreaOpen2026", evt.DetailURL)
	assert.Equal(t, "849VQHFJ+X6", evt.PlusCode)
}

func TestEvent_JSONShape(t *testing.T) {
	evt := NewEvent("X2026", "X", "Jan 2, 2026", "Reno, Nevada",
		geo.Coordinate{Latitude: 39.5, Longitude: -119.8}, "https://example.com/competitions/X2026")

	data, err := json.Marshal(evt)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))

	for _, key := range []string{"id", "name", "date_label", "location", "city", "detail_url", "plus_code"} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, map[string]any{"latitude": 39.5, "longitude": -119.8}, got["location"])
}
