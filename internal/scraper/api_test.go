package scraper

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIParser_Fixture(t *testing.T) {
	data, err := os.ReadFile("testdata/competition_index.json")
	require.NoError(t, err)

	events, err := NewAPIParser(testOrigin).Parse(data)
	require.NoError(t, err)
	require.Len(t, events, 25)

	first := events[0]
	assert.Equal(t, "Berkeley Summer 2026", first.Name)
	assert.Equal(t, "BerkeleySummer2026", first.ID)
	assert.Equal(t, "2026-06-06", first.DateLabel)
	assert.Equal(t, "Berkeley, California", first.City)
	assert.Equal(t, 37.8715, first.Location.Latitude)
	assert.Equal(t, -122.2730, first.Location.Longitude)
	assert.Equal(t, "https://www.worldcubeassociation.org/competitions/BerkeleySummer2026", first.DetailURL)
}

func TestAPIParser_OriginWithTrailingSlash(t *testing.T) {
	payload := `[{"id":"X2026","name":"X","start_date":"2026-01-02","latitude_degrees":1,"longitude_degrees":2,"city":"Y"}]`

	events, err := NewAPIParser("http://127.0.0.1:8080/").Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "http://127.0.0.1:8080/competitions/X2026", events[0].DetailURL)
}

func TestAPIParser_OriginWithPath(t *testing.T) {
	payload := `[{"id":"X2026","name":"X","start_date":"2026-01-02","latitude_degrees":1,"longitude_degrees":2,"city":"Y"}]`
	origin := "https://mirror.example/wca"

	events, err := NewAPIParser(origin).Parse([]byte(payload))
	require.NoError(t, err)
	require.Len(t, events, 1)

	pageURL := NewPaginator(&stubFetcher{}, origin, nil, nil).PageURL("USA", "2026-10-19", 1)
	assert.True(t, strings.HasPrefix(pageURL, origin+"/api/v0/"), pageURL)
	assert.Equal(t, origin+"/competitions/X2026", events[0].DetailURL)
}

func TestAPIParser_Errors(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantErr   error
		wantField string
		wantIndex int
	}{
		{
			name:    "not json",
			payload: `<html>`,
			wantErr: ErrMalformedJSON,
		},
		{
			name:    "object instead of array",
			payload: `{"id":"X"}`,
			wantErr: ErrMalformedJSON,
		},
		{
			name:    "null",
			payload: `null`,
			wantErr: ErrMalformedJSON,
		},
		{
			name:      "missing latitude",
			payload:   `[{"id":"X","name":"X","start_date":"2026-01-02","longitude_degrees":2,"city":"Y"}]`,
			wantErr:   ErrMissingField,
			wantField: "latitude_degrees",
		},
		{
			name:      "empty name",
			payload:   `[{"id":"X","name":"  ","start_date":"2026-01-02","latitude_degrees":1,"longitude_degrees":2,"city":"Y"}]`,
			wantErr:   ErrMissingField,
			wantField: "name",
		},
		{
			name:      "numeric id",
			payload:   `[{"id":"A","name":"A","start_date":"d","latitude_degrees":1,"longitude_degrees":2,"city":"Y"},{"id":7,"name":"X","start_date":"d","latitude_degrees":1,"longitude_degrees":2,"city":"Y"}]`,
			wantErr:   ErrMissingField,
			wantField: "id",
			wantIndex: 1,
		},
		{
			name:      "missing city",
			payload:   `[{"id":"X","name":"X","start_date":"d","latitude_degrees":1,"longitude_degrees":2}]`,
			wantErr:   ErrMissingField,
			wantField: "city",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := NewAPIParser(testOrigin).Parse([]byte(tt.payload))
			require.Error(t, err)
			assert.Nil(t, events)
			assert.True(t, errors.Is(err, tt.wantErr), "error %v is not %v", err, tt.wantErr)

			if tt.wantField != "" {
				var fieldErr *FieldError
				require.True(t, errors.As(err, &fieldErr))
				assert.Equal(t, tt.wantField, fieldErr.Field)
				assert.Equal(t, tt.wantIndex, fieldErr.Index)
			}
		})
	}
}

func TestFieldError_Message(t *testing.T) {
	err := &FieldError{Index: 3, Field: "latitude_degrees"}
	assert.Equal(t, `entry 3: missing or invalid field: "latitude_degrees"`, err.Error())
	assert.ErrorIs(t, err, ErrMissingField)
}
