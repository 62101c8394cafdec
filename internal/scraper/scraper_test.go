package scraper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfrederiksen/cube-sniper/internal/logger"
)

func TestParseSource(t *testing.T) {
	tests := []struct {
		input   string
		want    Source
		wantErr bool
	}{
		{"api", SourceAPI, false},
		{" Legacy ", SourceLegacy, false},
		{"rss", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSource(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	s := New(NewHTTPFetcher(0, ""), Options{})

	assert.Equal(t, DefaultOrigin, s.origin)
	assert.Equal(t, SourceAPI, s.source)
	assert.NotNil(t, s.log)
	assert.IsType(t, &APIParser{}, s.Parser())
}

func TestScraper_LegacyURL(t *testing.T) {
	s := New(nil, Options{Source: SourceLegacy})
	assert.Equal(t,
		"https://www.worldcubeassociation.org/competitions?region=USA&search=&state=present&year=all+years&from_date=&to_date=&delegate=&display=map",
		s.LegacyURL("USA"))
	assert.IsType(t, &LegacyParser{}, s.Parser())
}

// apiServer serves pages of the competition_index API, each holding one competition
func apiServer(t *testing.T, pages int) (*httptest.Server, *int) {
	t.Helper()

	requests := 0
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Path != "/api/v0/competition_index" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		assert.Equal(t, "USA", q.Get("region"))
		assert.Equal(t, "false", q.Get("include_cancelled"))
		assert.Equal(t, APISort, q.Get("sort"))
		assert.Equal(t, "2026-10-19", q.Get("ongoing_and_future"))

		page, err := strconv.Atoi(q.Get("page"))
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		link := fmt.Sprintf(`<%s/api/v0/competition_index?page=1>; rel="first"`, server.URL)
		if page < pages {
			link += fmt.Sprintf(`, <%s/api/v0/competition_index?page=%d>; rel="next"`, server.URL, page+1)
		}
		w.Header().Set("Link", link)
		fmt.Fprintf(w, `[{"id":"Comp%d","name":"Competition %d","start_date":"2026-11-%02d","latitude_degrees":37.7,"longitude_degrees":-122.4,"city":"San Francisco, California"}]`,
			page, page, page)
	}))
	t.Cleanup(server.Close)

	return server, &requests
}

func TestScraper_FetchEvents_API(t *testing.T) {
	server, requests := apiServer(t, 3)

	var logs bytes.Buffer
	s := New(NewHTTPFetcher(0, ""), Options{
		Origin: server.URL,
		Source: SourceAPI,
		Logger: logger.New(logger.LevelDebug, &logs),
	})

	events, err := s.FetchEvents(context.Background(), "USA", "2026-10-19")
	require.NoError(t, err)

	require.Len(t, events, 3)
	assert.Equal(t, 3, *requests)
	for i, evt := range events {
		assert.Equal(t, fmt.Sprintf("Competition %d", i+1), evt.Name, "pages concatenated in fetch order")
		assert.Equal(t, fmt.Sprintf("%s/competitions/Comp%d", server.URL, i+1), evt.DetailURL)
	}
	assert.Contains(t, logs.String(), "Fetched competition page")
}

func TestScraper_FetchEvents_Legacy(t *testing.T) {
	data, err := os.ReadFile("testdata/competitions_map.html")
	require.NoError(t, err)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/competitions", r.URL.Path)
		assert.Equal(t, "map", r.URL.Query().Get("display"))
		assert.Equal(t, "present", r.URL.Query().Get("state"))
		_, _ = w.Write(data)
	}))
	defer server.Close()

	s := New(NewHTTPFetcher(0, ""), Options{Origin: server.URL, Source: SourceLegacy})

	events, err := s.FetchEvents(context.Background(), "USA", "2026-10-19")
	require.NoError(t, err)
	assert.Len(t, events, 131)
	assert.Equal(t, server.URL+"/competitions/BayAreaSpeedcubingSpring2026", events[0].DetailURL)
}

func TestScraper_FetchEvents_ParseErrorFailsRun(t *testing.T) {
	f := &stubFetcher{responses: []stubResponse{
		{body: `[{"id":"A","name":"A","start_date":"d","latitude_degrees":1,"longitude_degrees":2,"city":"c"}]`, link: nextLink(2)},
		{body: `[{"id":"B","name":"B","start_date":"d","longitude_degrees":2,"city":"c"}]`, link: lastLink},
	}}

	events, err := New(f, Options{}).FetchEvents(context.Background(), "USA", "2026-10-19")
	require.Error(t, err)
	assert.Nil(t, events)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "parsing page 2")
}

func TestScraper_FetchEvents_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := New(NewHTTPFetcher(0, ""), Options{Origin: server.URL, Source: SourceLegacy}).
		FetchEvents(context.Background(), "USA", "2026-10-19")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
}
