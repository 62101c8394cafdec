package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/geo"
)

const (
	// LegacyContainerID is the id of the element wrapping the map script
	LegacyContainerID = "competitions-map"

	// LegacyMarker precedes the competitions array inside the script
	LegacyMarker = "competitions = "
)

// LegacyParser extracts competitions from the legacy competitions map page
type LegacyParser struct {
	origin string
}

// NewLegacyParser creates a parser that resolves relative URLs against origin
func NewLegacyParser(origin string) *LegacyParser {
	return &LegacyParser{origin: origin}
}

// Parse extracts the embedded competitions array from page markup
func (p *LegacyParser) Parse(payload []byte) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	container := doc.Find("#" + LegacyContainerID)
	if container.Length() == 0 {
		return nil, fmt.Errorf("%w: #%s", ErrElementNotFound, LegacyContainerID)
	}

	script := container.Find("script").First()
	if script.Length() == 0 {
		return nil, ErrEmptyScript
	}

	text := script.Text()
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyScript
	}

	idx := strings.Index(text, LegacyMarker)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMarkerNotFound, LegacyMarker)
	}

	// Decode exactly one JSON value after the marker; the trailing ";" and
	// anything after it are left unread. Commas or semicolons inside string
	// values never cut the payload short.
	var array json.RawMessage
	dec := json.NewDecoder(strings.NewReader(text[idx+len(LegacyMarker):]))
	if err := dec.Decode(&array); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	entries, err := decodeEntries(array)
	if err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(entries))
	for _, e := range entries {
		evt, err := p.toEvent(e)
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return events, nil
}

func (p *LegacyParser) toEvent(e entry) (*event.Event, error) {
	name, err := e.nonEmpty("name")
	if err != nil {
		return nil, err
	}
	date, err := e.str("marker_date")
	if err != nil {
		return nil, err
	}
	lat, err := e.number("latitude_degrees")
	if err != nil {
		return nil, err
	}
	lon, err := e.number("longitude_degrees")
	if err != nil {
		return nil, err
	}
	city, err := e.str("cityName")
	if err != nil {
		return nil, err
	}
	rel, err := e.str("url")
	if err != nil {
		return nil, err
	}

	detailURL, err := joinOrigin(p.origin, rel)
	if err != nil {
		return nil, fmt.Errorf("entry %d: resolving url %q: %w", e.index, rel, err)
	}

	loc := geo.Coordinate{Latitude: lat, Longitude: lon}
	return event.NewEvent(idFromPath(rel), name, date, city, loc, detailURL), nil
}
