package scraper

import (
	"fmt"
	"net/url"

	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/geo"
)

// APIParser decodes one page of the competition_index API
type APIParser struct {
	origin string
}

// NewAPIParser creates a parser that builds detail URLs under origin
func NewAPIParser(origin string) *APIParser {
	return &APIParser{origin: origin}
}

// Parse decodes a JSON array of competitions
func (p *APIParser) Parse(payload []byte) ([]*event.Event, error) {
	entries, err := decodeEntries(payload)
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

func (p *APIParser) toEvent(e entry) (*event.Event, error) {
	name, err := e.nonEmpty("name")
	if err != nil {
		return nil, err
	}
	date, err := e.str("start_date")
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
	city, err := e.str("city")
	if err != nil {
		return nil, err
	}
	id, err := e.nonEmpty("id")
	if err != nil {
		return nil, err
	}

	detailURL, err := joinOrigin(p.origin, "/competitions/"+url.PathEscape(id))
	if err != nil {
		return nil, fmt.Errorf("entry %d: building detail url: %w", e.index, err)
	}

	loc := geo.Coordinate{Latitude: lat, Longitude: lon}
	return event.NewEvent(id, name, date, city, loc, detailURL), nil
}
