package event

import (
	"github.com/pfrederiksen/cube-sniper/internal/geo"
)

// Event represents a single upcoming WCA competition
type Event struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	DateLabel string         `json:"date_label"` // Opaque upstream text, e.g. "Mar 14 - 15, 2026"
	Location  geo.Coordinate `json:"location"`
	City      string         `json:"city"`
	DetailURL string         `json:"detail_url"`
	PlusCode  string         `json:"plus_code,omitempty"`
}

// NewEvent creates a new Event with the PlusCode derived from its location
func NewEvent(id, name, dateLabel, city string, loc geo.Coordinate, detailURL string) *Event {
	return &Event{
		ID:        id,
		Name:      name,
		DateLabel: dateLabel,
		Location:  loc,
		City:      city,
		DetailURL: detailURL,
		PlusCode:  geo.PlusCode(loc),
	}
}
