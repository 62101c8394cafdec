package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/cube-sniper/internal/calendar"
	"github.com/pfrederiksen/cube-sniper/internal/geo"
	"github.com/pfrederiksen/cube-sniper/internal/nearby"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatICS   OutputFormat = "ics"
)

// Valid reports whether f is a known format
func (f OutputFormat) Valid() bool {
	switch f {
	case FormatText, FormatTable, FormatJSON, FormatICS:
		return true
	}
	return false
}

// OutputResult contains data to be output
type OutputResult struct {
	SearchedAt  time.Time       `json:"searched_at"`
	Region      string          `json:"region"`
	Origin      geo.Coordinate  `json:"origin"`
	RadiusMiles float64         `json:"radius_miles"`
	Count       int             `json:"count"`
	Results     []nearby.Result `json:"results"`
}

// OutputOptions tunes human-readable output
type OutputOptions struct {
	Verbose bool
	Width   int // Table width in columns
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, opts OutputOptions) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, opts.Verbose)
	case FormatTable:
		return writeTable(w, result, opts.Width)
	case FormatICS:
		_, err := io.WriteString(w, calendar.GenerateICS(result.Results, result.SearchedAt))
		return err
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if result.Count == 0 {
		_, err := fmt.Fprintf(w, "No competitions found within %.2f miles.\n", result.RadiusMiles)
		return err
	}

	for _, r := range result.Results {
		evt := r.Event
		fmt.Fprintf(w, "Name: %s\n", evt.Name)
		fmt.Fprintf(w, "Date: %s\n", evt.DateLabel)
		fmt.Fprintf(w, "Location: %s\n", evt.Location)
		fmt.Fprintf(w, "City: %s\n", evt.City)
		fmt.Fprintf(w, "URL: %s\n", evt.DetailURL)
		if verbose {
			fmt.Fprintf(w, "ID: %s\n", evt.ID)
			if evt.PlusCode != "" {
				fmt.Fprintf(w, "Plus Code: %s\n", evt.PlusCode)
			}
		}
		fmt.Fprintf(w, "Distance: %.2f miles\n\n", r.DistanceMiles)
	}

	_, err := fmt.Fprintf(w, "Total: %d competitions within %.2f miles of %s\n",
		result.Count, result.RadiusMiles, result.Origin)
	return err
}
