// Package calendar exports nearby competitions as an iCalendar feed.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/cube-sniper/internal/event"
	"github.com/pfrederiksen/cube-sniper/internal/nearby"
)

// UIDDomain qualifies event UIDs
const UIDDomain = "worldcubeassociation.org"

// GenerateICS generates an iCalendar (.ics) document with one all-day event
// per result, covering the whole labelled range ("Mar 14 - 15, 2026" spans
// two days). Labels without a year are placed in now's year. Results whose
// date label cannot be parsed are skipped.
func GenerateICS(results []nearby.Result, now time.Time) string {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//cube-sniper//cube-sniper//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")

	for _, r := range results {
		writeEvent(&ics, r, now)
	}

	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String()
}

func writeEvent(ics *strings.Builder, r nearby.Result, now time.Time) {
	evt := r.Event

	start, end := event.ParseDateSpan(evt.DateLabel, now)
	if start.IsZero() {
		return
	}

	ics.WriteString("BEGIN:VEVENT\r\n")
	ics.WriteString(fmt.Sprintf("UID:%s@%s\r\n", evt.ID, UIDDomain))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", formatICSTime(now)))

	// All-day event spanning every labelled day; DTEND is exclusive
	ics.WriteString(fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", formatICSDate(start)))
	ics.WriteString(fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", formatICSDate(end.AddDate(0, 0, 1))))

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(evt.Name)))

	description := fmt.Sprintf("Date: %s\nDistance: %.2f miles", evt.DateLabel, r.DistanceMiles)
	if evt.DetailURL != "" {
		description = fmt.Sprintf("%s\n\nDetails: %s", description, evt.DetailURL)
	}
	ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(description)))

	if evt.City != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(evt.City)))
	}
	ics.WriteString(fmt.Sprintf("GEO:%f;%f\r\n", evt.Location.Latitude, evt.Location.Longitude))

	if evt.DetailURL != "" {
		ics.WriteString(fmt.Sprintf("URL:%s\r\n", evt.DetailURL))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("TRANSP:TRANSPARENT\r\n")
	ics.WriteString("END:VEVENT\r\n")
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats a time.Time as an iCalendar DATE value
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
