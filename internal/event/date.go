package event

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// rangePattern matches labels such as "Mar 14 - 15, 2026" or
// "Mar 30 - Apr 1, 2026", capturing first month, first day, optional last
// month, last day and year
var rangePattern = regexp.MustCompile(`^([A-Z][a-z]{2})\s+(\d{1,2})\s*-\s*(?:([A-Z][a-z]{2})\s+)?(\d{1,2}),?\s+(\d{4})$`)

// ParseDate attempts to parse a DateLabel into the first day of the event.
// Returns time.Time{} (zero value) if parsing fails. Labels without a year
// are placed in the current year.
// Supports formats: "2026-03-14", "Mar 14, 2026", "Mar 14 2026",
// "Mar 14 - 15, 2026", "Mar 30 - Apr 1, 2026", "Mar 14"
func ParseDate(label string) time.Time {
	return ParseDateAt(label, time.Now())
}

// ParseDateAt is ParseDate with labels without a year placed in now's year
func ParseDateAt(label string, now time.Time) time.Time {
	start, _ := ParseDateSpan(label, now)
	return start
}

// ParseDateSpan returns the first and last day of the event. Single-day
// labels return the same day twice; unparseable labels return two zero
// times. A range whose last month precedes its first ("Dec 30 - Jan 2,
// 2027") starts in the year before the labelled one.
func ParseDateSpan(label string, now time.Time) (start, end time.Time) {
	label = strings.TrimSpace(label)
	if label == "" {
		return time.Time{}, time.Time{}
	}

	for _, layout := range []string{
		"2006-01-02",
		"Jan 2, 2006",
		"Jan 2 2006",
		"January 2, 2006",
	} {
		if t, err := time.Parse(layout, label); err == nil {
			return t, t
		}
	}

	if m := rangePattern.FindStringSubmatch(label); m != nil {
		year, _ := strconv.Atoi(m[5])
		lastMonth := m[3]
		if lastMonth == "" {
			lastMonth = m[1]
		}

		first, err := time.Parse("Jan 2", m[1]+" "+m[2])
		if err != nil {
			return time.Time{}, time.Time{}
		}
		last, err := time.Parse("Jan 2", lastMonth+" "+m[4])
		if err != nil {
			return time.Time{}, time.Time{}
		}

		startYear := year
		if first.Month() > last.Month() {
			startYear--
		}
		start = time.Date(startYear, first.Month(), first.Day(), 0, 0, 0, 0, time.UTC)
		end = time.Date(year, last.Month(), last.Day(), 0, 0, 0, 0, time.UTC)
		if start.After(end) {
			return time.Time{}, time.Time{}
		}
		return start, end
	}

	// "Mar 14" (no year)
	for _, layout := range []string{"Jan 2", "Jan 02"} {
		if t, err := time.Parse(layout, label); err == nil {
			d := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return d, d
		}
	}

	return time.Time{}, time.Time{}
}
