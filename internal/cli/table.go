package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

const (
	defaultWidth  = 120
	minNameWidth  = 16
	maxDateWidth  = 22
	maxCityWidth  = 30
	distanceWidth = 10
	columnGap     = "  "
)

// terminalWidth returns the width of w when it is a terminal, else defaultWidth
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return defaultWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// writeTable outputs results as aligned columns. Widths are measured in
// terminal cells so CJK competition names line up.
func writeTable(w io.Writer, result *OutputResult, width int) error {
	if width <= 0 {
		width = defaultWidth
	}

	dateWidth := len("DATE")
	cityWidth := len("CITY")
	for _, r := range result.Results {
		dateWidth = max(dateWidth, runewidth.StringWidth(r.Event.DateLabel))
		cityWidth = max(cityWidth, runewidth.StringWidth(r.Event.City))
	}
	dateWidth = min(dateWidth, maxDateWidth)
	cityWidth = min(cityWidth, maxCityWidth)

	nameWidth := width - distanceWidth - dateWidth - cityWidth - 3*len(columnGap)
	nameWidth = max(nameWidth, minNameWidth)

	var b strings.Builder
	writeRow := func(distance, date, name, city string) {
		b.WriteString(runewidth.FillLeft(distance, distanceWidth))
		b.WriteString(columnGap)
		b.WriteString(cell(date, dateWidth))
		b.WriteString(columnGap)
		b.WriteString(cell(name, nameWidth))
		b.WriteString(columnGap)
		b.WriteString(strings.TrimRight(cell(city, cityWidth), " "))
		b.WriteString("\n")
	}

	writeRow("MILES", "DATE", "NAME", "CITY")
	for _, r := range result.Results {
		writeRow(fmt.Sprintf("%.2f", r.DistanceMiles), r.Event.DateLabel, r.Event.Name, r.Event.City)
	}
	fmt.Fprintf(&b, "\n%d competitions within %.2f miles of %s\n", result.Count, result.RadiusMiles, result.Origin)

	_, err := io.WriteString(w, b.String())
	return err
}

// cell truncates s to width cells and pads it on the right
func cell(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
