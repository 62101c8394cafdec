// Package cli implements the command-line interface for cube-sniper.
//
// The cli package provides the Cobra-based command that fetches upcoming WCA
// competitions for a region, optionally narrows them by name, city or date,
// keeps those within a radius of a search point, sorts them (by distance,
// name or date) and writes them as text, an aligned table, JSON or an
// iCalendar feed. It coordinates the config, scraper, filter, nearby,
// calendar, logger and metrics packages.
package cli
