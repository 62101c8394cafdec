// Package scraper fetches WCA competition listings and parses them into
// canonical events.
//
// Two upstream formats are supported. The legacy competitions map page embeds
// a JSON array in a script inside the #competitions-map element; LegacyParser
// extracts it with goquery. The competition_index API returns one JSON array
// per page and signals further pages through the Link header; Paginator
// follows it and APIParser decodes each page. Parsing is strict: one
// malformed entry fails the whole payload.
package scraper
