package scraper

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/pfrederiksen/cube-sniper/internal/event"
)

// Parser turns one upstream payload into events, in upstream order
type Parser interface {
	Parse(payload []byte) ([]*event.Event, error)
}

// entry is one raw upstream object with typed, strict accessors
type entry struct {
	index  int
	fields map[string]json.RawMessage
}

// decodeEntries decodes a JSON array of objects
func decodeEntries(data []byte) ([]entry, error) {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil, fmt.Errorf("%w: expected an array, got null", ErrMalformedJSON)
	}

	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedJSON, err)
	}

	entries := make([]entry, len(raw))
	for i, fields := range raw {
		entries[i] = entry{index: i, fields: fields}
	}
	return entries, nil
}

func (e entry) missing(field string) error {
	return &FieldError{Index: e.index, Field: field}
}

// get returns the raw value of field; JSON null counts as absent
func (e entry) get(field string) (json.RawMessage, bool) {
	raw, ok := e.fields[field]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

// str returns a required string field
func (e entry) str(field string) (string, error) {
	raw, ok := e.get(field)
	if !ok {
		return "", e.missing(field)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", e.missing(field)
	}
	return s, nil
}

// nonEmpty returns a required string field that must not be blank
func (e entry) nonEmpty(field string) (string, error) {
	s, err := e.str(field)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(s) == "" {
		return "", e.missing(field)
	}
	return s, nil
}

// number returns a required numeric field. Older payloads quote their
// coordinates, so a string holding a finite number is accepted too.
func (e entry) number(field string) (float64, error) {
	raw, ok := e.get(field)
	if !ok {
		return 0, e.missing(field)
	}

	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, e.missing(field)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, e.missing(field)
	}
	return f, nil
}

// joinOrigin appends a site-relative path to origin, keeping any path the
// origin carries (a mirror under https://host/wca) the same way PageURL does.
// Absolute references are returned as is.
func joinOrigin(origin, ref string) (string, error) {
	if _, err := url.Parse(origin); err != nil {
		return "", fmt.Errorf("parsing origin %q: %w", origin, err)
	}
	rel, err := url.Parse(ref)
	if err != nil {
		return "", err
	}
	if rel.IsAbs() {
		return rel.String(), nil
	}
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(ref, "/"), nil
}

// idFromPath returns the last path segment, e.g. "BayAreaOpen2026" for
// "/competitions/BayAreaOpen2026"
func idFromPath(p string) string {
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	return path.Base(strings.TrimRight(p, "/"))
}
