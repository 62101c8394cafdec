package scraper

import (
	"errors"
	"fmt"
)

// Parse errors
var (
	ErrElementNotFound = errors.New("competitions container not found")
	ErrEmptyScript     = errors.New("competitions container has no script")
	ErrMarkerNotFound  = errors.New("competitions marker not found in script")
	ErrMalformedJSON   = errors.New("malformed competitions JSON")
	ErrMissingField    = errors.New("missing or invalid field")
)

// Fetch errors
var (
	ErrTransport               = errors.New("transport failure")
	ErrMissingPaginationSignal = errors.New("missing pagination Link header")
)

// FieldError reports the first entry that lacks a required field or carries
// it with the wrong type. It matches ErrMissingField with errors.Is.
type FieldError struct {
	Index int    // Position of the entry in the upstream array
	Field string // Upstream field name, e.g. "latitude_degrees"
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("entry %d: %s: %q", e.Index, ErrMissingField, e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}
