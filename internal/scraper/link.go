package scraper

import (
	"fmt"
	"strings"
)

// HasNextLink reports whether a Link header value such as
//
//	<https://host/api?page=2>; rel="next", <https://host/api?page=9>; rel="last"
//
// contains a descriptor with the "next" relation. An empty value, or one
// without any <uri> descriptor, is ErrMissingPaginationSignal.
//
// Descriptors are delimited by their <uri> brackets rather than by splitting
// on commas, because upstream URIs carry commas in their sort parameter.
func HasNextLink(header string) (bool, error) {
	if strings.TrimSpace(header) == "" {
		return false, ErrMissingPaginationSignal
	}

	found := false
	rest := header
	for {
		start := strings.IndexByte(rest, '<')
		if start < 0 {
			break
		}
		end := strings.IndexByte(rest[start:], '>')
		if end < 0 {
			break
		}
		found = true
		rest = rest[start+end+1:]

		params := rest
		if i := strings.IndexByte(params, '<'); i >= 0 {
			params = params[:i]
		}
		if hasRel(params, "next") {
			return true, nil
		}
	}

	if !found {
		return false, fmt.Errorf("%w: no link descriptors in %q", ErrMissingPaginationSignal, header)
	}
	return false, nil
}

// hasRel reports whether a descriptor's parameter list (`; rel="next",`)
// names the relation. rel may list several space separated types.
func hasRel(params, relation string) bool {
	for _, p := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "rel") {
			continue
		}
		value = strings.TrimRight(strings.TrimSpace(value), ",")
		for _, rel := range strings.Fields(strings.Trim(strings.TrimSpace(value), `"`)) {
			if strings.EqualFold(rel, relation) {
				return true
			}
		}
	}
	return false
}
