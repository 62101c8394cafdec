// Package event provides the canonical competition record shared by every
// upstream format.
//
// Both the legacy map page and the paginated competition API are normalized
// into Event values, so distance filtering and presentation never need to
// know which endpoint a record came from. The package also offers
// best-effort parsing of the free-text date labels upstream publishes.
package event
