// Package geo provides coordinate types and great-circle distance math.
//
// Distances are computed with the haversine formula on a sphere of radius
// EarthRadiusMiles. The package also parses user supplied "lat,lon" strings
// and encodes coordinates as Open Location Codes (plus codes).
package geo
