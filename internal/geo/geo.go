package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	olc "github.com/google/open-location-code/go"
)

// EarthRadiusMiles is the mean Earth radius used for distance calculations.
const EarthRadiusMiles = 3959.0

// plusCodeLength is the number of digits used when encoding plus codes
const plusCodeLength = 10

// Coordinate is a point in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// String renders the coordinate as "lat, lon"
func (c Coordinate) String() string {
	return fmt.Sprintf("%g, %g", c.Latitude, c.Longitude)
}

// Distance returns the great-circle distance in miles between a and b.
// NaN or infinite inputs propagate to the result.
func Distance(a, b Coordinate) float64 {
	dlat := toRadians(b.Latitude - a.Latitude)
	dlon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(toRadians(a.Latitude))*math.Cos(toRadians(b.Latitude))*
			math.Sin(dlon/2)*math.Sin(dlon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// ParseCoordinate parses a "lat,lon" string such as "37.7749,-122.4194".
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected \"lat,lon\"", s)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid latitude %q: %w", parts[0], err)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, fmt.Errorf("invalid longitude %q: %w", parts[1], err)
	}

	c := Coordinate{Latitude: lat, Longitude: lon}
	if err := c.Validate(); err != nil {
		return Coordinate{}, err
	}

	return c, nil
}

// Validate reports whether the coordinate lies within [-90,90] x [-180,180]
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Latitude) || c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range [-90, 90]", c.Latitude)
	}
	if math.IsNaN(c.Longitude) || c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range [-180, 180]", c.Longitude)
	}
	return nil
}

// PlusCode encodes the coordinate as a 10 digit Open Location Code.
// Returns an empty string for non-finite coordinates.
func PlusCode(c Coordinate) string {
	if math.IsNaN(c.Latitude) || math.IsNaN(c.Longitude) ||
		math.IsInf(c.Latitude, 0) || math.IsInf(c.Longitude, 0) {
		return ""
	}
	return olc.Encode(c.Latitude, c.Longitude, plusCodeLength)
}
