package parsing

import (
	"fmt"
	"strconv"
	"strings"
)

// Point is an ordered (lon, lat) pair.
type Point struct {
	Lon float64
	Lat float64
}

// ParsePoint parses "lon,lat", trimming whitespace around each component.
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("expected \"lon,lat\", got %q", s)
	}

	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid longitude in %q: %w", s, err)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid latitude in %q: %w", s, err)
	}

	return Point{Lon: lon, Lat: lat}, nil
}
