package parsing

import (
	"fmt"
	"strings"
)

// LocationList is an ordered sequence of points; order is semantically
// significant and feeds the fingerprint.
type LocationList []Point

// ParseLocations splits on ';' if present, else '|' if present, else treats
// the whole string as one chunk (which then fails the length check). Each
// chunk is parsed as a Point; the result must have length >= 2.
func ParseLocations(s string) (LocationList, error) {
	var sep string
	switch {
	case strings.Contains(s, ";"):
		sep = ";"
	case strings.Contains(s, "|"):
		sep = "|"
	default:
		sep = ""
	}

	var chunks []string
	if sep == "" {
		chunks = []string{s}
	} else {
		chunks = strings.Split(s, sep)
	}

	locations := make(LocationList, 0, len(chunks))
	for _, chunk := range chunks {
		p, err := ParsePoint(chunk)
		if err != nil {
			return nil, err
		}
		locations = append(locations, p)
	}

	if len(locations) < 2 {
		return nil, fmt.Errorf("expected at least 2 locations, got %d", len(locations))
	}

	return locations, nil
}
