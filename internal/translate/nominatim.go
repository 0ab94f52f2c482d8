package translate

import (
	"encoding/json"
	"fmt"
)

type providerFeature struct {
	Geometry struct {
		Coordinates []float64 `json:"coordinates"`
	} `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type providerFeatureCollection struct {
	Features []providerFeature `json:"features"`
}

type nominatimResult struct {
	Lat         string                 `json:"lat"`
	Lon         string                 `json:"lon"`
	DisplayName string                 `json:"display_name"`
	Properties  map[string]interface{} `json:"properties"`
}

// NominatimLike converts a provider geocode response into the single-result
// Nominatim-like shape expected by /search clients. If the body can't be
// parsed into a usable feature, the caller should fall back to forwarding
// the raw upstream body — this function signals that with an error.
func NominatimLike(body []byte) (string, error) {
	var fc providerFeatureCollection
	if err := json.Unmarshal(body, &fc); err != nil {
		return "", fmt.Errorf("translate: parse geocode response: %w", err)
	}

	if len(fc.Features) == 0 {
		return "", fmt.Errorf("translate: no features in geocode response")
	}

	feature := fc.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return "", fmt.Errorf("translate: feature missing coordinates")
	}

	lon := feature.Geometry.Coordinates[0]
	lat := feature.Geometry.Coordinates[1]

	displayName := displayNameFrom(feature.Properties)

	result := []nominatimResult{{
		Lat:         fmt.Sprintf("%v", lat),
		Lon:         fmt.Sprintf("%v", lon),
		DisplayName: displayName,
		Properties:  feature.Properties,
	}}

	data, err := json.Marshal(result)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// displayNameFrom picks the first populated field in the fallback chain
// label -> name -> locality -> region -> "".
func displayNameFrom(props map[string]interface{}) string {
	for _, key := range []string{"label", "name", "locality", "region"} {
		if v, ok := props[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}
