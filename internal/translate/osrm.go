package translate

import (
	"encoding/json"

	"github.com/routehaven/orsproxy/internal/parsing"
)

// noRouteBody is the synthetic body cached and returned when the provider
// reports no routes; the miss itself is a stable, cacheable result.
const noRouteBody = `{"code":"NoRoute","routes":[]}`

type providerRoute struct {
	Summary *struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"summary"`
	Segments []struct {
		Distance float64 `json:"distance"`
		Duration float64 `json:"duration"`
	} `json:"segments"`
	Geometry interface{} `json:"geometry"`
}

type providerDirections struct {
	Routes []providerRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64     `json:"distance"`
	Duration float64     `json:"duration"`
	Geometry interface{} `json:"geometry"`
}

type osrmWaypoint struct {
	Location [2]float64 `json:"location"`
	Name     string     `json:"name"`
}

type osrmResponse struct {
	Code      string         `json:"code"`
	Routes    []osrmRoute    `json:"routes"`
	Waypoints []osrmWaypoint `json:"waypoints,omitempty"`
}

// OSRMLike converts a provider directions response into the OSRM-like shape
// expected by clients of /route/v1. locations supplies the waypoints, taken
// from the request rather than the provider response.
func OSRMLike(body []byte, locations parsing.LocationList) (string, error) {
	var provider providerDirections
	if err := json.Unmarshal(body, &provider); err != nil {
		return "", err
	}

	if len(provider.Routes) == 0 {
		return noRouteBody, nil
	}

	r := provider.Routes[0]

	var distance, duration float64
	if r.Summary != nil {
		distance = r.Summary.Distance
		duration = r.Summary.Duration
	} else {
		for _, seg := range r.Segments {
			distance += seg.Distance
			duration += seg.Duration
		}
	}

	waypoints := make([]osrmWaypoint, len(locations))
	for i, loc := range locations {
		waypoints[i] = osrmWaypoint{Location: [2]float64{loc.Lon, loc.Lat}, Name: ""}
	}

	out := osrmResponse{
		Code: "Ok",
		Routes: []osrmRoute{{
			Distance: distance,
			Duration: duration,
			Geometry: r.Geometry,
		}},
		Waypoints: waypoints,
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
