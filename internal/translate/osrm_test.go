package translate

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/routehaven/orsproxy/internal/parsing"
)

func TestOSRMLikeFromSummary(t *testing.T) {
	body := []byte(`{"routes":[{"summary":{"distance":1234.5,"duration":87.6},"geometry":"abc"}]}`)
	locations := parsing.LocationList{
		{Lon: 30.70, Lat: 46.39},
		{Lon: 30.71, Lat: 46.42},
	}

	out, err := OSRMLike(body, locations)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	require.Equal(t, "Ok", got["code"])
	routes := got["routes"].([]interface{})
	require.Len(t, routes, 1)
	route := routes[0].(map[string]interface{})
	require.Equal(t, 1234.5, route["distance"])
	require.Equal(t, 87.6, route["duration"])
	require.Equal(t, "abc", route["geometry"])

	waypoints := got["waypoints"].([]interface{})
	require.Len(t, waypoints, 2)
	wp0 := waypoints[0].(map[string]interface{})
	require.Equal(t, "", wp0["name"])
	loc := wp0["location"].([]interface{})
	require.Equal(t, 30.70, loc[0])
	require.Equal(t, 46.39, loc[1])
}

func TestOSRMLikeSumsSegmentsWhenNoSummary(t *testing.T) {
	body := []byte(`{"routes":[{"segments":[{"distance":100,"duration":10},{"distance":200,"duration":20}]}]}`)

	out, err := OSRMLike(body, parsing.LocationList{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}})
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	route := got["routes"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, 300.0, route["distance"])
	require.Equal(t, 30.0, route["duration"])
}

func TestOSRMLikeNoRoute(t *testing.T) {
	body := []byte(`{"routes":[]}`)

	out, err := OSRMLike(body, parsing.LocationList{{Lon: 0, Lat: 0}, {Lon: 1, Lat: 1}})
	require.NoError(t, err)
	require.JSONEq(t, `{"code":"NoRoute","routes":[]}`, out)
}
