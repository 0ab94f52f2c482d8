package fingerprint

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/routehaven/orsproxy/internal/parsing"
)

// Namespace identifies which endpoint family a descriptor belongs to; it
// prefixes both the cache key and the lock key so that the four endpoint
// families never collide even on identical semantic inputs.
type Namespace string

const (
	NamespaceRoute   Namespace = "route"
	NamespaceRouteV1 Namespace = "route_v1"
	NamespaceTable   Namespace = "table"
	NamespaceGeocode Namespace = "geocode"
)

// Fingerprint is a namespace-qualified content hash of a request descriptor.
type Fingerprint struct {
	Namespace Namespace
	Hex       string
}

// Key returns the public "<namespace>:<hex>" form used to derive both the
// cache:<fp> and lock:<fp> store keys.
func (f Fingerprint) Key() string {
	return fmt.Sprintf("%s:%s", f.Namespace, f.Hex)
}

func (f Fingerprint) CacheKey() string {
	return "cache:" + f.Key()
}

func (f Fingerprint) LockKey() string {
	return "lock:" + f.Key()
}

// pointToArray renders a Point the way the original proxy's _parse_point
// does: a bare [lon, lat] array, not an object, so the descriptor hashes
// identically across implementations.
func pointToArray(p parsing.Point) []interface{} {
	return []interface{}{p.Lon, p.Lat}
}

func locationsToSlice(locs parsing.LocationList) []interface{} {
	out := make([]interface{}, len(locs))
	for i, p := range locs {
		out[i] = pointToArray(p)
	}
	return out
}

// RouteDescriptor backs the simple GET /route endpoint.
type RouteDescriptor struct {
	Profile string
	Start   parsing.Point
	End     parsing.Point
}

func (d RouteDescriptor) toMap() map[string]interface{} {
	return map[string]interface{}{
		"profile": d.Profile,
		"start":   pointToArray(d.Start),
		"end":     pointToArray(d.End),
	}
}

// RouteV1Descriptor backs the OSRM-style GET /route/v1/<profile>/<coords>.
type RouteV1Descriptor struct {
	Profile   string
	Locations parsing.LocationList
}

func (d RouteV1Descriptor) toMap() map[string]interface{} {
	return map[string]interface{}{
		"profile":   d.Profile,
		"locations": locationsToSlice(d.Locations),
	}
}

// TableDescriptor backs GET/POST /table.
type TableDescriptor struct {
	Profile   string
	Metrics   []string
	Locations parsing.LocationList
}

func (d TableDescriptor) toMap() map[string]interface{} {
	return map[string]interface{}{
		"profile":   d.Profile,
		"metrics":   d.Metrics,
		"locations": locationsToSlice(d.Locations),
	}
}

// GeocodeDescriptor backs GET /search.
type GeocodeDescriptor struct {
	Query string
}

func (d GeocodeDescriptor) toMap() map[string]interface{} {
	return map[string]interface{}{"q": d.Query}
}

type descriptor interface {
	toMap() map[string]interface{}
}

func build(ns Namespace, d descriptor) (Fingerprint, error) {
	data, err := canonicalJSON(d.toMap())
	if err != nil {
		return Fingerprint{}, err
	}

	sum := sha1.Sum(data)

	return Fingerprint{
		Namespace: ns,
		Hex:       hex.EncodeToString(sum[:]),
	}, nil
}

func ForRoute(d RouteDescriptor) (Fingerprint, error) {
	return build(NamespaceRoute, d)
}

func ForRouteV1(d RouteV1Descriptor) (Fingerprint, error) {
	return build(NamespaceRouteV1, d)
}

func ForTable(d TableDescriptor) (Fingerprint, error) {
	return build(NamespaceTable, d)
}

func ForGeocode(d GeocodeDescriptor) (Fingerprint, error) {
	return build(NamespaceGeocode, d)
}
