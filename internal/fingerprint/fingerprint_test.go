package fingerprint

import (
	"testing"

	"github.com/routehaven/orsproxy/internal/parsing"
)

func TestForRouteDeterministic(t *testing.T) {
	d := RouteDescriptor{
		Profile: "driving-car",
		Start:   parsing.Point{Lon: 30.70, Lat: 46.39},
		End:     parsing.Point{Lon: 30.71, Lat: 46.42},
	}

	fp1, err := ForRoute(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp2, err := ForRoute(d)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fp1.Key() != fp2.Key() {
		t.Fatalf("fingerprint not deterministic: %s != %s", fp1.Key(), fp2.Key())
	}
	if fp1.Namespace != NamespaceRoute {
		t.Fatalf("expected route namespace, got %s", fp1.Namespace)
	}
}

func TestFingerprintInsensitiveToSeparatorChoice(t *testing.T) {
	semi, err := parsing.ParseLocations("30.70,46.39;30.71,46.42")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	pipe, err := parsing.ParseLocations("30.70,46.39|30.71,46.42")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	fp1, err := ForRouteV1(RouteV1Descriptor{Profile: "driving-car", Locations: semi})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp2, err := ForRouteV1(RouteV1Descriptor{Profile: "driving-car", Locations: pipe})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fp1.Key() != fp2.Key() {
		t.Fatalf("fingerprint should be insensitive to separator choice: %s != %s", fp1.Key(), fp2.Key())
	}
}

func TestFingerprintInsensitiveToWhitespace(t *testing.T) {
	tight, err := parsing.ParsePoint("30.70,46.39")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	spaced, err := parsing.ParsePoint(" 30.70 , 46.39 ")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	fp1, err := ForRoute(RouteDescriptor{Profile: "driving-car", Start: tight, End: tight})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fp2, err := ForRoute(RouteDescriptor{Profile: "driving-car", Start: spaced, End: spaced})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fp1.Key() != fp2.Key() {
		t.Fatalf("fingerprint should be insensitive to incidental whitespace: %s != %s", fp1.Key(), fp2.Key())
	}
}

func TestFingerprintNamespacesDontCollide(t *testing.T) {
	routeFp, _ := ForRoute(RouteDescriptor{Profile: "driving-car", Start: parsing.Point{Lon: 1, Lat: 2}, End: parsing.Point{Lon: 1, Lat: 2}})
	geocodeFp, _ := ForGeocode(GeocodeDescriptor{Query: "x"})

	if routeFp.CacheKey() == geocodeFp.CacheKey() {
		t.Fatalf("namespaces collided")
	}
}

func TestCanonicalJSONSortsKeys(t *testing.T) {
	a := map[string]interface{}{"b": 1, "a": 2}
	b := map[string]interface{}{"a": 2, "b": 1}

	outA, err := canonicalJSON(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	outB, err := canonicalJSON(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if string(outA) != string(outB) {
		t.Fatalf("canonical JSON should be order-independent: %s != %s", outA, outB)
	}
	if string(outA) != `{"a":2,"b":1}` {
		t.Fatalf("unexpected canonical form: %s", outA)
	}
}
