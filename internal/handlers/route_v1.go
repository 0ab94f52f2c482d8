package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/routehaven/orsproxy/internal/coordinator"
	"github.com/routehaven/orsproxy/internal/fingerprint"
	"github.com/routehaven/orsproxy/internal/parsing"
	"github.com/routehaven/orsproxy/internal/translate"
	"github.com/routehaven/orsproxy/pkg/upstream"
)

// RouteV1 implements GET /route/v1/<profile>/<coords>, the OSRM-compatible
// path: coordinates are translated to a provider directions call and the
// response reshaped into an OSRM-like body.
func (d *Deps) RouteV1(c *gin.Context) {
	ctx := c.Request.Context()

	profile := c.Param("profile")
	coords := c.Param("coords")

	locations, err := parsing.ParseLocations(coords)
	if err != nil {
		respondError(c, http.StatusBadRequest, errBadLocations)
		return
	}

	orsProfile := upstream.ResolveProfile(profile)

	fp, err := fingerprint.ForRouteV1(fingerprint.RouteV1Descriptor{Profile: orsProfile, Locations: locations})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal error")
		return
	}

	if payload, ok := d.Store.Get(ctx, fp.CacheKey()); ok {
		d.Log.LogCacheOutcome(fp.Key(), "hit")
		respondJSONBody(c, http.StatusOK, payload)
		return
	}
	d.Log.LogCacheOutcome(fp.Key(), "miss")

	result := d.Coordinator.Acquire(ctx, fp)
	if result.Outcome == coordinator.ServedFromCache {
		respondJSONBody(c, http.StatusOK, result.Payload)
		return
	}

	coordinates := make([][2]float64, len(locations))
	for i, loc := range locations {
		coordinates[i] = [2]float64{loc.Lon, loc.Lat}
	}

	upstreamStart := time.Now()
	resp, err := d.Upstream.RouteV1(ctx, orsProfile, coordinates)
	if err != nil {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Abort(ctx, fp)
		}
		d.Log.LogUpstreamCall("route_v1", 0, time.Since(upstreamStart), err)
		respondError(c, http.StatusBadGateway, errRoutingUnavailable)
		return
	}
	d.Log.LogUpstreamCall("route_v1", resp.StatusCode, time.Since(upstreamStart), nil)

	if !resp.OK() {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Abort(ctx, fp)
		}
		forwardVerbatim(c, resp)
		return
	}

	body, err := translate.OSRMLike(resp.Body, locations)
	if err != nil {
		// Translator failure: fall back to the raw upstream body rather
		// than fail the request.
		body = string(resp.Body)
	}

	if result.Outcome == coordinator.Acquired {
		d.Coordinator.Publish(ctx, fp, body, d.CacheTTL)
	}

	respondJSONBody(c, http.StatusOK, body)
}
