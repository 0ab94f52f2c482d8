package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/routehaven/orsproxy/internal/coordinator"
	"github.com/routehaven/orsproxy/internal/fingerprint"
	"github.com/routehaven/orsproxy/internal/translate"
)

// Search implements GET /search: geocoding, translated into a
// Nominatim-like single-result array when the upstream body parses, or
// forwarded as-is when it doesn't.
func (d *Deps) Search(c *gin.Context) {
	ctx := c.Request.Context()

	q := c.Query("q")
	if q == "" {
		q = c.Query("text")
	}
	if q == "" {
		respondError(c, http.StatusBadRequest, errQueryRequired)
		return
	}

	fp, err := fingerprint.ForGeocode(fingerprint.GeocodeDescriptor{Query: q})
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

	upstreamStart := time.Now()
	resp, err := d.Upstream.Geocode(ctx, q)
	if err != nil {
		if result.Outcome == coordinator.Acquired {
			// Releases the lock fingerprint's own key, not the cache key —
			// unlike the asymmetric release this endpoint historically used.
			d.Coordinator.Abort(ctx, fp)
		}
		d.Log.LogUpstreamCall("geocode", 0, time.Since(upstreamStart), err)
		respondError(c, http.StatusBadGateway, errGeocodeUnavailable)
		return
	}
	d.Log.LogUpstreamCall("geocode", resp.StatusCode, time.Since(upstreamStart), nil)

	if !resp.OK() {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Abort(ctx, fp)
		}
		forwardVerbatim(c, resp)
		return
	}

	body, err := translate.NominatimLike(resp.Body)
	if err != nil {
		body = string(resp.Body)
	}

	if result.Outcome == coordinator.Acquired {
		d.Coordinator.Publish(ctx, fp, body, d.CacheTTL)
	}

	respondJSONBody(c, http.StatusOK, body)
}
