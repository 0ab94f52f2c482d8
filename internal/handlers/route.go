package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/routehaven/orsproxy/internal/coordinator"
	"github.com/routehaven/orsproxy/internal/fingerprint"
	"github.com/routehaven/orsproxy/internal/parsing"
)

// Route implements GET /route: simple point-to-point routing, forwarded
// verbatim from the upstream provider.
func (d *Deps) Route(c *gin.Context) {
	ctx := c.Request.Context()

	startRaw := c.Query("start")
	endRaw := c.Query("end")
	profile := c.DefaultQuery("profile", "driving-car")

	if startRaw == "" || endRaw == "" {
		respondError(c, http.StatusBadRequest, errStartEndRequired)
		return
	}

	start, err := parsing.ParsePoint(startRaw)
	if err != nil {
		respondError(c, http.StatusBadRequest, errBadPoint)
		return
	}
	end, err := parsing.ParsePoint(endRaw)
	if err != nil {
		respondError(c, http.StatusBadRequest, errBadPoint)
		return
	}

	fp, err := fingerprint.ForRoute(fingerprint.RouteDescriptor{Profile: profile, Start: start, End: end})
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
	resp, err := d.Upstream.Route(ctx, profile, startRaw, endRaw)
	if err != nil {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Abort(ctx, fp)
		}
		d.Log.LogUpstreamCall("route", 0, time.Since(upstreamStart), err)
		respondError(c, http.StatusBadGateway, errRoutingUnavailable)
		return
	}
	d.Log.LogUpstreamCall("route", resp.StatusCode, time.Since(upstreamStart), nil)

	if resp.OK() {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Publish(ctx, fp, string(resp.Body), d.CacheTTL)
		}
	} else if result.Outcome == coordinator.Acquired {
		d.Coordinator.Abort(ctx, fp)
	}

	forwardVerbatim(c, resp)
}
