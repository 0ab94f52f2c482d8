package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/routehaven/orsproxy/internal/coordinator"
	"github.com/routehaven/orsproxy/internal/fingerprint"
	"github.com/routehaven/orsproxy/internal/parsing"
)

type tableRequestBody struct {
	Locations [][2]float64 `json:"locations"`
}

// Table implements GET and POST /table: a distance/duration matrix over a
// location list, forwarded verbatim from upstream.
func (d *Deps) Table(c *gin.Context) {
	ctx := c.Request.Context()

	profile := c.DefaultQuery("profile", "driving-car")
	metrics := parseMetrics(c.DefaultQuery("metrics", "distance,duration"))

	var locations parsing.LocationList

	if c.Request.Method == http.MethodPost {
		var body tableRequestBody
		if err := c.ShouldBindJSON(&body); err != nil || len(body.Locations) < 2 {
			respondError(c, http.StatusBadRequest, errLocationsUnparsable)
			return
		}
		locations = make(parsing.LocationList, len(body.Locations))
		for i, pair := range body.Locations {
			locations[i] = parsing.Point{Lon: pair[0], Lat: pair[1]}
		}
	} else {
		locationsRaw := c.Query("locations")
		if locationsRaw == "" {
			// net/url drops any query pair that contains ';', which is the
			// primary location separator, so look for it in the raw query.
			for _, pair := range strings.Split(c.Request.URL.RawQuery, "&") {
				if key, value, ok := strings.Cut(pair, "="); ok && key == "locations" {
					if unescaped, err := url.QueryUnescape(value); err == nil {
						locationsRaw = unescaped
					}
					break
				}
			}
		}
		if locationsRaw == "" {
			respondError(c, http.StatusBadRequest, errLocationsRequired)
			return
		}
		parsed, err := parsing.ParseLocations(locationsRaw)
		if err != nil {
			respondError(c, http.StatusBadRequest, errLocationsUnparsable)
			return
		}
		locations = parsed
	}

	fp, err := fingerprint.ForTable(fingerprint.TableDescriptor{Profile: profile, Metrics: metrics, Locations: locations})
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
	resp, err := d.Upstream.Table(ctx, profile, coordinates, metrics)
	if err != nil {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Abort(ctx, fp)
		}
		d.Log.LogUpstreamCall("table", 0, time.Since(upstreamStart), err)
		respondError(c, http.StatusBadGateway, errMatrixUnavailable)
		return
	}
	d.Log.LogUpstreamCall("table", resp.StatusCode, time.Since(upstreamStart), nil)

	if resp.OK() {
		if result.Outcome == coordinator.Acquired {
			d.Coordinator.Publish(ctx, fp, string(resp.Body), d.CacheTTL)
		}
	} else if result.Outcome == coordinator.Acquired {
		d.Coordinator.Abort(ctx, fp)
	}

	forwardVerbatim(c, resp)
}

func parseMetrics(raw string) []string {
	parts := strings.Split(raw, ",")
	metrics := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			metrics = append(metrics, p)
		}
	}
	return metrics
}
