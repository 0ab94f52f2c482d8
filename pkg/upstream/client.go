package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Response is the raw shape an upstream call returns: callers either
// forward it verbatim or parse Body further for translation.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

func (r Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client talks to the OpenRouteService-shaped upstream over plain net/http.
// A provider SDK isn't used here: the proxy must forward non-2xx upstream
// responses verbatim (status, content type and body, byte for byte), which
// a client built around a typed SDK response would already have unmarshalled
// and discarded the raw form of.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 100,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// OSRM→provider profile mapping; unrecognised profiles pass through
// unchanged.
var profileMap = map[string]string{
	"driving":        "driving-car",
	"driving-car":    "driving-car",
	"cycling":        "cycling-regular",
	"cycling-regular": "cycling-regular",
	"walking":        "foot-walking",
	"foot":           "foot-walking",
	"foot-walking":   "foot-walking",
}

// ResolveProfile maps an OSRM-style profile name to the provider's profile.
func ResolveProfile(profile string) string {
	if mapped, ok := profileMap[profile]; ok {
		return mapped
	}
	return profile
}

func (c *Client) get(ctx context.Context, path string, query url.Values, timeout time.Duration) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Authorization", c.apiKey)

	return c.do(req)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, timeout time.Duration) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return Response{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *Client) do(req *http.Request) (Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	return Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        data,
	}, nil
}

// Route issues the simple point-to-point GET directions call, 30s timeout.
func (c *Client) Route(ctx context.Context, profile string, start, end string) (Response, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	return c.get(ctx, fmt.Sprintf("/v2/directions/%s", profile), q, 30*time.Second)
}

// RouteV1 issues the coordinate-list POST directions call, 60s timeout.
func (c *Client) RouteV1(ctx context.Context, orsProfile string, coordinates [][2]float64) (Response, error) {
	body := map[string]interface{}{
		"coordinates":  coordinates,
		"instructions": true,
		"units":        "m",
	}
	return c.post(ctx, fmt.Sprintf("/v2/directions/%s", orsProfile), body, 60*time.Second)
}

// Table issues the matrix POST call, 60s timeout.
func (c *Client) Table(ctx context.Context, profile string, locations [][2]float64, metrics []string) (Response, error) {
	body := map[string]interface{}{
		"locations": locations,
		"metrics":   metrics,
	}
	return c.post(ctx, fmt.Sprintf("/v2/matrix/%s", profile), body, 60*time.Second)
}

// Geocode issues the text-search GET call, 30s timeout.
func (c *Client) Geocode(ctx context.Context, text string) (Response, error) {
	q := url.Values{}
	q.Set("text", text)
	q.Set("size", "1")
	return c.get(ctx, "/geocode/search", q, 30*time.Second)
}
