// Package oracle provides clients for the upstream base terrain generator.
// The generator itself is an opaque collaborator; this package only fetches
// per-coordinate samples from it.
package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/LuminariMUD/wildeditor-sub001/internal/httputil"
	"github.com/LuminariMUD/wildeditor-sub001/internal/wilderness"
)

// Client fetches base terrain samples over HTTP from the generator service.
// Any transport or decode failure surfaces as ErrUpstreamUnavailable so the
// batch evaluator fails the whole batch instead of substituting defaults.
type Client struct {
	http    httputil.HTTPClient
	baseURL string
}

// NewClient builds an oracle client for the generator at baseURL. A nil
// HTTPClient falls back to the standard client.
func NewClient(hc httputil.HTTPClient, baseURL string) *Client {
	if hc == nil {
		hc = httputil.NewStandardClient(nil)
	}
	return &Client{http: hc, baseURL: baseURL}
}

// SampleBaseTerrain fetches the base terrain at p.
func (c *Client) SampleBaseTerrain(ctx context.Context, p wilderness.Coordinate) (wilderness.BaseTerrainSample, error) {
	q := url.Values{}
	q.Set("x", strconv.Itoa(p.X))
	q.Set("y", strconv.Itoa(p.Y))
	reqURL := c.baseURL + "/terrain?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return wilderness.BaseTerrainSample{}, fmt.Errorf("build oracle request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return wilderness.BaseTerrainSample{}, ctx.Err()
		}
		return wilderness.BaseTerrainSample{}, fmt.Errorf("oracle fetch %s: %v: %w", p, err, wilderness.ErrUpstreamUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return wilderness.BaseTerrainSample{}, fmt.Errorf("oracle fetch %s: status %d: %w", p, resp.StatusCode, wilderness.ErrUpstreamUnavailable)
	}

	var sample wilderness.BaseTerrainSample
	if err := json.NewDecoder(resp.Body).Decode(&sample); err != nil {
		return wilderness.BaseTerrainSample{}, fmt.Errorf("decode oracle response for %s: %v: %w", p, err, wilderness.ErrUpstreamUnavailable)
	}
	return sample, nil
}

// Fixture is a deterministic in-memory oracle for tests and dev mode. Lookups
// miss to Default, so any coordinate resolves.
type Fixture struct {
	Samples map[wilderness.Coordinate]wilderness.BaseTerrainSample
	Default wilderness.BaseTerrainSample
}

// SampleBaseTerrain returns the fixture sample for p, or Default.
func (f *Fixture) SampleBaseTerrain(_ context.Context, p wilderness.Coordinate) (wilderness.BaseTerrainSample, error) {
	if s, ok := f.Samples[p]; ok {
		return s, nil
	}
	return f.Default, nil
}
