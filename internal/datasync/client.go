// Package datasync keeps per-category map sources in step with the
// current viewport, issuing scoped fetches and suppressing stale
// responses.
package datasync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/jengzang/incident-map-go/internal/models"
)

// Client fetches density, diversity and metadata payloads from the
// incident API.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL (no trailing slash).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchDensity retrieves per-cell incident counts for one time window.
// scaled selects the alternate log-scaled source.
func (c *Client) FetchDensity(ctx context.Context, windowID, level int, b models.Bounds, scaled bool) ([]models.DataPoint, error) {
	path := "/api/density"
	if scaled {
		path = "/api/density-scaled"
	}
	q := boundsQuery(level, b)
	q.Set("time_window_id", strconv.Itoa(windowID))

	var wire []models.DensityPoint
	if err := c.getJSON(ctx, path, q, &wire); err != nil {
		return nil, err
	}

	points := make([]models.DataPoint, 0, len(wire))
	for _, p := range wire {
		points = append(points, models.DataPoint{
			Lon: p.Lon, Lat: p.Lat, Kind: models.KindDensity, Value: float64(p.Density),
		})
	}
	return points, nil
}

// FetchDiversity retrieves per-cell temporal-diversity scores for one
// radius group.
func (c *Client) FetchDiversity(ctx context.Context, groupID, level int, b models.Bounds) ([]models.DataPoint, error) {
	q := boundsQuery(level, b)
	q.Set("radius_group_id", strconv.Itoa(groupID))

	var wire []models.DiversityPoint
	if err := c.getJSON(ctx, "/api/diversity", q, &wire); err != nil {
		return nil, err
	}

	points := make([]models.DataPoint, 0, len(wire))
	for _, p := range wire {
		points = append(points, models.DataPoint{
			Lon: p.Lon, Lat: p.Lat, Kind: models.KindDiversity, Value: float64(p.Score),
		})
	}
	return points, nil
}

// FetchMetadata retrieves the optional aggregate descriptor. A 404 or a
// malformed body means "no metadata" and returns nil without error.
func (c *Client) FetchMetadata(ctx context.Context) (*models.Metadata, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/metadata", nil)
	if err != nil {
		return nil, fmt.Errorf("build metadata request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("metadata request failed: status %d: %s", resp.StatusCode, body)
	}

	var meta models.Metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		log.Printf("[Client] malformed metadata response, treating as absent: %v", err)
		return nil, nil
	}
	return &meta, nil
}

func boundsQuery(level int, b models.Bounds) url.Values {
	q := url.Values{}
	q.Set("level", strconv.Itoa(level))
	q.Set("min_lon", formatDeg(b.West))
	q.Set("min_lat", formatDeg(b.South))
	q.Set("max_lon", formatDeg(b.East))
	q.Set("max_lat", formatDeg(b.North))
	return q
}

func formatDeg(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// getJSON issues one GET and decodes a JSON array response. Non-2xx
// bodies are captured for the error message; nothing is retried here.
func (c *Client) getJSON(ctx context.Context, path string, q url.Values, out interface{}) error {
	reqID := uuid.NewString()
	u := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s (req %s): %w", path, reqID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("fetch %s (req %s): status %d: %s", path, reqID, resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s (req %s): %w", path, reqID, err)
	}

	log.Printf("[Client] %s req=%s took %v", path, reqID, time.Since(start))
	return nil
}
