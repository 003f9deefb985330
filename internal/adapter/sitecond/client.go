// Package sitecond provides a Vs30 lookup client backed by a site-conditions
// HTTP service, plus a TTL cache decorator.
package sitecond

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/seismolab/vrancea-gmm/internal/gmm"
	"github.com/seismolab/vrancea-gmm/internal/observability"
)

// Client implements gmm.SiteConditionsProvider against a site-conditions
// service exposing GET /v1/vs30?lat=..&lon=..
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates a site-conditions client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: metrics,
	}
}

// Vs30 fetches the time-averaged shear-wave velocity for a coordinate.
func (c *Client) Vs30(ctx context.Context, lat, lon float64) (gmm.Vs30Result, error) {
	params := url.Values{
		"lat": {fmt.Sprintf("%.6f", lat)},
		"lon": {fmt.Sprintf("%.6f", lon)},
	}
	fullURL := c.baseURL + "/v1/vs30?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return gmm.Vs30Result{}, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.SiteCondAPIDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.SiteCondRequests.WithLabelValues("error").Inc()
		return gmm.Vs30Result{}, fmt.Errorf("vs30 request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.metrics.SiteCondRequests.WithLabelValues("error").Inc()
		return gmm.Vs30Result{}, fmt.Errorf("site-conditions API error: status %d: %s", resp.StatusCode, body)
	}

	var vsResp response
	if err := json.NewDecoder(resp.Body).Decode(&vsResp); err != nil {
		c.metrics.SiteCondRequests.WithLabelValues("error").Inc()
		return gmm.Vs30Result{}, fmt.Errorf("decode response: %w", err)
	}

	if vsResp.Vs30 <= 0 {
		c.metrics.SiteCondRequests.WithLabelValues("empty").Inc()
		c.logger.Warn("no vs30 available for coordinate", "lat", lat, "lon", lon)
		return gmm.Vs30Result{}, fmt.Errorf("no vs30 for (%.4f, %.4f)", lat, lon)
	}

	c.metrics.SiteCondRequests.WithLabelValues("success").Inc()
	return gmm.Vs30Result{Vs30: vsResp.Vs30, Source: gmm.Vs30SourceProvider}, nil
}

// Site-conditions API response types.

type response struct {
	Vs30   float64 `json:"vs30"`
	Method string  `json:"method"`
}
