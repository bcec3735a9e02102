package openmeteo

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"travel-search-service/internal/metrics"
)

// Client implements ports.Geocoder and ports.ClimateProvider against the
// Open-Meteo geocoding and climate APIs. Both are unauthenticated; a shared
// rate limiter keeps discovery-mode fan-out polite.
type Client struct {
	session    *http.Client
	geocodeURL string
	climateURL string
	limiter    *rate.Limiter
}

func NewClient(rps float64, burst int) *Client {
	return &Client{
		session:    &http.Client{Timeout: 12 * time.Second},
		geocodeURL: "https://geocoding-api.open-meteo.com/v1/search",
		climateURL: "https://climate-api.open-meteo.com/v1/climate",
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// get issues a rate-limited GET and decodes the JSON body into out.
func (c *Client) get(req *http.Request, operation string, out any) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("openmeteo", operation, "error").Inc()
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		metrics.UpstreamRequests.WithLabelValues("openmeteo", operation, "error").Inc()
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	metrics.UpstreamRequests.WithLabelValues("openmeteo", operation, "ok").Inc()
	return nil
}
