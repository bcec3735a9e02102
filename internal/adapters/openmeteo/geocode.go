package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/platform/obs"
)

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a city name to coordinates using the best match.
// No match yields (nil, nil): an un-geocodable city is a recoverable gap,
// not a failure.
func (c *Client) Geocode(ctx context.Context, city string) (_ *domain.Coordinates, err error) {
	defer obs.Time(ctx, "openmeteo.Geocode")(&err)

	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")
	query.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.geocodeURL+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode %q: create request: %w", city, err)
	}

	var decoded geocodeResponse
	if err := c.get(req, "geocode", &decoded); err != nil {
		return nil, fmt.Errorf("geocode %q: %w", city, err)
	}

	if len(decoded.Results) == 0 {
		return nil, nil
	}

	return &domain.Coordinates{
		Lat: decoded.Results[0].Latitude,
		Lon: decoded.Results[0].Longitude,
	}, nil
}
