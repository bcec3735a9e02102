package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"travel-search-service/internal/platform/obs"
	"travel-search-service/internal/ports"
)

type locationsResponse struct {
	Data []struct {
		IATACode string `json:"iataCode"`
		Name     string `json:"name"`
		SubType  string `json:"subType"`
		Address  struct {
			CityName string `json:"cityName"`
		} `json:"address"`
		Analytics struct {
			Travelers struct {
				Score *float64 `json:"score"`
			} `json:"travelers"`
		} `json:"analytics"`
	} `json:"data"`
}

func (c *Client) searchReferenceLocations(ctx context.Context, operation string, query url.Values) (locationsResponse, error) {
	endpoint := c.host + "/v1/reference-data/locations"

	resp, err := c.doWithRetry(ctx, operation, func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, endpoint, query)
	})
	if err != nil {
		return locationsResponse{}, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded locationsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return locationsResponse{}, fmt.Errorf("decode locations response: %w", err)
	}
	return decoded, nil
}

// ResolveCity resolves a free-text city name to an IATA code, preferring
// CITY entries over plain airports.
func (c *Client) ResolveCity(ctx context.Context, name string) (_ string, err error) {
	defer obs.Time(ctx, "amadeus.ResolveCity")(&err)

	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("resolve city: %w", ports.ErrLocationNotFound)
	}

	query := url.Values{}
	query.Set("subType", "CITY,AIRPORT")
	query.Set("keyword", name)

	decoded, err := c.searchReferenceLocations(ctx, "resolve_city", query)
	if err != nil {
		return "", fmt.Errorf("resolve city %q: %w", name, err)
	}
	if len(decoded.Data) == 0 {
		return "", fmt.Errorf("resolve city %q: %w", name, ports.ErrLocationNotFound)
	}

	for _, x := range decoded.Data {
		if x.SubType == "CITY" {
			return x.IATACode, nil
		}
	}
	return decoded.Data[0].IATACode, nil
}

// LocationInfo looks up reference data for a location code, sorted by
// traveler volume so the analytics score of the best match comes back.
// An unknown code degrades to a bare Location rather than failing discovery.
func (c *Client) LocationInfo(ctx context.Context, code string) (_ ports.Location, err error) {
	defer obs.Time(ctx, "amadeus.LocationInfo")(&err)

	query := url.Values{}
	query.Set("subType", "CITY,AIRPORT")
	query.Set("keyword", code)
	query.Set("sort", "analytics.travelers.score")

	decoded, err := c.searchReferenceLocations(ctx, "location_info", query)
	if err != nil {
		return ports.Location{}, fmt.Errorf("location info %q: %w", code, err)
	}
	if len(decoded.Data) == 0 {
		return ports.Location{IATACode: code, Name: code}, nil
	}

	x := decoded.Data[0]
	return ports.Location{
		IATACode:        x.IATACode,
		Name:            x.Name,
		CityName:        x.Address.CityName,
		SubType:         x.SubType,
		PopularityScore: x.Analytics.Travelers.Score,
	}, nil
}

// SearchLocations autocompletes locations matching a keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword string) (_ []ports.Location, err error) {
	defer obs.Time(ctx, "amadeus.SearchLocations")(&err)

	query := url.Values{}
	query.Set("subType", "CITY,AIRPORT")
	query.Set("keyword", keyword)

	decoded, err := c.searchReferenceLocations(ctx, "search_locations", query)
	if err != nil {
		return nil, fmt.Errorf("search locations %q: %w", keyword, err)
	}

	out := make([]ports.Location, 0, len(decoded.Data))
	for _, x := range decoded.Data {
		out = append(out, ports.Location{
			IATACode: x.IATACode,
			Name:     x.Name,
			CityName: x.Address.CityName,
			SubType:  x.SubType,
		})
	}
	return out, nil
}
