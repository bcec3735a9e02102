package openmeteo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/platform/obs"
	"travel-search-service/internal/ports"
)

type climateResponse struct {
	Monthly struct {
		TemperatureMean  []*float64 `json:"temperature_2m_mean"`
		PrecipitationSum []*float64 `json:"precipitation_sum"`
	} `json:"monthly"`
}

// MonthlyClimate returns the 1991-2020 mean temperature and precipitation for
// a coordinate and month from the ERA5 climate model. Absent figures come
// back as nil pointers; the caller substitutes neutral suitability.
func (c *Client) MonthlyClimate(ctx context.Context, coord domain.Coordinates, month int) (_ ports.MonthlyClimate, err error) {
	defer obs.Time(ctx, "openmeteo.MonthlyClimate")(&err)

	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	query.Set("start_year", "1991")
	query.Set("end_year", "2020")
	query.Set("models", "ERA5")
	query.Set("month", strconv.Itoa(month))
	query.Set("temperature_2m_mean", "true")
	query.Set("precipitation_sum", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.climateURL+"?"+query.Encode(), nil)
	if err != nil {
		return ports.MonthlyClimate{}, fmt.Errorf("monthly climate: create request: %w", err)
	}

	var decoded climateResponse
	if err := c.get(req, "climate", &decoded); err != nil {
		return ports.MonthlyClimate{}, fmt.Errorf("monthly climate (%.3f, %.3f) month=%d: %w", coord.Lat, coord.Lon, month, err)
	}

	out := ports.MonthlyClimate{}
	if len(decoded.Monthly.TemperatureMean) > 0 {
		out.TempC = decoded.Monthly.TemperatureMean[0]
	}
	if len(decoded.Monthly.PrecipitationSum) > 0 {
		out.RainMM = decoded.Monthly.PrecipitationSum[0]
	}
	return out, nil
}
