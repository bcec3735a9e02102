package ports

import (
	"context"

	"travel-search-service/internal/domain"
)

// Raw monthly climate figures for a coordinate. Either field may be absent
// when the climate model has no data; callers substitute neutral defaults.
type MonthlyClimate struct {
	TempC  *float64
	RainMM *float64
}

// Port: boundary to a city-name geocoding service.
type Geocoder interface {
	// Resolve a city name to coordinates. A nil result with nil error means
	// the city could not be geocoded (recoverable, not a failure).
	Geocode(ctx context.Context, city string) (*domain.Coordinates, error)
}

// Port: boundary to a historical climate data service.
type ClimateProvider interface {
	// Return mean temperature and precipitation for a coordinate and month.
	MonthlyClimate(ctx context.Context, coord domain.Coordinates, month int) (MonthlyClimate, error)
}
