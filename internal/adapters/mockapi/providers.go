package mockapi

import (
	"context"
	"fmt"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/ports"
)

// MockFlightProvider serves canned flight-provider data keyed the same way
// the live adapter is queried. Missing entries fail loudly so tests exercise
// the skip/error paths deliberately.
type MockFlightProvider struct {
	Cities       map[string]string         // city name -> IATA code
	Offers       map[string][]domain.Offer // "ORG|DST" -> offers
	Inspirations []ports.InspirationHit
	Locations    map[string]ports.Location
	Autocomplete map[string][]ports.Location
}

func (m *MockFlightProvider) ResolveCity(ctx context.Context, name string) (string, error) {
	code, ok := m.Cities[name]
	if !ok {
		return "", fmt.Errorf("resolve city %q: %w", name, ports.ErrLocationNotFound)
	}
	return code, nil
}

func (m *MockFlightProvider) SearchOffers(ctx context.Context, req ports.OfferSearchRequest) ([]domain.Offer, error) {
	offers, ok := m.Offers[req.Origin+"|"+req.Destination]
	if !ok {
		return nil, fmt.Errorf("no offers for %q -> %q", req.Origin, req.Destination)
	}
	return offers, nil
}

func (m *MockFlightProvider) InspirationDestinations(ctx context.Context, origin, departureDate, returnDate string, limit int) ([]ports.InspirationHit, error) {
	hits := m.Inspirations
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (m *MockFlightProvider) LocationInfo(ctx context.Context, code string) (ports.Location, error) {
	loc, ok := m.Locations[code]
	if !ok {
		return ports.Location{IATACode: code, Name: code}, nil
	}
	return loc, nil
}

func (m *MockFlightProvider) SearchLocations(ctx context.Context, keyword string) ([]ports.Location, error) {
	return m.Autocomplete[keyword], nil
}

// MockGeocoder resolves city names from a fixed map; unknown cities come back
// as (nil, nil), matching the live adapter's no-match contract.
type MockGeocoder struct {
	Coords map[string]domain.Coordinates
}

func (m *MockGeocoder) Geocode(ctx context.Context, city string) (*domain.Coordinates, error) {
	c, ok := m.Coords[city]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// MockClimate serves canned climate figures per coordinate.
type MockClimate struct {
	ByCoord map[domain.Coordinates]ports.MonthlyClimate
}

func (m *MockClimate) MonthlyClimate(ctx context.Context, coord domain.Coordinates, month int) (ports.MonthlyClimate, error) {
	mc, ok := m.ByCoord[coord]
	if !ok {
		return ports.MonthlyClimate{}, fmt.Errorf("no climate data for (%.3f, %.3f)", coord.Lat, coord.Lon)
	}
	return mc, nil
}

// MockExtractor returns a fixed parsed query (or error) for any message.
type MockExtractor struct {
	Query domain.SearchQuery
	Err   error
}

func (m *MockExtractor) Extract(ctx context.Context, message string) (domain.SearchQuery, error) {
	if m.Err != nil {
		return domain.SearchQuery{}, m.Err
	}
	return m.Query, nil
}
