package services_test

import (
	"context"
	"errors"
	"testing"

	"travel-search-service/internal/adapters/mockapi"
	"travel-search-service/internal/domain"
	"travel-search-service/internal/ports"
	"travel-search-service/internal/services"
)

func fp(v float64) *float64 { return &v }

func discoverFixture() (*mockapi.MockFlightProvider, *mockapi.MockGeocoder, *mockapi.MockClimate) {
	flights := &mockapi.MockFlightProvider{
		Cities: map[string]string{"Paris": "PAR"},
		Offers: map[string][]domain.Offer{
			"PAR|BCN": {offer("b1", "80.00", 0, "PT2H")},
			"PAR|LIS": {offer("l1", "120.00", 1, "PT5H")},
			"PAR|OSL": {offer("o1", "95.00", 0, "PT2H30M")},
		},
		Inspirations: []ports.InspirationHit{
			{Destination: "BCN", PriceTotal: 80},
			{Destination: "LIS", PriceTotal: 95},
			{Destination: "OSL", PriceTotal: 95},
		},
		Locations: map[string]ports.Location{
			"BCN": {IATACode: "BCN", CityName: "Barcelona", PopularityScore: fp(90)},
			"LIS": {IATACode: "LIS", CityName: "Lisbon", PopularityScore: fp(70)},
			// OSL has no analytics record and falls back to defaults.
		},
	}

	geo := &mockapi.MockGeocoder{Coords: map[string]domain.Coordinates{
		"Barcelona": {Lat: 41.39, Lon: 2.17},
		"Lisbon":    {Lat: 38.72, Lon: -9.14},
	}}

	climate := &mockapi.MockClimate{ByCoord: map[domain.Coordinates]ports.MonthlyClimate{
		{Lat: 41.39, Lon: 2.17}:  {TempC: fp(26.0), RainMM: fp(40.0)},
		{Lat: 38.72, Lon: -9.14}: {TempC: fp(24.0), RainMM: fp(10.0)},
	}}

	return flights, geo, climate
}

func discoverQuery() domain.SearchQuery {
	return domain.SearchQuery{
		OriginCity:    "Paris",
		DepartureDate: "2026-07-10",
		ReturnDate:    "2026-07-17",
		Passengers:    domain.Passengers{Adults: 1},
		MaxStops:      1,
	}
}

func TestDiscoverDestinations(t *testing.T) {
	flights, geo, climate := discoverFixture()

	res, err := services.DiscoverDestinations(
		context.Background(), discoverQuery(),
		flights, geo, climate,
		services.DefaultRankWeights, services.DefaultScoreWeights, 10,
	)
	if err != nil {
		t.Fatalf("DiscoverDestinations: %v", err)
	}

	if res.OriginIATA != "PAR" {
		t.Errorf("origin = %s, want PAR", res.OriginIATA)
	}
	if res.Month != 7 {
		t.Errorf("month = %d, want 7", res.Month)
	}
	if len(res.Destinations) != 3 {
		t.Fatalf("destinations = %d, want 3", len(res.Destinations))
	}

	// Barcelona is cheapest, most popular, and has fine July weather.
	if res.Destinations[0].City != "Barcelona" {
		t.Errorf("top destination = %s, want Barcelona", res.Destinations[0].City)
	}
	for i := 1; i < len(res.Destinations); i++ {
		if res.Destinations[i].Score > res.Destinations[i-1].Score {
			t.Errorf("scores not descending at %d", i)
		}
	}

	// OSL had no geocode match and no analytics: neutral defaults.
	for _, d := range res.Destinations {
		if d.IATACity == "OSL" {
			if d.City != "OSL" {
				t.Errorf("OSL display name = %s, want the raw code", d.City)
			}
			if d.Popularity != 0.5 {
				t.Errorf("OSL popularity = %v, want neutral 0.5", d.Popularity)
			}
			if d.Climate.SunScore != 0.5 {
				t.Errorf("OSL sun score = %v, want neutral 0.5", d.Climate.SunScore)
			}
		}
	}
}

func TestDiscoverSkipsFailingCandidates(t *testing.T) {
	flights, geo, climate := discoverFixture()
	// LIS offers disappear upstream; the candidate is skipped, not fatal.
	delete(flights.Offers, "PAR|LIS")

	res, err := services.DiscoverDestinations(
		context.Background(), discoverQuery(),
		flights, geo, climate,
		services.DefaultRankWeights, services.DefaultScoreWeights, 10,
	)
	if err != nil {
		t.Fatalf("DiscoverDestinations: %v", err)
	}
	if len(res.Destinations) != 2 {
		t.Fatalf("destinations = %d, want 2 after skipping LIS", len(res.Destinations))
	}
	for _, d := range res.Destinations {
		if d.IATACity == "LIS" {
			t.Error("LIS should have been skipped")
		}
	}
}

func TestDiscoverNoInspiration(t *testing.T) {
	flights, geo, climate := discoverFixture()
	flights.Inspirations = nil

	_, err := services.DiscoverDestinations(
		context.Background(), discoverQuery(),
		flights, geo, climate,
		services.DefaultRankWeights, services.DefaultScoreWeights, 10,
	)
	if !errors.Is(err, services.ErrNoInspiration) {
		t.Fatalf("err = %v, want ErrNoInspiration", err)
	}
}

func TestDiscoverNoSurvivors(t *testing.T) {
	flights, geo, climate := discoverFixture()
	flights.Offers = map[string][]domain.Offer{}

	_, err := services.DiscoverDestinations(
		context.Background(), discoverQuery(),
		flights, geo, climate,
		services.DefaultRankWeights, services.DefaultScoreWeights, 10,
	)
	if !errors.Is(err, services.ErrNoDestinations) {
		t.Fatalf("err = %v, want ErrNoDestinations", err)
	}
}

func TestDiscoverBudgetFilter(t *testing.T) {
	flights, geo, climate := discoverFixture()

	q := discoverQuery()
	budget := 100.0
	q.BudgetPerPax = &budget

	res, err := services.DiscoverDestinations(
		context.Background(), q,
		flights, geo, climate,
		services.DefaultRankWeights, services.DefaultScoreWeights, 10,
	)
	if err != nil {
		t.Fatalf("DiscoverDestinations: %v", err)
	}
	// The 120.00 LIS offer exceeds the budget; BCN and OSL stay.
	if len(res.Destinations) != 2 {
		t.Fatalf("destinations = %d, want 2 within budget", len(res.Destinations))
	}
}
