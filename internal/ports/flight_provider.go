package ports

import (
	"context"
	"errors"

	"travel-search-service/internal/domain"
)

// ErrLocationNotFound reports that a city or location code could not be
// resolved by the provider. Callers map it to a validation failure.
var ErrLocationNotFound = errors.New("location not found")

// Parameters for a round-trip flight-offers search against the upstream
// provider. Dates are YYYY-MM-DD.
type OfferSearchRequest struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Children      int
	Infants       int
	Max           int
	TravelClass   string
}

// One destination suggested by the provider's inspiration search, with its
// indicative round-trip total price.
type InspirationHit struct {
	Destination string
	PriceTotal  float64
}

// Reference data for an airport or city location. PopularityScore, when
// present, is the provider's traveler-volume analytics score in [0,100].
type Location struct {
	IATACode        string
	Name            string
	CityName        string
	SubType         string
	PopularityScore *float64
}

// Port: boundary to the upstream flight-search provider.
type FlightProvider interface {
	// Resolve a free-text city name to its IATA code, preferring CITY matches.
	ResolveCity(ctx context.Context, name string) (string, error)

	// Retrieve raw flight offers for a round trip.
	SearchOffers(ctx context.Context, req OfferSearchRequest) ([]domain.Offer, error)

	// Suggest destination candidates from an origin, cheapest first,
	// truncated to limit.
	InspirationDestinations(ctx context.Context, origin, departureDate, returnDate string, limit int) ([]InspirationHit, error)

	// Look up reference data for a location code.
	LocationInfo(ctx context.Context, code string) (Location, error)

	// Autocomplete locations matching a keyword.
	SearchLocations(ctx context.Context, keyword string) ([]Location, error)
}
