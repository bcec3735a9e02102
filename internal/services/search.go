package services

import (
	"context"
	"fmt"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/platform/obs"
	"travel-search-service/internal/ports"
)

// Maximum offers requested from the provider for a point-to-point search.
const searchOfferLimit = 50

// Outcome of a point-to-point flight search, carrying the resolved query
// facts alongside the ranked selection and filtering counters.
type SearchResult struct {
	OriginIATA      string
	DestinationIATA string
	DepartureDate   string
	ReturnDate      string
	Selection       domain.LiteSelection
	TotalCandidates int
	Kept            int
}

// SearchFlights runs the full point-to-point flow: resolve cities and dates,
// fetch offers, filter by stops and budget, rank, and project the selection
// for display. The flow degrades per-offer (defensive defaults) but fails as
// a whole when the upstream search itself fails.
func SearchFlights(
	ctx context.Context,
	q domain.SearchQuery,
	flights ports.FlightProvider,
	w RankWeights,
) (_ *SearchResult, err error) {
	defer obs.Time(ctx, "services.SearchFlights")(&err)

	origin, err := flights.ResolveCity(ctx, q.OriginCity)
	if err != nil {
		return nil, fmt.Errorf("search flights: resolve origin %q: %w", q.OriginCity, err)
	}

	dest, err := flights.ResolveCity(ctx, q.DestinationCity)
	if err != nil {
		return nil, fmt.Errorf("search flights: resolve destination %q: %w", q.DestinationCity, err)
	}

	dep, ret, err := ResolveDates(&q)
	if err != nil {
		return nil, fmt.Errorf("search flights: %w", err)
	}

	offers, err := flights.SearchOffers(ctx, ports.OfferSearchRequest{
		Origin:        origin,
		Destination:   dest,
		DepartureDate: dep,
		ReturnDate:    ret,
		Adults:        q.Passengers.Adults,
		Children:      q.Passengers.Children,
		Infants:       q.Passengers.Infants,
		Max:           searchOfferLimit,
		TravelClass:   "ECONOMY",
	})
	if err != nil {
		return nil, fmt.Errorf("search flights: fetch offers: %w", err)
	}

	paxTotal := q.Passengers.Total()
	kept := FilterOffers(offers, q.MaxStops, q.BudgetPerPax, paxTotal)
	ranked := RankOffers(kept, w)

	return &SearchResult{
		OriginIATA:      origin,
		DestinationIATA: dest,
		DepartureDate:   dep,
		ReturnDate:      ret,
		Selection:       liteSelection(ranked, paxTotal),
		TotalCandidates: len(offers),
		Kept:            len(kept),
	}, nil
}

// liteSelection projects each populated slot of a ranked selection.
func liteSelection(sel domain.RankedSelection, paxTotal int) domain.LiteSelection {
	lite := func(o *domain.Offer) *domain.OfferLite {
		if o == nil {
			return nil
		}
		l := ToLite(o, paxTotal)
		return &l
	}

	return domain.LiteSelection{
		Cheapest:    lite(sel.Cheapest),
		Recommended: lite(sel.Recommended),
		Direct:      lite(sel.Direct),
	}
}
