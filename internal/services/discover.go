package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/platform/obs"
	"travel-search-service/internal/ports"
)

const (
	// Destination suggestions requested from the inspiration search.
	inspirationLimit = 25
	// Offers fetched per candidate destination; smaller than the
	// point-to-point limit because only one pick survives per candidate.
	discoverOfferLimit = 30
	// Concurrent candidate enrichments (each one issues several upstream calls).
	enrichWorkers = 5

	// Neutral popularity when the provider carries no traveler analytics.
	defaultPopularity = 0.5
)

var (
	// ErrNoInspiration reports that the provider's inspiration search yielded
	// nothing; callers surface it as an upstream availability problem.
	ErrNoInspiration = errors.New("inspiration search returned no destinations")

	// ErrNoDestinations reports that no candidate survived filtering and
	// enrichment; callers surface it as a not-found outcome.
	ErrNoDestinations = errors.New("no destination matched the search criteria")
)

// Outcome of discovery mode: the resolved query facts plus the scored
// destination list, sorted descending by score and truncated to top N.
type DiscoverResult struct {
	OriginIATA    string
	DepartureDate string
	ReturnDate    string
	Month         int
	Destinations  []domain.ScoredDestination
}

// DiscoverDestinations scores candidate destinations for a traveler with no
// fixed destination: inspiration candidates from the origin are each enriched
// with popularity, monthly climate suitability, and a representative ranked
// offer, then blended into a composite score.
//
// Enrichment is best-effort per candidate: a candidate failing any upstream
// step, or left with no offers after filtering, is skipped rather than
// aborting the batch.
func DiscoverDestinations(
	ctx context.Context,
	q domain.SearchQuery,
	flights ports.FlightProvider,
	geo ports.Geocoder,
	climate ports.ClimateProvider,
	rankW RankWeights,
	scoreW ScoreWeights,
	topN int,
) (_ *DiscoverResult, err error) {
	defer obs.Time(ctx, "services.DiscoverDestinations")(&err)

	origin, err := flights.ResolveCity(ctx, q.OriginCity)
	if err != nil {
		return nil, fmt.Errorf("discover: resolve origin %q: %w", q.OriginCity, err)
	}

	dep, ret, err := ResolveDates(&q)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	month, err := DepartureMonth(dep)
	if err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	hits, err := flights.InspirationDestinations(ctx, origin, dep, ret, inspirationLimit)
	if err != nil {
		return nil, fmt.Errorf("discover: inspiration search from %q: %w", origin, err)
	}
	if len(hits) == 0 {
		return nil, ErrNoInspiration
	}

	// Enrich candidates concurrently but keep the provider's cheapest-first
	// order so tie-breaks in scoring stay deterministic.
	candidates := make([]*domain.DestinationCandidate, len(hits))
	sem := make(chan struct{}, enrichWorkers)
	var wg sync.WaitGroup

	for i := range hits {
		wg.Add(1)
		go func(idx int, hit ports.InspirationHit) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if ctx.Err() != nil {
				return
			}
			candidates[idx] = enrichCandidate(ctx, hit, origin, dep, ret, q, flights, geo, climate, month, rankW)
		}(i, hits[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover: %w", err)
	}

	enriched := make([]domain.DestinationCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c != nil {
			enriched = append(enriched, *c)
		}
	}
	if len(enriched) == 0 {
		return nil, ErrNoDestinations
	}

	return &DiscoverResult{
		OriginIATA:    origin,
		DepartureDate: dep,
		ReturnDate:    ret,
		Month:         month,
		Destinations:  ScoreDestinations(enriched, scoreW, topN),
	}, nil
}

// enrichCandidate resolves one inspiration hit into a scored-ready candidate,
// or nil when the destination has to be skipped. Popularity and climate
// degrade to neutral defaults; a failed or empty offer search is terminal for
// the candidate only.
func enrichCandidate(
	ctx context.Context,
	hit ports.InspirationHit,
	origin, dep, ret string,
	q domain.SearchQuery,
	flights ports.FlightProvider,
	geo ports.Geocoder,
	climate ports.ClimateProvider,
	month int,
	rankW RankWeights,
) *domain.DestinationCandidate {
	displayName := hit.Destination
	popularity := defaultPopularity

	info, err := flights.LocationInfo(ctx, hit.Destination)
	if err != nil {
		log.Printf("discover: location info for %q failed: %v", hit.Destination, err)
	} else {
		if info.CityName != "" {
			displayName = info.CityName
		} else if info.Name != "" {
			displayName = info.Name
		}
		if info.PopularityScore != nil {
			popularity = *info.PopularityScore / 100.0
		}
	}

	summary := domain.ClimateSummary{SunScore: 0.5}
	coord, err := geo.Geocode(ctx, displayName)
	if err != nil {
		log.Printf("discover: geocode %q failed: %v", displayName, err)
	} else if coord != nil {
		mc, err := climate.MonthlyClimate(ctx, *coord, month)
		if err != nil {
			log.Printf("discover: climate for %q failed: %v", displayName, err)
		} else {
			summary = domain.ClimateSummary{
				TempC:    mc.TempC,
				RainMM:   mc.RainMM,
				SunScore: ClimateSuitability(mc.TempC, mc.RainMM),
			}
		}
	}

	offers, err := flights.SearchOffers(ctx, ports.OfferSearchRequest{
		Origin:        origin,
		Destination:   hit.Destination,
		DepartureDate: dep,
		ReturnDate:    ret,
		Adults:        q.Passengers.Adults,
		Children:      q.Passengers.Children,
		Infants:       q.Passengers.Infants,
		Max:           discoverOfferLimit,
		TravelClass:   "ECONOMY",
	})
	if err != nil {
		log.Printf("discover: offers for %q failed: %v", hit.Destination, err)
		return nil
	}

	paxTotal := q.Passengers.Total()
	kept := FilterOffers(offers, q.MaxStops, q.BudgetPerPax, paxTotal)
	if len(kept) == 0 {
		return nil
	}

	ranked := RankOffers(kept, rankW)
	pick := ranked.Cheapest
	if pick == nil {
		pick = ranked.Recommended
	}
	if pick == nil {
		pick = ranked.Direct
	}
	if pick == nil {
		return nil
	}

	return &domain.DestinationCandidate{
		City:       displayName,
		IATACity:   hit.Destination,
		Offer:      ToLite(pick, paxTotal),
		Climate:    summary,
		Popularity: popularity,
	}
}
