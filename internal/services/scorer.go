package services

import (
	"math"
	"sort"

	"travel-search-service/internal/domain"
)

// ScoreWeights blends normalized price, climate suitability, and popularity
// into the destination composite score. The defaults sum to 1.0: price is the
// dominant negative factor, climate second, popularity a minor tiebreaker.
type ScoreWeights struct {
	Price      float64 `yaml:"price"`
	Climate    float64 `yaml:"climate"`
	Popularity float64 `yaml:"popularity"`
}

var DefaultScoreWeights = ScoreWeights{Price: 0.45, Climate: 0.35, Popularity: 0.20}

// DefaultTopDestinations limits how many scored destinations are returned.
const DefaultTopDestinations = 10

// Normalize scales x linearly into [0,1] over [lo, hi]. A degenerate range
// (identical or inverted bounds) carries no discriminating information and
// resolves to 0.5 for every value.
func Normalize(x, lo, hi float64) float64 {
	if hi <= lo {
		return 0.5
	}
	return (x - lo) / (hi - lo)
}

// ScoreDestinations computes the weighted composite score for each candidate,
// min-max normalizing the representative offer's total price across the batch,
// and returns the candidates sorted descending by score (stable on exact
// ties), truncated to topN. Scores are rounded to 4 decimals.
//
// Candidates are expected to arrive with climate and popularity already
// defaulted upstream; an empty batch simply yields an empty result.
func ScoreDestinations(candidates []domain.DestinationCandidate, w ScoreWeights, topN int) []domain.ScoredDestination {
	if len(candidates) == 0 {
		return []domain.ScoredDestination{}
	}

	priceMin, priceMax := math.Inf(1), math.Inf(-1)
	for i := range candidates {
		p := candidates[i].Offer.PriceTotal
		priceMin = math.Min(priceMin, p)
		priceMax = math.Max(priceMax, p)
	}

	scored := make([]domain.ScoredDestination, 0, len(candidates))
	for i := range candidates {
		c := candidates[i]
		priceNorm := Normalize(c.Offer.PriceTotal, priceMin, priceMax)
		composite := w.Price*(1-priceNorm) + w.Climate*c.Climate.SunScore + w.Popularity*c.Popularity
		scored = append(scored, domain.ScoredDestination{
			DestinationCandidate: c,
			Score:                round4(composite),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}

func round4(x float64) float64 {
	return math.Round(x*10000) / 10000
}
