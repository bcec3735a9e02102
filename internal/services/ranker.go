package services

import (
	"math"
	"strconv"

	"travel-search-service/internal/domain"
)

// RankWeights blends normalized price and duration into the "recommended"
// desirability score. Weights are passed explicitly so the policy is
// swappable and testable in isolation.
type RankWeights struct {
	Price    float64 `yaml:"price"`
	Duration float64 `yaml:"duration"`
}

// Price weighted 1.5x more than duration.
var DefaultRankWeights = RankWeights{Price: 0.6, Duration: 0.4}

// OfferPrice extracts the grand total as a non-negative decimal.
// An unparsable or missing price degrades to 0.0 so one malformed upstream
// record cannot abort ranking for the whole batch.
func OfferPrice(offer *domain.Offer) float64 {
	p, err := strconv.ParseFloat(offer.Price.GrandTotal, 64)
	if err != nil || p < 0 {
		return 0.0
	}
	return p
}

// RankOffers selects the three representative offers from a batch:
//
//   - Cheapest: minimum price, first occurrence on ties.
//   - Direct: minimum price among zero-stop offers, nil when none exist.
//   - Recommended: maximum weighted desirability score over min-max
//     normalized price and duration, first occurrence on ties.
//
// An empty batch yields an all-nil selection. The returned pointers alias
// elements of the input slice.
func RankOffers(offers []domain.Offer, w RankWeights) domain.RankedSelection {
	if len(offers) == 0 {
		return domain.RankedSelection{}
	}

	var cheapest, direct *domain.Offer
	for i := range offers {
		o := &offers[i]
		if cheapest == nil || OfferPrice(o) < OfferPrice(cheapest) {
			cheapest = o
		}
		if CountStops(o) == 0 && (direct == nil || OfferPrice(o) < OfferPrice(direct)) {
			direct = o
		}
	}

	pMin, pMax := math.Inf(1), math.Inf(-1)
	dMin, dMax := math.Inf(1), math.Inf(-1)
	for i := range offers {
		p := OfferPrice(&offers[i])
		d := float64(TotalDurationMinutes(&offers[i]))
		pMin, pMax = math.Min(pMin, p), math.Max(pMax, p)
		dMin, dMax = math.Min(dMin, d), math.Max(dMax, d)
	}

	var recommended *domain.Offer
	bestScore := -1.0
	for i := range offers {
		o := &offers[i]
		pn := Normalize(OfferPrice(o), pMin, pMax)
		dn := Normalize(float64(TotalDurationMinutes(o)), dMin, dMax)
		score := w.Price*(1-pn) + w.Duration*(1-dn)
		if score > bestScore {
			recommended = o
			bestScore = score
		}
	}

	return domain.RankedSelection{
		Cheapest:    cheapest,
		Recommended: recommended,
		Direct:      direct,
	}
}

// FilterOffers drops offers exceeding the stop limit or, when a budget is
// given, whose per-passenger price exceeds it. paxTotal is expected to be
// pre-clamped to at least 1 by the caller.
func FilterOffers(offers []domain.Offer, maxStops int, budgetPerPax *float64, paxTotal int) []domain.Offer {
	kept := make([]domain.Offer, 0, len(offers))
	for i := range offers {
		o := &offers[i]
		if CountStops(o) > maxStops {
			continue
		}
		if budgetPerPax != nil && OfferPrice(o)/float64(paxTotal) > *budgetPerPax {
			continue
		}
		kept = append(kept, offers[i])
	}
	return kept
}

// ToLite builds the display projection of an offer. paxTotal is clamped to a
// minimum of 1 before the per-passenger division.
func ToLite(offer *domain.Offer, paxTotal int) domain.OfferLite {
	if paxTotal < 1 {
		paxTotal = 1
	}

	price := OfferPrice(offer)
	dur := TotalDurationMinutes(offer)

	carriers := []string{}
	legs := []domain.Leg{}
	for _, itin := range offer.Itineraries {
		segs := itin.Segments
		if len(segs) == 0 {
			continue
		}
		for _, s := range segs {
			if s.CarrierCode != "" && !containsString(carriers, s.CarrierCode) {
				carriers = append(carriers, s.CarrierCode)
			}
		}
		legs = append(legs, domain.Leg{
			From:  segs[0].Departure.IATACode,
			To:    segs[len(segs)-1].Arrival.IATACode,
			Dep:   segs[0].Departure.At,
			Arr:   segs[len(segs)-1].Arrival.At,
			Stops: len(segs) - 1,
		})
	}

	return domain.OfferLite{
		PriceTotal:        round2(price),
		PricePerPax:       round2(price / float64(paxTotal)),
		DurationTotalMin:  dur,
		DurationTotalHHMM: ToHHMM(dur),
		StopsMax:          CountStops(offer),
		Carriers:          carriers,
		Legs:              legs,
	}
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
