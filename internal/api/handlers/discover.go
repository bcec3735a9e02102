package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"travel-search-service/internal/api/dto"
	"travel-search-service/internal/domain"
	"travel-search-service/internal/ports"
	"travel-search-service/internal/services"
)

// DiscoverHandler scores candidate destinations for travelers with no fixed
// destination.
type DiscoverHandler struct {
	Flights      ports.FlightProvider
	Geo          ports.Geocoder
	Climate      ports.ClimateProvider
	RankWeights  services.RankWeights
	ScoreWeights services.ScoreWeights
	TopN         int
}

func (h *DiscoverHandler) Discover(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.DiscoverRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if strings.TrimSpace(req.OriginCity) == "" {
		writeError(w, r, http.StatusBadRequest, "originCity is required")
		return
	}

	q := domain.SearchQuery{
		OriginCity:    strings.TrimSpace(req.OriginCity),
		DepartureDate: req.DepartureDate,
		ReturnDate:    req.ReturnDate,
		Passengers:    domain.Passengers{Adults: 1},
		MaxStops:      1,
		BudgetPerPax:  req.BudgetPerPaxEUR,
	}
	if req.Period != nil {
		q.Period = &domain.Period{Start: req.Period.Start, DurationDays: req.Period.DurationDays}
	}
	if req.Passengers != nil {
		q.Passengers = domain.Passengers{
			Adults:   req.Passengers.Adults,
			Children: req.Passengers.Children,
			Infants:  req.Passengers.Infants,
		}
	}
	if req.MaxStops != nil {
		q.MaxStops = *req.MaxStops
	}

	result, err := services.DiscoverDestinations(
		r.Context(), q,
		h.Flights, h.Geo, h.Climate,
		h.RankWeights, h.ScoreWeights, h.TopN,
	)
	if err != nil {
		switch {
		case errors.Is(err, ports.ErrLocationNotFound):
			writeError(w, r, http.StatusBadRequest, "unknown origin city")
		case errors.Is(err, services.ErrDatesUnresolvable):
			writeError(w, r, http.StatusBadRequest, "departureDate/returnDate or period.start+durationDays required")
		case errors.Is(err, services.ErrNoInspiration):
			writeError(w, r, http.StatusBadGateway, "destination inspiration is not available")
		case errors.Is(err, services.ErrNoDestinations):
			writeError(w, r, http.StatusNotFound, "no destination matched the criteria")
		default:
			log.Printf("discover failed: %v", err)
			writeError(w, r, http.StatusBadGateway, "destination discovery failed")
		}
		return
	}

	res := dto.DiscoverResponse{
		Query: dto.DiscoverQuery{
			OriginCity:      q.OriginCity,
			OriginIATA:      result.OriginIATA,
			DepartureDate:   result.DepartureDate,
			ReturnDate:      result.ReturnDate,
			Passengers:      q.Passengers,
			MaxStops:        q.MaxStops,
			BudgetPerPaxEUR: q.BudgetPerPax,
			Month:           result.Month,
		},
		Results: result.Destinations,
	}

	writeJSON(w, r, http.StatusOK, res)
}
