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

// SearchHandler runs structured point-to-point flight searches.
type SearchHandler struct {
	Flights ports.FlightProvider
	Weights services.RankWeights
}

func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.SearchRequest

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
	if strings.TrimSpace(req.DestinationCity) == "" {
		writeError(w, r, http.StatusBadRequest, "destinationCity is required")
		return
	}

	q := queryFromSearchRequest(req)

	result, err := services.SearchFlights(r.Context(), q, h.Flights, h.Weights)
	if err != nil {
		respondSearchError(w, r, err)
		return
	}

	res := dto.SearchResponse{
		Results: result.Selection,
		Meta: dto.SearchMeta{
			Searched: dto.SearchedQuery{
				OriginCity:      q.OriginCity,
				DestinationCity: q.DestinationCity,
				OriginIATA:      result.OriginIATA,
				DestinationIATA: result.DestinationIATA,
				DepartureDate:   result.DepartureDate,
				ReturnDate:      result.ReturnDate,
				Passengers:      q.Passengers,
				MaxStops:        q.MaxStops,
				BudgetPerPaxEUR: q.BudgetPerPax,
			},
			TotalCandidates: result.TotalCandidates,
			Kept:            result.Kept,
		},
	}

	writeJSON(w, r, http.StatusOK, res)
}

// queryFromSearchRequest maps the payload to a domain query, applying the
// payload-level defaults (1 adult, one allowed stop).
func queryFromSearchRequest(req dto.SearchRequest) domain.SearchQuery {
	q := domain.SearchQuery{
		OriginCity:      strings.TrimSpace(req.OriginCity),
		DestinationCity: strings.TrimSpace(req.DestinationCity),
		DepartureDate:   req.DepartureDate,
		ReturnDate:      req.ReturnDate,
		Passengers:      domain.Passengers{Adults: 1},
		MaxStops:        1,
		BudgetPerPax:    req.BudgetPerPaxEUR,
		FlexDays:        req.FlexDays,
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
	return q
}

// respondSearchError maps search-flow failures onto HTTP statuses:
// unresolvable inputs are the caller's problem, everything else is ours.
func respondSearchError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ports.ErrLocationNotFound):
		writeError(w, r, http.StatusBadRequest, "unknown origin or destination city")
	case errors.Is(err, services.ErrDatesUnresolvable):
		writeError(w, r, http.StatusBadRequest, "departureDate/returnDate or period.start+durationDays required")
	default:
		log.Printf("flight search failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "flight search failed")
	}
}
