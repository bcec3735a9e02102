package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"travel-search-service/internal/api/dto"
	"travel-search-service/internal/ports"
	"travel-search-service/internal/services"
)

// ChatHandler turns a free-text travel request into a regular flight search
// via the query extractor.
type ChatHandler struct {
	Extractor ports.QueryExtractor
	Flights   ports.FlightProvider
	Weights   services.RankWeights
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if h.Extractor == nil {
		writeError(w, r, http.StatusServiceUnavailable, "chat extraction is not configured")
		return
	}

	var req dto.ChatRequest

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

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, r, http.StatusBadRequest, "message is required")
		return
	}

	q, err := h.Extractor.Extract(r.Context(), message)
	if err != nil {
		log.Printf("query extraction failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "could not interpret the request")
		return
	}

	services.ApplyQueryDefaults(&q)

	if q.OriginCity == "" || q.DestinationCity == "" {
		writeError(w, r, http.StatusBadRequest, "could not determine origin and destination from the message")
		return
	}

	result, err := services.SearchFlights(r.Context(), q, h.Flights, h.Weights)
	if err != nil {
		respondSearchError(w, r, err)
		return
	}

	res := dto.ChatResponse{
		Parsed:  q,
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
