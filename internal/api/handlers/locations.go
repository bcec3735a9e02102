package handlers

import (
	"log"
	"net/http"
	"strings"

	"travel-search-service/internal/api/dto"
	"travel-search-service/internal/ports"
)

// LocationHandler exposes location autocomplete backed by the flight
// provider's reference data.
type LocationHandler struct {
	Flights ports.FlightProvider
}

// Queries shorter than this return an empty list without an upstream call.
const minKeywordLength = 2

func (h *LocationHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	keyword := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(keyword) < minKeywordLength {
		writeJSON(w, r, http.StatusOK, dto.ListLocationsResponse{Data: []dto.LocationResponse{}})
		return
	}

	locations, err := h.Flights.SearchLocations(r.Context(), keyword)
	if err != nil {
		log.Printf("location search failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "location search failed")
		return
	}

	res := dto.ListLocationsResponse{Data: make([]dto.LocationResponse, 0, len(locations))}
	for _, l := range locations {
		res.Data = append(res.Data, dto.LocationResponse{
			IATACode: l.IATACode,
			Name:     l.Name,
			CityName: l.CityName,
			SubType:  l.SubType,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
