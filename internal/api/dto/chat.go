package dto

import "travel-search-service/internal/domain"

type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries the extracted query alongside the regular search
// results so clients can show what the assistant understood.
type ChatResponse struct {
	Parsed  domain.SearchQuery   `json:"parsed"`
	Results domain.LiteSelection `json:"results"`
	Meta    SearchMeta           `json:"meta"`
}

type LocationResponse struct {
	IATACode string `json:"iataCode"`
	Name     string `json:"name"`
	CityName string `json:"cityName,omitempty"`
	SubType  string `json:"subType,omitempty"`
}

type ListLocationsResponse struct {
	Data []LocationResponse `json:"data"`
}
