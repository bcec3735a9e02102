package dto

import "travel-search-service/internal/domain"

type PeriodRequest struct {
	Start        string `json:"start"`
	DurationDays int    `json:"durationDays"`
}

type PassengersRequest struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// SearchRequest accepts either exact dates or a period. Optional fields are
// pointers so an omitted value can be told apart from an explicit zero.
type SearchRequest struct {
	OriginCity      string             `json:"originCity"`
	DestinationCity string             `json:"destinationCity"`
	DepartureDate   string             `json:"departureDate,omitempty"`
	ReturnDate      string             `json:"returnDate,omitempty"`
	Period          *PeriodRequest     `json:"period,omitempty"`
	Passengers      *PassengersRequest `json:"passengers,omitempty"`
	MaxStops        *int               `json:"maxStops,omitempty"`
	BudgetPerPaxEUR *float64           `json:"budgetPerPaxEUR,omitempty"`
	FlexDays        int                `json:"flexDays,omitempty"`
}

// SearchedQuery echoes the fully resolved search facts back to the caller.
type SearchedQuery struct {
	OriginCity      string            `json:"originCity"`
	DestinationCity string            `json:"destinationCity,omitempty"`
	OriginIATA      string            `json:"originIATA"`
	DestinationIATA string            `json:"destinationIATA,omitempty"`
	DepartureDate   string            `json:"departureDate"`
	ReturnDate      string            `json:"returnDate"`
	Passengers      domain.Passengers `json:"passengers"`
	MaxStops        int               `json:"maxStops"`
	BudgetPerPaxEUR *float64          `json:"budgetPerPaxEUR,omitempty"`
}

type SearchMeta struct {
	Searched        SearchedQuery `json:"searched"`
	TotalCandidates int           `json:"totalCandidates"`
	Kept            int           `json:"kept"`
}

type SearchResponse struct {
	Results domain.LiteSelection `json:"results"`
	Meta    SearchMeta           `json:"meta"`
}
