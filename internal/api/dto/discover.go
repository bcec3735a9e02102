package dto

import "travel-search-service/internal/domain"

// DiscoverRequest is a SearchRequest without a destination: the service
// proposes destinations instead of searching a fixed route.
type DiscoverRequest struct {
	OriginCity      string             `json:"originCity"`
	DepartureDate   string             `json:"departureDate,omitempty"`
	ReturnDate      string             `json:"returnDate,omitempty"`
	Period          *PeriodRequest     `json:"period,omitempty"`
	Passengers      *PassengersRequest `json:"passengers,omitempty"`
	MaxStops        *int               `json:"maxStops,omitempty"`
	BudgetPerPaxEUR *float64           `json:"budgetPerPaxEUR,omitempty"`
}

type DiscoverQuery struct {
	OriginCity      string            `json:"originCity"`
	OriginIATA      string            `json:"originIATA"`
	DepartureDate   string            `json:"departureDate"`
	ReturnDate      string            `json:"returnDate"`
	Passengers      domain.Passengers `json:"passengers"`
	MaxStops        int               `json:"maxStops"`
	BudgetPerPaxEUR *float64          `json:"budgetPerPaxEUR,omitempty"`
	Month           int               `json:"month"`
}

type DiscoverResponse struct {
	Query   DiscoverQuery              `json:"query"`
	Results []domain.ScoredDestination `json:"results"`
}
