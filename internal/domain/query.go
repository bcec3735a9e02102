package domain

// Passenger counts for a search. Components are summed by Total; the floor of
// one mirrors the upstream contract where passenger data may be absent or zero.
type Passengers struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// Total returns the passenger count used for per-passenger pricing,
// clamped to a minimum of 1.
func (p Passengers) Total() int {
	total := p.Adults + p.Children + p.Infants
	if total < 1 {
		return 1
	}
	return total
}

// A travel window expressed as a start date (YYYY-MM-DD) plus a trip length.
type Period struct {
	Start        string `json:"start"`
	DurationDays int    `json:"durationDays"`
}

// SearchQuery is the structured flight-search request produced either directly
// from the API payload or by the free-text extractor. Dates may be given
// exactly or via Period; ResolveDates in the service layer reconciles them.
type SearchQuery struct {
	OriginCity      string     `json:"originCity"`
	DestinationCity string     `json:"destinationCity,omitempty"`
	DepartureDate   string     `json:"departureDate,omitempty"`
	ReturnDate      string     `json:"returnDate,omitempty"`
	Period          *Period    `json:"period,omitempty"`
	Passengers      Passengers `json:"passengers"`
	MaxStops        int        `json:"maxStops"`
	BudgetPerPax    *float64   `json:"budgetPerPaxEUR,omitempty"`
	FlexDays        int        `json:"flexDays,omitempty"`
}
