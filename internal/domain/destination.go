package domain

// Monthly climate summary for a destination. Raw figures are kept for the
// response payload; SunScore is the derived suitability in [0,1].
type ClimateSummary struct {
	TempC    *float64 `json:"temp_c"`
	RainMM   *float64 `json:"rain_mm"`
	SunScore float64  `json:"sun_score"`
}

// A destination under consideration in discovery mode, carrying a
// representative offer and its suitability signals. Popularity is in [0,1].
type DestinationCandidate struct {
	City       string         `json:"city"`
	IATACity   string         `json:"iataCity"`
	Offer      OfferLite      `json:"offer"`
	Climate    ClimateSummary `json:"climate"`
	Popularity float64        `json:"popularity"`
}

// A candidate plus its composite score in [0,1], rounded to 4 decimals.
type ScoredDestination struct {
	DestinationCandidate
	Score float64 `json:"score"`
}
