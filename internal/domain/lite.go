package domain

// Summary of one itinerary in a lite projection: first departure to final
// arrival, with the number of connections in between.
type Leg struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Dep   string `json:"dep"`
	Arr   string `json:"arr"`
	Stops int    `json:"stops"`
}

// Immutable display projection of one Offer.
// Prices are rounded to 2 decimals, the duration is carried both as total
// minutes and as "HhMM" text, and carriers are deduplicated in first-seen order.
type OfferLite struct {
	PriceTotal        float64  `json:"price_total_eur"`
	PricePerPax       float64  `json:"price_per_pax_eur"`
	DurationTotalMin  int      `json:"duration_total_min"`
	DurationTotalHHMM string   `json:"duration_total_hhmm"`
	StopsMax          int      `json:"stops_max"`
	Carriers          []string `json:"carriers"`
	Legs              []Leg    `json:"legs"`
}

// RankedSelection holds the three representative offers chosen from a batch.
// Direct is only ever populated from offers with stop count zero; Cheapest and
// Recommended are populated whenever the input batch is non-empty.
type RankedSelection struct {
	Cheapest    *Offer
	Recommended *Offer
	Direct      *Offer
}

// LiteSelection is the display-ready form of a RankedSelection; absent slots
// stay null in the response payload.
type LiteSelection struct {
	Cheapest    *OfferLite `json:"cheapest"`
	Recommended *OfferLite `json:"recommended"`
	Direct      *OfferLite `json:"direct"`
}
