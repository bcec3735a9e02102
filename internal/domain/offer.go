package domain

// Price block of a flight offer as returned by the upstream provider.
// GrandTotal is a decimal string; parsing happens at the service layer
// so a malformed value degrades to a default instead of failing a batch.
type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	GrandTotal string `json:"grandTotal"`
}

// One endpoint of a flight segment (airport and local timestamp).
type SegmentPoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

// A single flight leg within an itinerary.
type Segment struct {
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number,omitempty"`
	Departure   SegmentPoint `json:"departure"`
	Arrival     SegmentPoint `json:"arrival"`
}

// One direction of travel (outbound or return) within an offer.
// Duration is an ISO-8601 duration string with hour/minute granularity.
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Represents one priced, multi-leg flight-booking option returned by the
// upstream flight-search provider. Offers are transient per-request data;
// derived metrics (stop count, total duration) are computed, never stored.
type Offer struct {
	ID          string      `json:"id,omitempty"`
	Price       Price       `json:"price"`
	Itineraries []Itinerary `json:"itineraries"`
}
