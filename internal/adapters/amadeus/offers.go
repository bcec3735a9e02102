package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"travel-search-service/internal/domain"
	"travel-search-service/internal/platform/obs"
	"travel-search-service/internal/ports"
)

type offersResponse struct {
	Data []domain.Offer `json:"data"`
}

// SearchOffers retrieves priced round-trip offers from the flight-offers
// search endpoint. The decoded offers pass through unvalidated: the service
// layer owns defensive defaulting for malformed records.
func (c *Client) SearchOffers(ctx context.Context, req ports.OfferSearchRequest) (_ []domain.Offer, err error) {
	defer obs.Time(ctx, "amadeus.SearchOffers")(&err)

	query := url.Values{}
	query.Set("originLocationCode", req.Origin)
	query.Set("destinationLocationCode", req.Destination)
	query.Set("departureDate", req.DepartureDate)
	query.Set("returnDate", req.ReturnDate)
	query.Set("adults", strconv.Itoa(req.Adults))
	query.Set("children", strconv.Itoa(req.Children))
	query.Set("infants", strconv.Itoa(req.Infants))
	query.Set("currencyCode", c.currency)
	query.Set("nonStop", "false")
	query.Set("max", strconv.Itoa(req.Max))
	query.Set("travelClass", req.TravelClass)

	endpoint := c.host + "/v2/shopping/flight-offers"

	resp, err := c.doWithRetry(ctx, "search_offers", func() (*http.Request, error) {
		return c.newRequest(ctx, http.MethodGet, endpoint, query)
	})
	if err != nil {
		return nil, fmt.Errorf("search offers %s -> %s: %w", req.Origin, req.Destination, err)
	}
	defer resp.Body.Close()

	var decoded offersResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode offers response: %w", err)
	}

	return decoded.Data, nil
}
