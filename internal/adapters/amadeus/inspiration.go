package amadeus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"travel-search-service/internal/platform/obs"
	"travel-search-service/internal/ports"
)

type inspirationResponse struct {
	Data []struct {
		Destination             string `json:"destination"`
		DestinationLocationCode string `json:"destinationLocationCode"`
		Price                   struct {
			Total string `json:"total"`
		} `json:"price"`
	} `json:"data"`
}

// InspirationDestinations queries the flight-inspiration search for candidate
// destinations from an origin, cheapest first. Some provider accounts expect
// "origin" and others "originLocationCode"; both conventions are tried,
// falling through on auth/not-found responses.
func (c *Client) InspirationDestinations(
	ctx context.Context,
	origin, departureDate, returnDate string,
	limit int,
) (_ []ports.InspirationHit, err error) {
	defer obs.Time(ctx, "amadeus.InspirationDestinations")(&err)

	endpoint := c.host + "/v1/shopping/flight-destinations"

	paramsV1 := url.Values{}
	paramsV1.Set("origin", origin)
	paramsV1.Set("departureDate", departureDate)
	paramsV1.Set("oneWay", "false")
	paramsV1.Set("viewBy", "DESTINATION")

	paramsV2 := url.Values{}
	paramsV2.Set("originLocationCode", origin)
	paramsV2.Set("departureDate", departureDate)

	for _, query := range []url.Values{paramsV1, paramsV2} {
		resp, err := c.doWithRetry(ctx, "inspiration", func() (*http.Request, error) {
			return c.newRequest(ctx, http.MethodGet, endpoint, query)
		})
		if err != nil {
			var he *httpStatusError
			if errors.As(err, &he) {
				switch he.Code {
				case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
					continue
				}
			}
			return nil, fmt.Errorf("inspiration search from %q: %w", origin, err)
		}

		var decoded inspirationResponse
		decodeErr := json.NewDecoder(resp.Body).Decode(&decoded)
		resp.Body.Close()
		if decodeErr != nil {
			return nil, fmt.Errorf("decode inspiration response: %w", decodeErr)
		}

		hits := make([]ports.InspirationHit, 0, len(decoded.Data))
		for _, x := range decoded.Data {
			dest := x.Destination
			if dest == "" {
				dest = x.DestinationLocationCode
			}
			price, perr := strconv.ParseFloat(x.Price.Total, 64)
			if dest == "" || perr != nil {
				continue
			}
			hits = append(hits, ports.InspirationHit{Destination: dest, PriceTotal: price})
		}

		sort.SliceStable(hits, func(i, j int) bool {
			return hits[i].PriceTotal < hits[j].PriceTotal
		})
		if limit > 0 && len(hits) > limit {
			hits = hits[:limit]
		}
		return hits, nil
	}

	return []ports.InspirationHit{}, nil
}
