package amadeus

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"travel-search-service/internal/ports"
)

const tokenJSON = `{"access_token":"test-token","expires_in":1799}`

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL, "id", "secret", "EUR", 1000, 1000)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c, srv
}

func TestNewClientRequiresCredentials(t *testing.T) {
	if _, err := NewClient("", "", "secret", "EUR", 5, 10); err == nil {
		t.Error("missing client id should fail")
	}
	if _, err := NewClient("", "id", "", "EUR", 5, 10); err == nil {
		t.Error("missing client secret should fail")
	}
}

func TestAccessTokenCached(t *testing.T) {
	var tokenCalls int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&tokenCalls, 1)
		if err := r.ParseForm(); err != nil || r.Form.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"data":[{"iataCode":"PAR","name":"PARIS","subType":"CITY"}]}`))
	})

	c, _ := newTestClient(t, mux)

	for i := 0; i < 3; i++ {
		if _, err := c.ResolveCity(context.Background(), "Paris"); err != nil {
			t.Fatalf("ResolveCity: %v", err)
		}
	}

	if n := atomic.LoadInt64(&tokenCalls); n != 1 {
		t.Errorf("token fetched %d times, want 1 (cached thereafter)", n)
	}
}

func TestResolveCityPrefersCityEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"iataCode":"CDG","name":"CHARLES DE GAULLE","subType":"AIRPORT"},
			{"iataCode":"PAR","name":"PARIS","subType":"CITY"}
		]}`))
	})

	c, _ := newTestClient(t, mux)

	code, err := c.ResolveCity(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("ResolveCity: %v", err)
	}
	if code != "PAR" {
		t.Errorf("code = %s, want the CITY entry PAR over the airport", code)
	}
}

func TestResolveCityNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	c, _ := newTestClient(t, mux)

	_, err := c.ResolveCity(context.Background(), "Atlantis")
	if !errors.Is(err, ports.ErrLocationNotFound) {
		t.Fatalf("err = %v, want ErrLocationNotFound", err)
	}

	_, err = c.ResolveCity(context.Background(), "   ")
	if !errors.Is(err, ports.ErrLocationNotFound) {
		t.Fatalf("blank name err = %v, want ErrLocationNotFound", err)
	}
}

func TestDoWithRetryRecoversFromServerErrors(t *testing.T) {
	var attempts int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&attempts, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"data":[{"iataCode":"PAR","name":"PARIS","subType":"CITY"}]}`))
	})

	c, _ := newTestClient(t, mux)

	code, err := c.ResolveCity(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("ResolveCity after transient 503s: %v", err)
	}
	if code != "PAR" {
		t.Errorf("code = %s, want PAR", code)
	}
	if n := atomic.LoadInt64(&attempts); n != 3 {
		t.Errorf("attempts = %d, want 3", n)
	}
}

func TestDoWithRetryGivesUpOnClientErrors(t *testing.T) {
	var attempts int64

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&attempts, 1)
		w.WriteHeader(http.StatusBadRequest)
	})

	c, _ := newTestClient(t, mux)

	if _, err := c.ResolveCity(context.Background(), "Paris"); err == nil {
		t.Fatal("400 response should fail")
	}
	if n := atomic.LoadInt64(&attempts); n != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on 4xx)", n)
	}
}

func TestLocationInfoDegradesOnUnknownCode(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/reference-data/locations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})

	c, _ := newTestClient(t, mux)

	loc, err := c.LocationInfo(context.Background(), "XYZ")
	if err != nil {
		t.Fatalf("LocationInfo: %v", err)
	}
	if loc.IATACode != "XYZ" || loc.Name != "XYZ" || loc.PopularityScore != nil {
		t.Errorf("loc = %+v, want bare fallback for XYZ", loc)
	}
}

func TestSearchOffersQuery(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v2/shopping/flight-offers", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("originLocationCode") != "PAR" || q.Get("destinationLocationCode") != "BCN" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if q.Get("currencyCode") != "EUR" || q.Get("travelClass") != "ECONOMY" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"data":[{"id":"1","price":{"currency":"EUR","total":"100.00","grandTotal":"100.00"},
			"itineraries":[{"duration":"PT2H","segments":[
				{"carrierCode":"VY","number":"8001",
				 "departure":{"iataCode":"ORY","at":"2026-09-10T08:00:00"},
				 "arrival":{"iataCode":"BCN","at":"2026-09-10T10:00:00"}}]}]}]}`))
	})

	c, _ := newTestClient(t, mux)

	offers, err := c.SearchOffers(context.Background(), ports.OfferSearchRequest{
		Origin:        "PAR",
		Destination:   "BCN",
		DepartureDate: "2026-09-10",
		ReturnDate:    "2026-09-17",
		Adults:        1,
		Max:           50,
		TravelClass:   "ECONOMY",
	})
	if err != nil {
		t.Fatalf("SearchOffers: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != "1" {
		t.Fatalf("offers = %+v, want the single decoded offer", offers)
	}
	if offers[0].Itineraries[0].Segments[0].Departure.IATACode != "ORY" {
		t.Errorf("segment decode mismatch: %+v", offers[0].Itineraries[0].Segments[0])
	}
}

func TestInspirationFallsBackToSecondConvention(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/shopping/flight-destinations", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("origin") != "" {
			// The first parameter convention is rejected by this account.
			w.WriteHeader(http.StatusForbidden)
			return
		}
		if q.Get("originLocationCode") != "PAR" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"data":[
			{"destinationLocationCode":"LIS","price":{"total":"120.00"}},
			{"destinationLocationCode":"BCN","price":{"total":"80.00"}}
		]}`))
	})

	c, _ := newTestClient(t, mux)

	hits, err := c.InspirationDestinations(context.Background(), "PAR", "2026-09-10", "2026-09-17", 25)
	if err != nil {
		t.Fatalf("InspirationDestinations: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Destination != "BCN" || hits[0].PriceTotal != 80.00 {
		t.Errorf("hits not sorted cheapest first: %+v", hits)
	}
}

func TestInspirationEmptyWhenBothConventionsRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/shopping/flight-destinations", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	c, _ := newTestClient(t, mux)

	hits, err := c.InspirationDestinations(context.Background(), "PAR", "2026-09-10", "2026-09-17", 25)
	if err != nil {
		t.Fatalf("InspirationDestinations: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want empty fallback", hits)
	}
}

func TestInspirationSkipsMalformedEntries(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/security/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(tokenJSON))
	})
	mux.HandleFunc("/v1/shopping/flight-destinations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"destination":"BCN","price":{"total":"80.00"}},
			{"destination":"","price":{"total":"90.00"}},
			{"destination":"LIS","price":{"total":"not-a-price"}}
		]}`))
	})

	c, _ := newTestClient(t, mux)

	hits, err := c.InspirationDestinations(context.Background(), "PAR", "2026-09-10", "2026-09-17", 25)
	if err != nil {
		t.Fatalf("InspirationDestinations: %v", err)
	}
	if len(hits) != 1 || hits[0].Destination != "BCN" {
		t.Errorf("hits = %+v, want only the well-formed BCN entry", hits)
	}
}
