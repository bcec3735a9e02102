package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"travel-search-service/internal/api/handlers"
	"travel-search-service/internal/metrics"
	"travel-search-service/internal/ports"
	"travel-search-service/internal/services"
)

// Scoring bundles the weighting policy shared by the ranking and discovery
// handlers.
type Scoring struct {
	Rank            services.RankWeights
	Score           services.ScoreWeights
	TopDestinations int
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters). extractor may be nil when chat is not configured.
func NewRouter(
	flights ports.FlightProvider,
	geo ports.Geocoder,
	climate ports.ClimateProvider,
	extractor ports.QueryExtractor,
	scoring Scoring,
) http.Handler {
	mux := http.NewServeMux()

	searchHandler := &handlers.SearchHandler{
		Flights: flights,
		Weights: scoring.Rank,
	}
	chatHandler := &handlers.ChatHandler{
		Extractor: extractor,
		Flights:   flights,
		Weights:   scoring.Rank,
	}
	discoverHandler := &handlers.DiscoverHandler{
		Flights:      flights,
		Geo:          geo,
		Climate:      climate,
		RankWeights:  scoring.Rank,
		ScoreWeights: scoring.Score,
		TopN:         scoring.TopDestinations,
	}
	locationHandler := &handlers.LocationHandler{Flights: flights}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/search", searchHandler.Search)
	mux.HandleFunc("/chat", chatHandler.Chat)
	mux.HandleFunc("/discover", discoverHandler.Discover)
	mux.HandleFunc("/locations", locationHandler.Search)

	metrics.Register()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	return requestIDMiddleware(metricsMiddleware(loggingMiddleware(mux)))
}
