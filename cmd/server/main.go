package main

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"travel-search-service/internal/adapters/amadeus"
	"travel-search-service/internal/adapters/openai"
	"travel-search-service/internal/adapters/openmeteo"
	"travel-search-service/internal/api"
	"travel-search-service/internal/config"
	"travel-search-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (Amadeus, Open-Meteo, OpenAI) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	amadeusHost := config.Get("AMADEUS_HOST", "https://test.api.amadeus.com")
	currency := config.Get("DEFAULT_CURRENCY", "EUR")

	flights, err := amadeus.NewClient(
		amadeusHost,
		config.Get("AMADEUS_CLIENT_ID", ""),
		config.Get("AMADEUS_CLIENT_SECRET", ""),
		currency,
		envFloat("AMADEUS_RPS", 5),
		envInt("AMADEUS_BURST", 10),
	)
	if err != nil {
		log.Fatal(err)
	}

	meteo := openmeteo.NewClient(envFloat("OPENMETEO_RPS", 8), envInt("OPENMETEO_BURST", 16))

	// Chat extraction is optional: without a key the /chat endpoint reports
	// itself unavailable while the rest of the API keeps working.
	extractor, err := openai.NewExtractor(
		config.Get("OPENAI_BASE_URL", ""),
		config.Get("OPENAI_API_KEY", ""),
		config.Get("OPENAI_MODEL", "gpt-4o-mini"),
	)
	if err != nil {
		log.Printf("chat extraction disabled: %v", err)
		extractor = nil
	}

	scoring, err := config.LoadScoring(config.Get("SCORING_CONFIG", "config/scoring.yaml"))
	if err != nil {
		log.Fatal(err)
	}

	// Assign through a typed variable so a disabled extractor stays a nil
	// interface inside the router.
	var queryExtractor ports.QueryExtractor
	if extractor != nil {
		queryExtractor = extractor
	}

	router := api.NewRouter(flights, meteo, meteo, queryExtractor, api.Scoring{
		Rank:            scoring.Rank,
		Score:           scoring.Score,
		TopDestinations: scoring.TopDestinations,
	})

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})

	// Timeouts are tuned for discovery mode (many upstream calls per request).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           corsHandler.Handler(router),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func envFloat(key string, fallback float64) float64 {
	v := config.Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, v, err)
	}
	return f
}

func envInt(key string, fallback int) int {
	v := config.Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid %s=%q: %v", key, v, err)
	}
	return n
}
