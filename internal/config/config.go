package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"travel-search-service/internal/services"
)

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Scoring bundles the weighting policy for offer ranking and destination
// scoring. Keeping it explicit (rather than hidden constants) makes the
// policy swappable per deployment.
type Scoring struct {
	Rank            services.RankWeights  `yaml:"rank"`
	Score           services.ScoreWeights `yaml:"score"`
	TopDestinations int                   `yaml:"top_destinations"`
}

// DefaultScoring returns the built-in weighting policy.
func DefaultScoring() Scoring {
	return Scoring{
		Rank:            services.DefaultRankWeights,
		Score:           services.DefaultScoreWeights,
		TopDestinations: services.DefaultTopDestinations,
	}
}

// LoadScoring reads a YAML weights file, falling back to the defaults when
// path is empty or the file does not exist. A present-but-invalid file is an
// error: silently ranking with half-applied weights would be worse than
// failing startup.
func LoadScoring(path string) (Scoring, error) {
	cfg := DefaultScoring()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Scoring{}, fmt.Errorf("load scoring config: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Scoring{}, fmt.Errorf("load scoring config: parse %q: %w", path, err)
	}

	if cfg.TopDestinations < 1 {
		cfg.TopDestinations = services.DefaultTopDestinations
	}

	return cfg, nil
}
