package config

import (
	"os"
	"path/filepath"
	"testing"

	"travel-search-service/internal/services"
)

func TestGet(t *testing.T) {
	t.Setenv("CONFIG_TEST_KEY", "value")
	if got := Get("CONFIG_TEST_KEY", "fallback"); got != "value" {
		t.Errorf("Get = %q, want value", got)
	}
	if got := Get("CONFIG_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}
}

func TestLoadScoringDefaults(t *testing.T) {
	cfg, err := LoadScoring("")
	if err != nil {
		t.Fatalf("LoadScoring: %v", err)
	}
	if cfg.Rank != services.DefaultRankWeights || cfg.Score != services.DefaultScoreWeights {
		t.Errorf("empty path should yield defaults, got %+v", cfg)
	}

	cfg, err = LoadScoring("does/not/exist.yaml")
	if err != nil {
		t.Fatalf("LoadScoring on a missing file: %v", err)
	}
	if cfg.TopDestinations != services.DefaultTopDestinations {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadScoringFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	content := `
rank:
  price: 0.7
  duration: 0.3
score:
  price: 0.5
  climate: 0.3
  popularity: 0.2
top_destinations: 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadScoring(path)
	if err != nil {
		t.Fatalf("LoadScoring: %v", err)
	}
	if cfg.Rank.Price != 0.7 || cfg.Rank.Duration != 0.3 {
		t.Errorf("rank = %+v, want 0.7/0.3", cfg.Rank)
	}
	if cfg.Score.Price != 0.5 || cfg.Score.Climate != 0.3 || cfg.Score.Popularity != 0.2 {
		t.Errorf("score = %+v, want 0.5/0.3/0.2", cfg.Score)
	}
	if cfg.TopDestinations != 5 {
		t.Errorf("top destinations = %d, want 5", cfg.TopDestinations)
	}
}

func TestLoadScoringInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte("rank: [not, a, map]"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	if _, err := LoadScoring(path); err == nil {
		t.Fatal("invalid yaml should fail startup")
	}
}

func TestLoadScoringTopNFloor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	if err := os.WriteFile(path, []byte("top_destinations: 0"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cfg, err := LoadScoring(path)
	if err != nil {
		t.Fatalf("LoadScoring: %v", err)
	}
	if cfg.TopDestinations != services.DefaultTopDestinations {
		t.Errorf("top destinations = %d, want default when below 1", cfg.TopDestinations)
	}
}
