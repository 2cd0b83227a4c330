package config

import (
	"testing"

	"cinematch-engine/internal/recommend"
)

func baseConfig() Config {
	var cfg Config
	cfg.App.Port = 38561
	cfg.Catalog.Path = "movies.csv"
	cfg.Scoring.GenreWeight = 0.8
	cfg.Scoring.RatingWeight = 0.2
	cfg.Scoring.LikeThreshold = 6.0
	return cfg
}

func TestNormalizeAndValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		wantOK bool
	}{
		{"default 80/20 split", func(c *Config) {}, true},
		{"alternate 75/25 split", func(c *Config) {
			c.Scoring.GenreWeight = 0.75
			c.Scoring.RatingWeight = 0.25
		}, true},
		{"weights not summing to 1", func(c *Config) {
			c.Scoring.GenreWeight = 0.8
			c.Scoring.RatingWeight = 0.3
		}, false},
		{"negative weight", func(c *Config) {
			c.Scoring.GenreWeight = 1.2
			c.Scoring.RatingWeight = -0.2
		}, false},
		{"missing catalog path", func(c *Config) { c.Catalog.Path = " " }, false},
		{"port out of range", func(c *Config) { c.App.Port = 70000 }, false},
		{"threshold out of range", func(c *Config) { c.Scoring.LikeThreshold = 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(&cfg)
			_, vr := NormalizeAndValidate(cfg)
			if vr.OK() != tt.wantOK {
				t.Errorf("OK() = %v, want %v (errors: %v)", vr.OK(), tt.wantOK, vr.Errors)
			}
		})
	}
}

func TestNormalizeDefaults(t *testing.T) {
	var cfg Config
	cfg.Catalog.Path = "movies.csv"

	out, vr := NormalizeAndValidate(cfg)
	if !vr.OK() {
		t.Fatalf("OK() = false, errors: %v", vr.Errors)
	}
	if out.App.Port != 38561 {
		t.Errorf("Port = %d, want default 38561", out.App.Port)
	}
	if out.Scoring.GenreWeight != recommend.DefaultWeights.Genre || out.Scoring.RatingWeight != recommend.DefaultWeights.Rating {
		t.Errorf("weights = %v/%v, want defaults %v/%v", out.Scoring.GenreWeight, out.Scoring.RatingWeight,
			recommend.DefaultWeights.Genre, recommend.DefaultWeights.Rating)
	}
	if out.Scoring.LikeThreshold != recommend.DefaultLikeThreshold {
		t.Errorf("LikeThreshold = %v, want default %v", out.Scoring.LikeThreshold, recommend.DefaultLikeThreshold)
	}
}

func TestWeights(t *testing.T) {
	cfg := baseConfig()
	w := cfg.Weights()
	if w.Genre != 0.8 || w.Rating != 0.2 {
		t.Errorf("Weights() = %+v, want {0.8 0.2}", w)
	}
}
