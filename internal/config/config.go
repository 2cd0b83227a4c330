package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"cinematch-engine/internal/recommend"
)

type Config struct {
	App struct {
		Port    int    `yaml:"port" json:"port"`
		DataDir string `yaml:"data_dir" json:"data_dir"`
	} `yaml:"app" json:"app"`

	Catalog struct {
		Path string `yaml:"path" json:"path"`
	} `yaml:"catalog" json:"catalog"`

	Scoring struct {
		// Two splits have shipped: 0.8/0.2 and 0.75/0.25. Either validates.
		GenreWeight   float64 `yaml:"genre_weight" json:"genre_weight"`
		RatingWeight  float64 `yaml:"rating_weight" json:"rating_weight"`
		LikeThreshold float64 `yaml:"like_threshold" json:"like_threshold"`
	} `yaml:"scoring" json:"scoring"`
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// Weights returns the scoring split as the engine's type.
func (c Config) Weights() recommend.Weights {
	return recommend.Weights{Genre: c.Scoring.GenreWeight, Rating: c.Scoring.RatingWeight}
}
