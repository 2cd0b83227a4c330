package config

import (
	"fmt"
	"math"
	"strings"

	"cinematch-engine/internal/recommend"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate fills gaps with defaults and checks what remains.
// Returns the normalized copy alongside the findings.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Catalog.Path = strings.TrimSpace(out.Catalog.Path)

	// defaults
	if out.App.Port == 0 {
		out.App.Port = 38561
	}
	if out.Scoring.GenreWeight == 0 && out.Scoring.RatingWeight == 0 {
		out.Scoring.GenreWeight = recommend.DefaultWeights.Genre
		out.Scoring.RatingWeight = recommend.DefaultWeights.Rating
	}
	if out.Scoring.LikeThreshold == 0 {
		out.Scoring.LikeThreshold = recommend.DefaultLikeThreshold
	}

	// ---- Validation rules ----

	if out.App.Port <= 0 || out.App.Port > 65535 {
		res.addErr("app.port must be 1..65535")
	}
	if out.Catalog.Path == "" {
		res.addErr("catalog.path is required")
	}

	if out.Scoring.GenreWeight < 0 || out.Scoring.RatingWeight < 0 {
		res.addErr("scoring weights must be >= 0")
	}
	if sum := out.Scoring.GenreWeight + out.Scoring.RatingWeight; math.Abs(sum-1) > 1e-9 {
		res.addErr("scoring.genre_weight + scoring.rating_weight must equal 1 (got %.3f)", sum)
	}

	if out.Scoring.LikeThreshold < 1 || out.Scoring.LikeThreshold >= 10 {
		res.addErr("scoring.like_threshold must be in [1,10)")
	} else if out.Scoring.LikeThreshold > 8 {
		res.addWarn("scoring.like_threshold is very high (%.1f); few genres will ever qualify as preferred.", out.Scoring.LikeThreshold)
	}

	return out, res
}
