package recommend

// Weights splits a recommendation score between genre affinity and the
// catalog's own rating. Both 0.8/0.2 and 0.75/0.25 have shipped; the split
// is config, not a constant.
type Weights struct {
	Genre  float64 `yaml:"genre_weight" json:"genre_weight"`
	Rating float64 `yaml:"rating_weight" json:"rating_weight"`
}

// DefaultWeights is the 80/20 split.
var DefaultWeights = Weights{Genre: 0.8, Rating: 0.2}

// neutralRating stands in for a movie with no catalog rating.
const neutralRating = 5.0

// Score computes the weighted desirability of a movie with the given genre
// list under the current preferences. Results are always in [0,10].
func Score(genres []string, prefs map[string]float64, rating *float64, w Weights) float64 {
	var matched, total float64
	for _, p := range prefs {
		total += p
	}
	seen := make(map[string]bool, len(genres))
	for _, g := range genres {
		if seen[g] {
			// a duplicated genre name must not count twice, or matched
			// could exceed total
			continue
		}
		seen[g] = true
		if p, ok := prefs[g]; ok {
			matched += p
		}
	}

	var genreScore float64
	if total > 0 {
		genreScore = matched / total * 10
	}

	ratingScore := neutralRating
	if rating != nil {
		ratingScore = *rating
	}

	return genreScore*w.Genre + ratingScore*w.Rating
}
