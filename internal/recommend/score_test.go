package recommend

import (
	"math"
	"testing"
)

func TestScore(t *testing.T) {
	prefs := map[string]float64{"Action": 8, "Drama": 6, "Comedy": 4}

	tests := []struct {
		name   string
		genres []string
		prefs  map[string]float64
		rating *float64
		w      Weights
		want   float64
	}{
		{
			name:   "empty preferences leave only the rating component",
			genres: []string{"Action"},
			prefs:  map[string]float64{},
			rating: fp(7),
			w:      DefaultWeights,
			want:   0.2 * 7,
		},
		{
			name:   "missing catalog rating defaults to neutral 5",
			genres: []string{"Action"},
			prefs:  prefs,
			rating: nil,
			w:      DefaultWeights,
			// genre: 8/18*10 = 4.444..., rating: 5
			want: (8.0/18.0*10)*0.8 + 5*0.2,
		},
		{
			name:   "full genre coverage maxes the genre component",
			genres: []string{"Action", "Drama", "Comedy"},
			prefs:  prefs,
			rating: fp(10),
			w:      DefaultWeights,
			want:   10,
		},
		{
			name:   "alternate 75/25 split",
			genres: []string{"Drama"},
			prefs:  prefs,
			rating: fp(8),
			w:      Weights{Genre: 0.75, Rating: 0.25},
			want:   (6.0/18.0*10)*0.75 + 8*0.25,
		},
		{
			name:   "unknown genres contribute nothing",
			genres: []string{"Western"},
			prefs:  prefs,
			rating: fp(6),
			w:      DefaultWeights,
			want:   6 * 0.2,
		},
		{
			name:   "duplicated genre counts once",
			genres: []string{"Action", "Action"},
			prefs:  map[string]float64{"Action": 8},
			rating: fp(9),
			w:      DefaultWeights,
			// matched == total, genre component tops out at 10
			want:   10*0.8 + 9*0.2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.genres, tt.prefs, tt.rating, tt.w)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Score() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScoreBounds(t *testing.T) {
	prefSets := []map[string]float64{
		{},
		{"Action": 10, "Drama": 10},
		{"Action": 1},
		{"Action": 8, "Drama": 6, "Comedy": 4, "Horror": 9, "Romance": 2},
	}
	genreSets := [][]string{
		nil,
		{"Action"},
		{"Action", "Drama", "Comedy", "Horror", "Romance"},
		{"Western"},
		{"Action", "Action", "Action"},
		{"Action", "Drama", "Action"},
	}
	ratings := []*float64{nil, fp(0), fp(10), fp(5.5)}
	weights := []Weights{DefaultWeights, {Genre: 0.75, Rating: 0.25}}

	for _, prefs := range prefSets {
		for _, genres := range genreSets {
			for _, rating := range ratings {
				for _, w := range weights {
					got := Score(genres, prefs, rating, w)
					if got < 0 || got > 10 {
						t.Errorf("Score(%v, %v, %v, %v) = %f, out of [0,10]",
							genres, prefs, rating, w, got)
					}
				}
			}
		}
	}
}
