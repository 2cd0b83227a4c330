package recommend

import (
	"errors"
	"math/rand"
	"sort"

	"cinematch-engine/internal/catalog"
)

// ErrNoSignal means no genre preference clears the liking threshold yet.
// It is a "rate more movies first" state, not a failure.
var ErrNoSignal = errors.New("no preference signal")

// DefaultLikeThreshold marks a genre as preferred when its average exceeds it.
const DefaultLikeThreshold = 6.0

// PageSize is the browse page size.
const PageSize = 10

// discoveryTitles is the curated seed list shown to new users. Order matters:
// the first ten that exist in the loaded catalog are used, in this order.
var discoveryTitles = []string{
	"The Dark Knight", "Inception", "Pulp Fiction", "The Godfather",
	"Forrest Gump", "The Matrix", "Toy Story", "The Silence of the Lambs",
	"Star Wars", "The Lord of the Rings: The Fellowship of the Ring",
	"Finding Nemo", "The Avengers", "Titanic", "The Lion King", "Jurassic Park",
}

// DiscoverySeed returns up to ten curated well-known movies present in the
// catalog, in curated-list order.
func DiscoverySeed(c *catalog.Catalog) []catalog.Entry {
	out := make([]catalog.Entry, 0, 10)
	for _, title := range discoveryTitles {
		if e, ok := c.ByTitle(title); ok {
			out = append(out, e)
			if len(out) == 10 {
				break
			}
		}
	}
	return out
}

// BrowseByGenre returns the page of catalog entries carrying at least one of
// the selected genres (OR semantics), sorted descending by catalog rating.
// Pages are 1-based; an out-of-range page yields an empty slice. Total pages
// is at least 1 even with no matches.
func BrowseByGenre(c *catalog.Catalog, genres []string, page int) ([]catalog.Entry, int) {
	var matched []catalog.Entry
	for _, e := range c.Entries() {
		for _, g := range genres {
			if e.HasGenre(g) {
				matched = append(matched, e)
				break
			}
		}
	}
	sortByRating(matched)

	totalPages := (len(matched) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * PageSize
	if page < 1 || start >= len(matched) {
		return nil, totalPages
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], totalPages
}

// PreferredGenres returns every genre whose average preference exceeds the
// threshold, sorted for deterministic output.
func PreferredGenres(prefs map[string]float64, threshold float64) []string {
	var out []string
	for g, avg := range prefs {
		if avg > threshold {
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}

// RandomPick draws a personalized random recommendation: a uniformly chosen
// preferred genre, then a uniform pick from that genre's top ten movies by
// catalog rating. The bias toward well-rated entries is intentional.
// Returns ErrNoSignal when no genre clears the threshold.
func RandomPick(c *catalog.Catalog, prefs map[string]float64, threshold float64, rng *rand.Rand) (catalog.Entry, error) {
	preferred := PreferredGenres(prefs, threshold)
	if len(preferred) == 0 {
		return catalog.Entry{}, ErrNoSignal
	}

	genre := preferred[rng.Intn(len(preferred))]

	var pool []catalog.Entry
	for _, e := range c.Entries() {
		if e.HasGenre(genre) {
			pool = append(pool, e)
		}
	}
	if len(pool) == 0 {
		return catalog.Entry{}, ErrNoSignal
	}

	sortByRating(pool)
	if len(pool) > 10 {
		pool = pool[:10]
	}
	return pool[rng.Intn(len(pool))], nil
}

// Scored pairs an entry with its recommendation score.
type Scored struct {
	catalog.Entry
	Score float64 `json:"score"`
}

// TopN scores the whole catalog under the current preferences and returns
// the n best, stable-sorted so identical inputs rank identically. An empty
// result means there is no preference signal yet.
func TopN(c *catalog.Catalog, prefs map[string]float64, threshold float64, n int, w Weights) []Scored {
	if len(PreferredGenres(prefs, threshold)) == 0 {
		return nil
	}

	scored := make([]Scored, 0, c.Len())
	for _, e := range c.Entries() {
		scored = append(scored, Scored{Entry: e, Score: Score(e.Genres, prefs, e.Rating, w)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if n > 0 && len(scored) > n {
		scored = scored[:n]
	}
	return scored
}

// sortByRating orders entries descending by catalog rating, absent rating
// last. Stable so catalog order breaks ties.
func sortByRating(entries []catalog.Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ri, rj := entries[i].Rating, entries[j].Rating
		switch {
		case ri == nil:
			return false
		case rj == nil:
			return true
		default:
			return *ri > *rj
		}
	})
}
