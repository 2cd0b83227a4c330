package recommend

import (
	"cinematch-engine/internal/catalog"
)

// Aggregate folds a ratings map into per-genre average preferences. It is a
// full recompute every time: preferences are never patched incrementally, so
// two calls with the same inputs always agree. A rating for an id the
// catalog no longer has is skipped silently.
func Aggregate(ratings map[int]int, c *catalog.Catalog) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}

	for id, rating := range ratings {
		e, ok := c.ByID(id)
		if !ok {
			continue
		}
		for _, g := range e.Genres {
			sums[g] += float64(rating)
			counts[g]++
		}
	}

	prefs := make(map[string]float64, len(sums))
	for g, sum := range sums {
		prefs[g] = sum / float64(counts[g])
	}
	return prefs
}
