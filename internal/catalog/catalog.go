package catalog

import "sort"

// Entry is one normalized movie row. Optional columns are pointers so a
// missing value is distinguishable from a zero one.
type Entry struct {
	MovieID    int      `json:"movie_id"`
	Title      string   `json:"title"`
	Genres     []string `json:"genres"`
	Rating     *float64 `json:"rating,omitempty"`
	Year       *int     `json:"year,omitempty"`
	Popularity float64  `json:"popularity"`
	Overview   string   `json:"overview,omitempty"`
}

// HasGenre reports whether the entry carries the given genre.
func (e Entry) HasGenre(genre string) bool {
	for _, g := range e.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Catalog is the immutable movie table. Built once by Load, read-only after.
type Catalog struct {
	entries []Entry
	byID    map[int]int    // movie_id -> index into entries
	byTitle map[string]int // exact title -> index into entries
	genres  []string       // distinct genre names, sorted
}

// New builds the lookup indexes over normalized entries. Load/Parse call it;
// it is exported for callers that already hold normalized rows.
func New(entries []Entry) *Catalog {
	c := &Catalog{
		entries: entries,
		byID:    make(map[int]int, len(entries)),
		byTitle: make(map[string]int, len(entries)),
	}

	seen := map[string]bool{}
	for i, e := range entries {
		c.byID[e.MovieID] = i
		// first occurrence wins for duplicate titles
		if _, ok := c.byTitle[e.Title]; !ok {
			c.byTitle[e.Title] = i
		}
		for _, g := range e.Genres {
			if !seen[g] {
				seen[g] = true
				c.genres = append(c.genres, g)
			}
		}
	}
	sort.Strings(c.genres)
	return c
}

// Entries returns all entries in load order. Callers must not mutate.
func (c *Catalog) Entries() []Entry { return c.entries }

func (c *Catalog) Len() int { return len(c.entries) }

// ByID looks a movie up by its stable id.
func (c *Catalog) ByID(id int) (Entry, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// ByTitle looks a movie up by exact title match.
func (c *Catalog) ByTitle(title string) (Entry, bool) {
	i, ok := c.byTitle[title]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Genres returns the distinct genre names across the catalog, sorted.
func (c *Catalog) Genres() []string { return c.genres }
