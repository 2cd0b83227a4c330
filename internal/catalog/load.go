package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadError means the catalog file could not be located or its header could
// not be understood. The whole system is unusable in that state, so callers
// check for it with errors.As and short-circuit.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("catalog unavailable (%s): %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads a TMDB-style movies CSV and normalizes it into a Catalog.
// Individual bad rows degrade to placeholder/absent fields; only a missing
// file or an unusable header fails the load.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	c, err := Parse(f)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return c, nil
}

// Parse normalizes CSV rows from r. Split out of Load so tests and imports
// can feed readers directly.
func Parse(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1 // tolerate ragged rows, handled per field below

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := col["title"]; !ok {
		return nil, fmt.Errorf("header has no title column")
	}

	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var entries []Entry
	var needID []int // entry indexes with no natural id
	maxID := 0
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// one mangled row should not kill a five-thousand row load
			continue
		}

		e := Entry{
			Title:    strings.TrimSpace(field(rec, "title")),
			Genres:   parseGenres(field(rec, "genres")),
			Overview: strings.TrimSpace(field(rec, "overview")),
		}

		// vote_average is the TMDB name; accept a plain rating column too
		ratingRaw := field(rec, "vote_average")
		if ratingRaw == "" {
			ratingRaw = field(rec, "rating")
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(ratingRaw), 64); err == nil {
			e.Rating = &v
		}

		if y, ok := parseYear(field(rec, "release_date")); ok {
			e.Year = &y
		}

		if v, err := strconv.ParseFloat(strings.TrimSpace(field(rec, "popularity")), 64); err == nil {
			e.Popularity = v
		} else if e.Rating != nil {
			e.Popularity = *e.Rating * 10
		}

		// natural id if the source has one; rows without one get synthetic
		// ids below, so a pure no-id source still numbers 1..n in row order
		if id, err := strconv.Atoi(strings.TrimSpace(field(rec, "id"))); err == nil && id > 0 {
			e.MovieID = id
			if id > maxID {
				maxID = id
			}
		} else {
			needID = append(needID, len(entries))
		}

		entries = append(entries, e)
	}

	// synthetic ids start past the natural range so a mixed source cannot
	// shadow a natural id
	for _, i := range needID {
		maxID++
		entries[i].MovieID = maxID
	}

	return New(entries), nil
}

type genreObj struct {
	Name string `json:"name"`
}

// parseGenres decodes the serialized genre list column. TMDB stores a JSON
// array of {"id":..,"name":..} objects; a bare JSON string array is accepted
// too. Anything unparseable or empty becomes the Unknown placeholder.
func parseGenres(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"Unknown"}
	}

	var objs []genreObj
	if err := json.Unmarshal([]byte(raw), &objs); err == nil {
		var out []string
		for _, g := range objs {
			if g.Name != "" {
				out = append(out, g.Name)
			}
		}
		if len(out) > 0 {
			return dedupe(out)
		}
	}

	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err == nil {
		var out []string
		for _, n := range names {
			if strings.TrimSpace(n) != "" {
				out = append(out, strings.TrimSpace(n))
			}
		}
		if len(out) > 0 {
			return dedupe(out)
		}
	}

	return []string{"Unknown"}
}

// dedupe drops repeated genre names, keeping first-seen order. Some source
// rows list the same genre twice and a movie holds a genre once.
func dedupe(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := names[:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

var dateLayouts = []string{"2006-01-02", "2006/01/02", "01/02/2006", "2006"}

// parseYear extracts the release year, failing soft on malformed dates.
func parseYear(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}
