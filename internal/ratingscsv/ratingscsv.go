// Package ratingscsv moves a ratings map in and out of the two-column
// (title, rating) CSV format the UI offers for download/upload.
package ratingscsv

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"cinematch-engine/internal/catalog"
)

// Export writes username-agnostic (title, rating) rows for every rated movie
// still present in the catalog, in catalog order.
func Export(w io.Writer, c *catalog.Catalog, ratings map[int]int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"title", "rating"}); err != nil {
		return err
	}
	for _, e := range c.Entries() {
		r, ok := ratings[e.MovieID]
		if !ok {
			continue
		}
		if err := cw.Write([]string{e.Title, strconv.Itoa(r)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import parses (title, rating) rows, resolving titles back to movie ids by
// exact catalog match. Unmatched titles, unparseable ratings, and ratings
// outside 1..10 are dropped silently — an imported file from a different
// catalog should salvage what it can.
func Import(r io.Reader, c *catalog.Catalog) (map[int]int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	out := map[int]int{}
	first := true
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(rec) < 2 {
			continue
		}

		title := strings.TrimSpace(rec[0])
		ratingRaw := strings.TrimSpace(rec[1])

		// tolerate a header row
		if first {
			first = false
			if strings.EqualFold(title, "title") {
				continue
			}
		}

		rating, err := strconv.Atoi(ratingRaw)
		if err != nil || rating < 1 || rating > 10 {
			continue
		}
		e, ok := c.ByTitle(title)
		if !ok {
			continue
		}
		out[e.MovieID] = rating
	}
	return out, nil
}
