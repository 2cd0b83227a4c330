package recommend

import (
	"fmt"
	"math/rand"
	"testing"

	"cinematch-engine/internal/catalog"
)

func browseCatalog(n int) *catalog.Catalog {
	entries := make([]catalog.Entry, 0, n)
	for i := 0; i < n; i++ {
		r := 9.5 - float64(i)*0.1
		entries = append(entries, catalog.Entry{
			MovieID: i + 1,
			Title:   fmt.Sprintf("Movie %02d", i+1),
			Genres:  []string{"Drama"},
			Rating:  fp(r),
		})
	}
	return catalog.New(entries)
}

func TestBrowseByGenrePagination(t *testing.T) {
	c := browseCatalog(23)

	tests := []struct {
		page      string
		pageNum   int
		wantLen   int
		wantPages int
	}{
		{"first", 1, 10, 3},
		{"second", 2, 10, 3},
		{"third", 3, 3, 3},
		{"out of range", 4, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.page, func(t *testing.T) {
			movies, totalPages := BrowseByGenre(c, []string{"Drama"}, tt.pageNum)
			if len(movies) != tt.wantLen {
				t.Errorf("len(movies) = %d, want %d", len(movies), tt.wantLen)
			}
			if totalPages != tt.wantPages {
				t.Errorf("totalPages = %d, want %d", totalPages, tt.wantPages)
			}
			for i := 1; i < len(movies); i++ {
				if *movies[i-1].Rating < *movies[i].Rating {
					t.Errorf("page not sorted: %f before %f", *movies[i-1].Rating, *movies[i].Rating)
				}
			}
		})
	}
}

func TestBrowseByGenreNoMatches(t *testing.T) {
	c := browseCatalog(5)
	movies, totalPages := BrowseByGenre(c, []string{"Western"}, 1)
	if len(movies) != 0 {
		t.Errorf("len(movies) = %d, want 0", len(movies))
	}
	if totalPages != 1 {
		t.Errorf("totalPages = %d, want minimum 1", totalPages)
	}
}

func TestBrowseByGenreOrSemantics(t *testing.T) {
	c := catalog.New([]catalog.Entry{
		{MovieID: 1, Title: "A", Genres: []string{"Action"}, Rating: fp(7)},
		{MovieID: 2, Title: "B", Genres: []string{"Drama"}, Rating: fp(6)},
		{MovieID: 3, Title: "C", Genres: []string{"Action", "Drama"}, Rating: fp(8)},
		{MovieID: 4, Title: "D", Genres: []string{"Comedy"}, Rating: fp(9)},
	})
	movies, _ := BrowseByGenre(c, []string{"Action", "Drama"}, 1)
	if len(movies) != 3 {
		t.Fatalf("len(movies) = %d, want 3 (OR semantics, no double count)", len(movies))
	}
	if movies[0].MovieID != 3 {
		t.Errorf("movies[0].MovieID = %d, want 3 (highest rated)", movies[0].MovieID)
	}
}

func TestBrowseSortsAbsentRatingLast(t *testing.T) {
	c := catalog.New([]catalog.Entry{
		{MovieID: 1, Title: "A", Genres: []string{"Drama"}},
		{MovieID: 2, Title: "B", Genres: []string{"Drama"}, Rating: fp(2)},
	})
	movies, _ := BrowseByGenre(c, []string{"Drama"}, 1)
	if movies[0].MovieID != 2 || movies[1].MovieID != 1 {
		t.Errorf("order = [%d %d], want rated entry first", movies[0].MovieID, movies[1].MovieID)
	}
}

func TestDiscoverySeed(t *testing.T) {
	// catalog holds 12 of the curated titles, deliberately in reverse order
	var entries []catalog.Entry
	for i := len(discoveryTitles) - 4; i >= 0; i-- {
		entries = append(entries, catalog.Entry{
			MovieID: 100 + i,
			Title:   discoveryTitles[i],
			Genres:  []string{"Action"},
			Rating:  fp(float64(i)),
		})
	}
	c := catalog.New(entries)

	seed := DiscoverySeed(c)
	if len(seed) != 10 {
		t.Fatalf("len(seed) = %d, want 10", len(seed))
	}
	// curated-list order wins, not catalog or rating order
	for i, e := range seed {
		if e.Title != discoveryTitles[i] {
			t.Errorf("seed[%d] = %q, want %q", i, e.Title, discoveryTitles[i])
		}
	}
}

func TestDiscoverySeedSparseCatalog(t *testing.T) {
	c := catalog.New([]catalog.Entry{
		{MovieID: 1, Title: "The Matrix", Genres: []string{"Action"}},
		{MovieID: 2, Title: "Unrelated", Genres: []string{"Drama"}},
		{MovieID: 3, Title: "Titanic", Genres: []string{"Romance"}},
	})
	seed := DiscoverySeed(c)
	if len(seed) != 2 {
		t.Fatalf("len(seed) = %d, want 2", len(seed))
	}
	if seed[0].Title != "The Matrix" || seed[1].Title != "Titanic" {
		t.Errorf("seed = [%q %q], want curated order", seed[0].Title, seed[1].Title)
	}
}

func TestPreferredGenres(t *testing.T) {
	prefs := map[string]float64{"Action": 8.5, "Drama": 6.0, "Comedy": 6.01, "Horror": 2}
	got := PreferredGenres(prefs, DefaultLikeThreshold)
	want := []string{"Action", "Comedy"} // strictly above 6, sorted
	if len(got) != len(want) {
		t.Fatalf("PreferredGenres() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("PreferredGenres()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRandomPickNoSignal(t *testing.T) {
	c := browseCatalog(5)
	rng := rand.New(rand.NewSource(1))

	_, err := RandomPick(c, map[string]float64{"Drama": 6.0}, DefaultLikeThreshold, rng)
	if err != ErrNoSignal {
		t.Errorf("RandomPick() error = %v, want ErrNoSignal", err)
	}
	_, err = RandomPick(c, map[string]float64{}, DefaultLikeThreshold, rng)
	if err != ErrNoSignal {
		t.Errorf("RandomPick() with empty prefs error = %v, want ErrNoSignal", err)
	}
}

func TestRandomPickDrawsFromTopTenOfPreferredGenre(t *testing.T) {
	c := browseCatalog(23) // all Drama, ratings descending by id
	prefs := map[string]float64{"Drama": 8}
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 100; i++ {
		e, err := RandomPick(c, prefs, DefaultLikeThreshold, rng)
		if err != nil {
			t.Fatalf("RandomPick() error = %v", err)
		}
		// top ten by rating are ids 1..10
		if e.MovieID < 1 || e.MovieID > 10 {
			t.Fatalf("RandomPick() id = %d, want within top-10 pool", e.MovieID)
		}
	}
}

func TestTopN(t *testing.T) {
	c := catalog.New([]catalog.Entry{
		{MovieID: 1, Title: "A", Genres: []string{"Action"}, Rating: fp(5)},
		{MovieID: 2, Title: "B", Genres: []string{"Drama"}, Rating: fp(5)},
		{MovieID: 3, Title: "C", Genres: []string{"Action", "Drama"}, Rating: fp(5)},
		{MovieID: 4, Title: "D", Genres: []string{"Comedy"}, Rating: fp(5)},
	})
	prefs := map[string]float64{"Action": 9, "Drama": 7}

	got := TopN(c, prefs, DefaultLikeThreshold, 3, DefaultWeights)
	if len(got) != 3 {
		t.Fatalf("len(TopN()) = %d, want 3", len(got))
	}
	// C carries both preferred genres, then A (9) over B (7)
	wantIDs := []int{3, 1, 2}
	for i, w := range wantIDs {
		if got[i].MovieID != w {
			t.Errorf("TopN()[%d].MovieID = %d, want %d", i, got[i].MovieID, w)
		}
	}
	for i := 1; i < len(got); i++ {
		if got[i-1].Score < got[i].Score {
			t.Errorf("TopN() not sorted: %f before %f", got[i-1].Score, got[i].Score)
		}
	}
}

func TestTopNNoSignal(t *testing.T) {
	c := browseCatalog(5)
	if got := TopN(c, map[string]float64{"Drama": 5}, DefaultLikeThreshold, 20, DefaultWeights); got != nil {
		t.Errorf("TopN() = %v, want nil without preference signal", got)
	}
}

func TestTopNStableOrder(t *testing.T) {
	c := browseCatalog(23)
	prefs := map[string]float64{"Drama": 8}

	first := TopN(c, prefs, DefaultLikeThreshold, 20, DefaultWeights)
	for i := 0; i < 10; i++ {
		again := TopN(c, prefs, DefaultLikeThreshold, 20, DefaultWeights)
		for j := range first {
			if again[j].MovieID != first[j].MovieID {
				t.Fatalf("run %d: position %d = id %d, want id %d", i, j, again[j].MovieID, first[j].MovieID)
			}
		}
	}
}
