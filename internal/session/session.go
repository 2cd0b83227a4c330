package session

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"cinematch-engine/internal/catalog"
	"cinematch-engine/internal/recommend"
)

// Session owns one user's ratings and the preferences derived from them.
// Preferences are recomputed from scratch on every ratings change, so
// Prefs() always equals Aggregate(Ratings()) — there is no other update path.
type Session struct {
	mu sync.Mutex

	username string
	cat      *catalog.Catalog

	ratings map[int]int
	prefs   map[string]float64
	newUser bool

	// random-pick state: the pick persists across views until an explicit
	// reroll, so "rate this" always points at the movie being shown
	pickID    int
	pickValid bool
	rng       *rand.Rand // draws happen under mu, so an unlocked source is fine
}

func New(username string, cat *catalog.Catalog) *Session {
	return NewWithRand(username, cat, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewWithRand injects the random source so pick behavior is reproducible
// under test.
func NewWithRand(username string, cat *catalog.Catalog, rng *rand.Rand) *Session {
	return &Session{
		username: username,
		cat:      cat,
		ratings:  map[int]int{},
		prefs:    map[string]float64{},
		newUser:  true,
		rng:      rng,
	}
}

func (s *Session) Username() string { return s.username }

// NewUser reports whether this session has no ratings yet.
func (s *Session) NewUser() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.newUser
}

// Rate records a single rating and recomputes preferences. Ratings for ids
// the catalog does not know are stored but contribute nothing.
func (s *Session) Rate(movieID, rating int) error {
	if rating < 1 || rating > 10 {
		return fmt.Errorf("rating %d out of range 1..10", rating)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings[movieID] = rating
	s.recompute()
	return nil
}

// SetRatings replaces the whole ratings map, e.g. from a CSV import or a
// stored snapshot. Goes through the same recompute as Rate, so seeding and
// incremental rating end in identical preferences.
func (s *Session) SetRatings(ratings map[int]int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings = make(map[int]int, len(ratings))
	for id, r := range ratings {
		if r >= 1 && r <= 10 {
			s.ratings[id] = r
		}
	}
	s.recompute()
}

// caller holds s.mu
func (s *Session) recompute() {
	s.prefs = recommend.Aggregate(s.ratings, s.cat)
	s.newUser = len(s.ratings) == 0
}

// Ratings returns a copy of the ratings map.
func (s *Session) Ratings() map[int]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int]int, len(s.ratings))
	for id, r := range s.ratings {
		out[id] = r
	}
	return out
}

// Prefs returns a copy of the derived genre preferences.
func (s *Session) Prefs() map[string]float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]float64, len(s.prefs))
	for g, p := range s.prefs {
		out[g] = p
	}
	return out
}

// CurrentPick returns the session's random recommendation, drawing one on
// first call and then returning the same movie until Reroll. Rating the
// picked movie does not clear it.
func (s *Session) CurrentPick(threshold float64) (catalog.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pickValid {
		if e, ok := s.cat.ByID(s.pickID); ok {
			return e, nil
		}
		s.pickValid = false
	}

	e, err := recommend.RandomPick(s.cat, s.prefs, threshold, s.rng)
	if err != nil {
		return catalog.Entry{}, err
	}
	s.pickID = e.MovieID
	s.pickValid = true
	return e, nil
}

// Reroll clears the current pick and draws a new one. The new pick may
// coincide with the old by chance.
func (s *Session) Reroll(threshold float64) (catalog.Entry, error) {
	s.mu.Lock()
	s.pickValid = false
	s.mu.Unlock()
	return s.CurrentPick(threshold)
}
