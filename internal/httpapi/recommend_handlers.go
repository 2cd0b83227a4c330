package httpapi

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"cinematch-engine/internal/catalog"
	"cinematch-engine/internal/config"
	"cinematch-engine/internal/events"
	"cinematch-engine/internal/recommend"
	"cinematch-engine/internal/session"
)

type RecommendHandler struct {
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	CfgVal   *atomic.Value
	Hub      *events.Hub
}

// Discover returns the curated seed set new users rate first.
func (h RecommendHandler) Discover(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"movies": recommend.DiscoverySeed(h.Catalog),
	})
}

// Browse pages through movies matching any of the selected genres.
func (h RecommendHandler) Browse(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var genres []string
	for _, g := range strings.Split(q.Get("genres"), ",") {
		if g = strings.TrimSpace(g); g != "" {
			genres = append(genres, g)
		}
	}
	if len(genres) == 0 {
		WriteError(w, r, http.StatusBadRequest, "missing_genres", "genres query param is required")
		return
	}

	page := 1
	if p, err := strconv.Atoi(q.Get("page")); err == nil && p > 0 {
		page = p
	}

	movies, totalPages := recommend.BrowseByGenre(h.Catalog, genres, page)
	WriteJSON(w, http.StatusOK, map[string]any{
		"movies":      movies,
		"page":        page,
		"total_pages": totalPages,
	})
}

type pickResponse struct {
	Movie        catalog.Entry `json:"movie"`
	CommonGenres []string      `json:"common_genres,omitempty"`
}

// Random returns the session's current random pick, drawing one if needed.
// The pick stays put across repeated views; only /random/reroll changes it.
func (h RecommendHandler) Random(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}

	threshold := h.CfgVal.Load().(config.Config).Scoring.LikeThreshold
	e, err := s.CurrentPick(threshold)
	if err != nil {
		writePickError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, pickResponse{
		Movie:        e,
		CommonGenres: commonPreferred(e, s.Prefs(), threshold),
	})
}

func (h RecommendHandler) Reroll(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}

	threshold := h.CfgVal.Load().(config.Config).Scoring.LikeThreshold
	e, err := s.Reroll(threshold)
	if err != nil {
		writePickError(w, r, err)
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypePickRerolled,
		map[string]any{"username": s.Username(), "movie_id": e.MovieID}))
	WriteJSON(w, http.StatusOK, pickResponse{
		Movie:        e,
		CommonGenres: commonPreferred(e, s.Prefs(), threshold),
	})
}

// Recommended returns the top-20 ranked list under the current preferences.
func (h RecommendHandler) Recommended(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}

	cfg := h.CfgVal.Load().(config.Config)
	ranked := recommend.TopN(h.Catalog, s.Prefs(), cfg.Scoring.LikeThreshold, 20, cfg.Weights())
	if len(ranked) == 0 {
		writePickError(w, r, recommend.ErrNoSignal)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"movies": ranked})
}

// writePickError maps the no-signal state to 409 — the caller should send
// the user back to rate more movies, nothing is broken.
func writePickError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, recommend.ErrNoSignal) {
		WriteError(w, r, http.StatusConflict, "no_preference_signal",
			"no genre preference exceeds the liking threshold; rate more movies first")
		return
	}
	WriteError(w, r, http.StatusInternalServerError, "internal_error", err.Error())
}

// commonPreferred lists the preferred genres the entry shares with the user,
// the "why we think you'll like it" part of the response.
func commonPreferred(e catalog.Entry, prefs map[string]float64, threshold float64) []string {
	var out []string
	for _, g := range recommend.PreferredGenres(prefs, threshold) {
		if e.HasGenre(g) {
			out = append(out, g)
		}
	}
	sort.Strings(out)
	return out
}
