package httpapi

import (
	"encoding/json"
	"net/http"

	"cinematch-engine/internal/catalog"
	"cinematch-engine/internal/events"
	"cinematch-engine/internal/ratingscsv"
	"cinematch-engine/internal/session"
)

type RatingsHandler struct {
	Catalog  *catalog.Catalog
	Sessions *session.Manager
	Hub      *events.Hub
}

// Rate records one rating and returns the recomputed preferences.
func (h RatingsHandler) Rate(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}

	var body struct {
		MovieID int `json:"movie_id"`
		Rating  int `json:"rating"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}

	if err := s.Rate(body.MovieID, body.Rating); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_rating", err.Error())
		return
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeRatingSaved,
		map[string]any{"username": s.Username(), "movie_id": body.MovieID, "rating": body.Rating}))
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"preferences": s.Prefs(),
	})
}

func (h RatingsHandler) List(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ratings": s.Ratings()})
}

// Import replaces the session's ratings with a (title, rating) CSV body.
// Preferences come out of the same full recompute as incremental rating, so
// an imported map and a hand-rated one can never disagree.
func (h RatingsHandler) Import(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}

	ratings, err := ratingscsv.Import(r.Body, h.Catalog)
	if err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_csv", err.Error())
		return
	}
	s.SetRatings(ratings)

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeRatingsImport,
		map[string]any{"username": s.Username(), "imported": len(ratings)}))
	WriteJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"imported":    len(ratings),
		"preferences": s.Prefs(),
	})
}

func (h RatingsHandler) Export(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="ratings.csv"`)
	if err := ratingscsv.Export(w, h.Catalog, s.Ratings()); err != nil {
		// headers are gone already; all we can do is log via the access log status
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
