package httpapi

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"cinematch-engine/internal/events"
	"cinematch-engine/internal/session"
	"cinematch-engine/internal/store"
)

type SessionHandler struct {
	Sessions *session.Manager
	DB       *sql.DB
	Hub      *events.Hub
}

type sessionInfo struct {
	Username    string             `json:"username"`
	NewUser     bool               `json:"new_user"`
	RatingCount int                `json:"rating_count"`
	Preferences map[string]float64 `json:"preferences"`
}

func infoFor(s *session.Session) sessionInfo {
	return sessionInfo{
		Username:    s.Username(),
		NewUser:     s.NewUser(),
		RatingCount: len(s.Ratings()),
		Preferences: s.Prefs(),
	}
}

// Login accepts any username/password pair as long as both are present —
// there is no real credential store. A stored ratings snapshot, if one
// exists, seeds the fresh session through the same aggregation path the
// in-session rating flow uses.
func (h SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	if body.Username == "" || body.Password == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_credentials", "username and password are required")
		return
	}

	s := h.Sessions.Login(body.Username)

	if s.NewUser() {
		snap, err := store.LoadRatings(r.Context(), h.DB, body.Username)
		if err != nil {
			log.Printf("[session] snapshot load failed user=%s err=%v", body.Username, err)
		} else if len(snap) > 0 {
			s.SetRatings(snap)
			log.Printf("[session] restored %d ratings for user=%s", len(snap), body.Username)
		}
	}

	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeSessionCreated,
		map[string]any{"username": body.Username}))
	WriteJSON(w, http.StatusOK, infoFor(s))
}

func (h SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}
	WriteJSON(w, http.StatusOK, infoFor(s))
}

// Save persists the session's ratings snapshot without ending the session.
func (h SessionHandler) Save(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}
	if err := store.SaveRatings(r.Context(), h.DB, s.Username(), s.Ratings()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "snapshot_failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "saved": len(s.Ratings())})
}

// Logout snapshots and destroys the session.
func (h SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	s, ok := sessionFrom(h.Sessions, w, r)
	if !ok {
		return
	}
	if err := store.SaveRatings(r.Context(), h.DB, s.Username(), s.Ratings()); err != nil {
		// session still goes away; the snapshot is best-effort on logout
		log.Printf("[session] snapshot save failed user=%s err=%v", s.Username(), err)
	}
	h.Sessions.Logout(s.Username())
	h.Hub.Publish(events.MakeEvent(RequestIDFrom(r.Context()), events.TypeSessionClosed,
		map[string]any{"username": s.Username()}))
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// sessionFrom resolves the ?user= query param to a live session, writing the
// error response itself when it can't.
func sessionFrom(m *session.Manager, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	user := strings.TrimSpace(r.URL.Query().Get("user"))
	if user == "" {
		WriteError(w, r, http.StatusBadRequest, "missing_user", "user query param is required")
		return nil, false
	}
	s, ok := m.Get(user)
	if !ok {
		WriteError(w, r, http.StatusUnauthorized, "no_session", "no active session for user "+user)
		return nil, false
	}
	return s, true
}
