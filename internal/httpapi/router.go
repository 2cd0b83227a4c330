package httpapi

import "net/http"

// NewMux wires every handler behind method dispatch. main() attaches the
// middleware chain around the returned mux.
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	// Session lifecycle
	sh := SessionHandler{Sessions: d.Sessions, DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/session/login", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Login,
	}))
	mux.HandleFunc("/session/logout", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Logout,
	}))
	mux.HandleFunc("/session/save", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: sh.Save,
	}))
	mux.HandleFunc("/session", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Get,
	}))

	// Ratings
	rh := RatingsHandler{Catalog: d.Catalog, Sessions: d.Sessions, Hub: d.Hub}
	mux.HandleFunc("/ratings", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  rh.List,
		http.MethodPost: rh.Rate,
	}))
	mux.HandleFunc("/ratings/import", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rh.Import,
	}))
	mux.HandleFunc("/ratings/export", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rh.Export,
	}))

	// Recommendations
	rec := RecommendHandler{Catalog: d.Catalog, Sessions: d.Sessions, CfgVal: d.CfgVal, Hub: d.Hub}
	mux.HandleFunc("/discover", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rec.Discover,
	}))
	mux.HandleFunc("/browse", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rec.Browse,
	}))
	mux.HandleFunc("/random", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rec.Random,
	}))
	mux.HandleFunc("/random/reroll", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: rec.Reroll,
	}))
	mux.HandleFunc("/recommended", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: rec.Recommended,
	}))

	// Catalog
	cath := CatalogHandler{Catalog: d.Catalog}
	mux.HandleFunc("/catalog/genres", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cath.Genres,
	}))
	mux.HandleFunc("/catalog/movies/", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: cath.MovieByPath,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
		Hub:         d.Hub,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	// Health
	hh := HealthHandler{Catalog: d.Catalog}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	return mux
}
