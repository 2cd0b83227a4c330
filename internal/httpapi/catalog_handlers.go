package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"cinematch-engine/internal/catalog"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

func (h CatalogHandler) Genres(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"genres": h.Catalog.Genres()})
}

// MovieByPath serves /catalog/movies/{id}.
func (h CatalogHandler) MovieByPath(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/catalog/movies/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "movie id must be a positive integer")
		return
	}

	e, ok := h.Catalog.ByID(id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "unknown_movie", "no movie with id "+idStr)
		return
	}
	WriteJSON(w, http.StatusOK, e)
}
