package httpapi

import (
	"net/http"

	"cinematch-engine/internal/catalog"
)

type HealthHandler struct {
	Catalog *catalog.Catalog
}

func (h HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"ok":      true,
		"catalog": h.Catalog.Len(),
	})
}
