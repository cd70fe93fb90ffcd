package handlers

import (
	"net/http"
	"strconv"

	"literasi-backend/internal/models"
	"literasi-backend/internal/services"
)

const defaultActivityLimit = 20

type CatalogHandler struct {
	catalog *services.CatalogService
}

func NewCatalogHandler(catalog *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListActivities serves GET /activities?topic=&difficulty=&limit=20.
func (h *CatalogHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ActivityFilter{
		Topic:      q.Get("topic"),
		Difficulty: q.Get("difficulty"),
		Limit:      defaultActivityLimit,
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
				map[string]string{"limit": "must be an integer"}, r))
			return
		}
		filter.Limit = n
	}

	activities, err := h.catalog.Activities(r.Context(), filter)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, activities)
}

func (h *CatalogHandler) ListBadges(w http.ResponseWriter, r *http.Request) {
	badges, err := h.catalog.Badges(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, badges)
}
