package handlers

import (
	"net/http"

	"literasi-backend/internal/models"
	"literasi-backend/internal/services"
)

type ChildHandler struct {
	children *services.ChildService
}

func NewChildHandler(children *services.ChildService) *ChildHandler {
	return &ChildHandler{children: children}
}

func (h *ChildHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateChildRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	id, err := h.children.Register(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}

func (h *ChildHandler) List(w http.ResponseWriter, r *http.Request) {
	children, err := h.children.List(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, children)
}
