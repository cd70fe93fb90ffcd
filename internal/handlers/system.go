package handlers

import (
	"net/http"

	"literasi-backend/internal/services"
)

type SystemHandler struct {
	diagnostics *services.DiagnosticsService
}

func NewSystemHandler(diagnostics *services.DiagnosticsService) *SystemHandler {
	return &SystemHandler{diagnostics: diagnostics}
}

func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Gamified Early Digital Literacy API running",
	})
}

// Test always answers 200; store problems are described in the body.
func (h *SystemHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.diagnostics.Diagnose(r.Context()))
}
