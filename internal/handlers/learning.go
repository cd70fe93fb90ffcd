package handlers

import (
	"net/http"

	"literasi-backend/internal/models"
	"literasi-backend/internal/services"
)

type LearningHandler struct {
	recommendations *services.RecommendationService
	progress        *services.ProgressService
	reports         *services.ReportService
}

func NewLearningHandler(recommendations *services.RecommendationService, progress *services.ProgressService, reports *services.ReportService) *LearningHandler {
	return &LearningHandler{
		recommendations: recommendations,
		progress:        progress,
		reports:         reports,
	}
}

func (h *LearningHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req models.RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.recommendations.Recommend(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *LearningHandler) SubmitProgress(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitProgressRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.progress.Submit(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *LearningHandler) Report(w http.ResponseWriter, r *http.Request) {
	var req models.ReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	res, err := h.reports.Report(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
