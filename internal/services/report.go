package services

import (
	"context"
	"math"

	"literasi-backend/internal/models"
	"literasi-backend/internal/repository"
)

const defaultReportLimit = 20

type ReportService struct {
	progress *repository.ProgressRepo
}

func NewReportService(progress *repository.ProgressRepo) *ReportService {
	return &ReportService{progress: progress}
}

// Report returns the child's latest sessions, newest first, with averages
// over the returned items.
func (s *ReportService) Report(ctx context.Context, req models.ReportRequest) (*models.Report, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	childID, err := parseID("child_id", req.ChildID)
	if err != nil {
		return nil, err
	}

	limit := defaultReportLimit
	if req.Limit != nil && *req.Limit > 0 {
		limit = *req.Limit
	}

	items, err := s.progress.ListRecentByChild(ctx, childID, limit)
	if err != nil {
		return nil, err
	}

	return &models.Report{
		Items:   items,
		Summary: Summarize(items),
	}, nil
}

// Summarize averages accuracy (2 decimals) and duration (whole seconds,
// ties to even). An empty history yields a zero summary.
func Summarize(items []models.Progress) models.ReportSummary {
	if len(items) == 0 {
		return models.ReportSummary{}
	}

	var accSum float64
	var durSum int
	for _, p := range items {
		accSum += p.Accuracy
		durSum += p.DurationSec
	}
	n := float64(len(items))

	return models.ReportSummary{
		TotalSessions:  len(items),
		AvgAccuracy:    math.RoundToEven(accSum/n*100) / 100,
		AvgDurationSec: int(math.RoundToEven(float64(durSum) / n)),
	}
}
