package services

import (
	"context"

	"literasi-backend/internal/docstore"
	"literasi-backend/internal/models"
)

const (
	maxDiagnosticCollections = 10
	maxDiagnosticErrorLen    = 80
)

type DiagnosticsService struct {
	store           docstore.Store
	hasDatabaseURL  bool
	hasDatabaseName bool
}

func NewDiagnosticsService(store docstore.Store, hasDatabaseURL, hasDatabaseName bool) *DiagnosticsService {
	return &DiagnosticsService{
		store:           store,
		hasDatabaseURL:  hasDatabaseURL,
		hasDatabaseName: hasDatabaseName,
	}
}

// Diagnose never fails; store errors are reported in the result.
func (s *DiagnosticsService) Diagnose(ctx context.Context) models.Diagnostics {
	connected := docstore.IsConnected(s.store)

	d := models.Diagnostics{
		Backend:          "✅ Running",
		Database:         "❌ Not Available",
		DatabaseURL:      setOrNot(s.hasDatabaseURL),
		DatabaseName:     setOrNot(s.hasDatabaseName),
		ConnectionStatus: "Not Connected",
		Collections:      []string{},
	}
	if !connected {
		return d
	}

	d.Database = "✅ Connected"
	d.ConnectionStatus = "Connected"

	names, err := s.store.Collections(ctx, maxDiagnosticCollections)
	if err != nil {
		d.Database = "⚠️ Error: " + truncate(err.Error(), maxDiagnosticErrorLen)
		return d
	}
	if names != nil {
		d.Collections = names
	}
	return d
}

func setOrNot(set bool) string {
	if set {
		return "✅ Set"
	}
	return "❌ Not Set"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
