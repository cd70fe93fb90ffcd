package models

type ReportRequest struct {
	ChildID string `json:"child_id" validate:"required"`
	Limit   *int   `json:"limit" validate:"omitempty,min=0"`
}

type ReportSummary struct {
	TotalSessions  int     `json:"total_sessions"`
	AvgAccuracy    float64 `json:"avg_accuracy"`
	AvgDurationSec int     `json:"avg_duration_sec"`
}

type Report struct {
	Items   []Progress    `json:"items"`
	Summary ReportSummary `json:"summary"`
}

// Diagnostics is the body of GET /test.
type Diagnostics struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}
