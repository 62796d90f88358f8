package model

import "time"

// ComparisonRow is the downstream bundle for one institution.
type ComparisonRow struct {
	University    string                `json:"university"`
	City          string                `json:"city"`
	MatchPct      float64               `json:"match_pct"`
	Prestige      float64               `json:"prestige"`
	CostScore     float64               `json:"cost_score"`
	MonthlyMidEUR float64               `json:"monthly_mid_eur"`
	FinalScore    float64               `json:"final_score"`
	Summary       string                `json:"summary"`
	Notes         []MatchNote           `json:"notes"`
	Telemetry     []FetchTelemetryEntry `json:"telemetry"`
	Errors        []string              `json:"errors,omitempty"`
}

// Comparison is the ranked result of one run.
type Comparison struct {
	RunID          string          `json:"run_id"`
	MissionID      string          `json:"mission_id"`
	Goal           string          `json:"goal,omitempty"`
	Generated      time.Time       `json:"generated"`
	Rows           []ComparisonRow `json:"rows"`
	Recommendation string          `json:"recommendation,omitempty"`
}

// Best returns the top ranked row, or nil for an empty comparison.
func (c *Comparison) Best() *ComparisonRow {
	if len(c.Rows) == 0 {
		return nil
	}
	return &c.Rows[0]
}
