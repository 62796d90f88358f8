// Package scoring combines match, prestige and cost into the final ranking.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/nao1215/uniscout/internal/livingcost"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/prestige"
)

// Weights are the user's preferences, each in [0,1].
type Weights struct {
	Match    float64 `yaml:"weight_match" json:"weight_match"`
	Prestige float64 `yaml:"weight_prestige" json:"weight_prestige"`
	Cost     float64 `yaml:"weight_cost" json:"weight_cost"`
}

// DefaultWeights favour curricular overlap.
func DefaultWeights() Weights {
	return Weights{Match: 0.5, Prestige: 0.3, Cost: 0.2}
}

// IsZero reports whether no weight is set.
func (w Weights) IsZero() bool {
	return w == Weights{}
}

// Validate checks that every weight lies in [0,1].
func (w Weights) Validate() error {
	for name, v := range map[string]float64{"weight_match": w.Match, "weight_prestige": w.Prestige, "weight_cost": w.Cost} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%s must be between 0 and 1, got %v", name, v)
		}
	}
	return nil
}

// Final returns the weighted score rounded to two decimals.
func (w Weights) Final(match, prestige, cost float64) float64 {
	return round2(w.Match*match + w.Prestige*prestige + w.Cost*cost)
}

// Row builds the comparison row of one institution. Missing stages use
// neutral values: 0 match, the degraded prestige and the neutral cost score.
func Row(r *model.InstitutionReport, w Weights) model.ComparisonRow {
	row := model.ComparisonRow{
		University: r.Institution.Name,
		City:       r.Institution.City,
		Prestige:   prestige.DegradedScore,
		CostScore:  livingcost.NeutralScore,
		Notes:      []model.MatchNote{},
		Telemetry:  []model.FetchTelemetryEntry{},
		Errors:     r.Errors,
	}

	links, extracted := 0, 0
	if m := r.Matches; m != nil {
		row.MatchPct = m.MatchPct
		row.Notes = m.Notes
		links = len(m.LinksUsed)
		extracted = m.CandidateCourses
	}
	if s := r.Sources; s != nil {
		row.Telemetry = s.Telemetry
	}

	prestigeConf := model.ConfidenceLow
	if p := r.Prestige; p != nil {
		row.Prestige = p.Score
		prestigeConf = p.Confidence
	}

	costNote := "unknown"
	if lc := r.LivingCost; lc != nil && lc.Error == "" {
		row.CostScore = lc.CostScore
		row.MonthlyMidEUR = lc.Monthly.Mid
		costNote = livingcost.Note(*lc)
	}

	row.FinalScore = w.Final(row.MatchPct, row.Prestige, row.CostScore)
	row.Summary = fmt.Sprintf("links=%d | extracted=%d | cost=%s | prestige=%.0f(%s)",
		links, extracted, costNote, row.Prestige, prestigeConf)
	return row
}

// BuildComparison returns the rows of reports sorted by final score,
// highest first. Ties keep the input order.
func BuildComparison(reports []*model.InstitutionReport, w Weights) []model.ComparisonRow {
	rows := make([]model.ComparisonRow, 0, len(reports))
	for _, r := range reports {
		if r == nil {
			continue
		}
		rows = append(rows, Row(r, w))
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].FinalScore > rows[j].FinalScore
	})
	return rows
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
