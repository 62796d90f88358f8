package scoring

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nao1215/uniscout/internal/livingcost"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/prestige"
)

func report(name string, match, pres, cost float64) *model.InstitutionReport {
	r := model.NewInstitutionReport(model.Institution{Name: name, City: "Madrid"}, name, nil)
	r.Matches = &model.MatchArtifact{MatchPct: match, LinksUsed: []string{"https://a.es"}, CandidateCourses: 12}
	r.Prestige = &model.PrestigeArtifact{Score: pres, Confidence: model.ConfidenceHigh}
	r.LivingCost = &model.LivingCostArtifact{CostScore: cost, Currency: "EUR", Monthly: model.CostRange{Min: 900, Mid: 1000, Max: 1100}}
	return r
}

func TestWeights(t *testing.T) {
	t.Parallel()

	t.Run("final score is the weighted sum rounded to two decimals", func(t *testing.T) {
		t.Parallel()
		w := DefaultWeights()
		if got := w.Final(40, 90, 16.25); got != 50.25 {
			t.Errorf("Final() = %v, want 50.25", got)
		}
	})

	t.Run("out of range weights are rejected", func(t *testing.T) {
		t.Parallel()
		if err := (Weights{Match: 1.2}).Validate(); err == nil {
			t.Error("expected an error")
		}
		if err := DefaultWeights().Validate(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}

func TestRow(t *testing.T) {
	t.Parallel()

	t.Run("complete report", func(t *testing.T) {
		t.Parallel()
		row := Row(report("UPM", 50, 90, 62.5), DefaultWeights())
		if row.FinalScore != 64.5 {
			t.Errorf("unexpected final score %v", row.FinalScore)
		}
		if row.MonthlyMidEUR != 1000 {
			t.Errorf("unexpected monthly mid %v", row.MonthlyMidEUR)
		}
		want := "links=1 | extracted=12 | cost=900-1100 EUR/month | prestige=90(HIGH)"
		if row.Summary != want {
			t.Errorf("Summary = %q, want %q", row.Summary, want)
		}
	})

	t.Run("missing stages use neutral values", func(t *testing.T) {
		t.Parallel()
		r := model.NewInstitutionReport(model.Institution{Name: "X"}, "x", nil)
		r.LivingCost = &model.LivingCostArtifact{CostScore: 99, Error: "blocked"}
		row := Row(r, DefaultWeights())
		if row.MatchPct != 0 || row.Prestige != prestige.DegradedScore || row.CostScore != livingcost.NeutralScore {
			t.Errorf("unexpected row %+v", row)
		}
		if row.Notes == nil || row.Telemetry == nil {
			t.Error("expected empty, non-nil notes and telemetry")
		}
	})
}

func TestBuildComparison(t *testing.T) {
	t.Parallel()

	reports := []*model.InstitutionReport{
		report("A", 10, 70, 50),
		report("B", 90, 90, 50),
		nil,
		report("C", 10, 70, 50),
		report("D", 50, 80, 50),
	}
	rows := BuildComparison(reports, DefaultWeights())

	var got []string
	for _, r := range rows {
		got = append(got, r.University)
	}
	if diff := cmp.Diff([]string{"B", "D", "A", "C"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}
