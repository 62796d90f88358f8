package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/nao1215/uniscout/internal/model"
)

// CSVHeader is the column layout of comparison.csv.
var CSVHeader = []string{
	"university", "city", "match_pct", "prestige", "cost_score", "monthly_mid_eur", "final_score",
}

// CSVWriter outputs one row per institution in ranking order.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the comparison rows.
func (w *CSVWriter) Write(c *model.Comparison) (int, error) {
	cw := &countingWriter{w: w.output}
	out := csv.NewWriter(cw)

	if err := out.Write(CSVHeader); err != nil {
		return cw.n, err
	}
	for _, r := range c.Rows {
		record := []string{
			r.University,
			r.City,
			formatFloat(r.MatchPct),
			formatFloat(r.Prestige),
			formatFloat(r.CostScore),
			formatFloat(r.MonthlyMidEUR),
			formatFloat(r.FinalScore),
		}
		if err := out.Write(record); err != nil {
			return cw.n, err
		}
	}
	out.Flush()
	return cw.n, out.Error()
}

// formatFloat prints the shortest decimal form of v.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
