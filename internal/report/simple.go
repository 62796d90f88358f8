package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/nao1215/uniscout/internal/model"
)

// SimpleWriter outputs the ranking as a console table.
type SimpleWriter struct {
	baseWriter

	// showSummary adds the per-institution summary column.
	showSummary bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSummary adds the links/extracted/cost/prestige summary column.
func WithSummary(show bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.showSummary = show
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the ranking table followed by the recommendation, if any.
func (w *SimpleWriter) Write(c *model.Comparison) (int, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{"#", "University", "City", "Match %", "Prestige", "Cost", "EUR/month", "Final"}
	if w.showSummary {
		header = append(header, "Summary")
	}
	t.AppendHeader(header)

	for i, r := range c.Rows {
		row := table.Row{
			i + 1,
			r.University,
			r.City,
			fmt.Sprintf("%.2f", r.MatchPct),
			fmt.Sprintf("%.0f", r.Prestige),
			fmt.Sprintf("%.2f", r.CostScore),
			monthly(r.MonthlyMidEUR),
			fmt.Sprintf("%.2f", r.FinalScore),
		}
		if w.showSummary {
			row = append(row, r.Summary)
		}
		t.AppendRow(row)
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	out := t.Render() + "\n"
	if best := c.Best(); best != nil {
		out += fmt.Sprintf("\nBest option: %s (%s), final score %.2f\n", best.University, best.City, best.FinalScore)
	}
	if c.Recommendation != "" {
		out += "\n" + c.Recommendation + "\n"
	}
	return io.WriteString(w.output, out)
}

func monthly(v float64) string {
	if v <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f", v)
}
