package report

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/uniscout/internal/model"
)

// MarkdownWriter outputs report.md.
//
// Design decision: the nao1215/markdown builder keeps tables and details
// blocks well formed however long the extracted course names get.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the comparison in Markdown format.
func (w *MarkdownWriter) Write(c *model.Comparison) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, c)
	w.writeRanking(md, c)
	w.writeRecommendation(md, c)
	for _, r := range c.Rows {
		w.writeInstitution(md, r)
	}
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, c *model.Comparison) {
	md.H1("University transfer comparison")
	md.PlainText("")

	rows := [][]string{
		{"Mission", cmp.Or(c.MissionID, "-")},
		{"Run", "`" + cmp.Or(c.RunID, "-") + "`"},
		{"Generated", c.Generated.Format("2006-01-02 15:04:05 MST")},
		{"Institutions", strconv.Itoa(len(c.Rows))},
	}
	if c.Goal != "" {
		rows = append(rows, []string{"Goal", c.Goal})
	}
	md.Table(markdown.TableSet{Header: []string{"Property", "Value"}, Rows: rows})
	md.PlainText("")
}

func (w *MarkdownWriter) writeRanking(md *markdown.Markdown, c *model.Comparison) {
	md.H2("Ranking")
	md.PlainText("")

	if len(c.Rows) == 0 {
		md.PlainText("No institutions were evaluated.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(c.Rows))
	for i, r := range c.Rows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			r.University,
			r.City,
			fmt.Sprintf("%.2f", r.MatchPct),
			fmt.Sprintf("%.0f", r.Prestige),
			fmt.Sprintf("%.2f", r.CostScore),
			monthly(r.MonthlyMidEUR),
			"**" + fmt.Sprintf("%.2f", r.FinalScore) + "**",
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "University", "City", "Match %", "Prestige", "Cost score", "EUR/month", "Final"},
		Rows:   rows,
	})
	md.PlainText("")

	best := c.Best()
	md.Tip(fmt.Sprintf("Best option: %s (%s) with a final score of %.2f.", best.University, best.City, best.FinalScore))
	md.PlainText("")

	w.writePieChart(md, c)
}

// writePieChart shows each institution's share of the summed final scores.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, c *model.Comparison) {
	if len(c.Rows) < 2 {
		return
	}
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Final score"),
		piechart.WithShowData(true),
	)
	added := 0
	for _, r := range c.Rows {
		if r.FinalScore <= 0 {
			continue
		}
		chart.LabelAndIntValue(r.University, uint64(math.Round(r.FinalScore)))
		added++
	}
	if added == 0 {
		return
	}
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func (w *MarkdownWriter) writeRecommendation(md *markdown.Markdown, c *model.Comparison) {
	if c.Recommendation == "" {
		return
	}
	md.H2("Recommendation")
	md.PlainText("")
	md.PlainText(c.Recommendation)
	md.PlainText("")
}

func (w *MarkdownWriter) writeInstitution(md *markdown.Markdown, r model.ComparisonRow) {
	md.H2(r.University)
	md.PlainText("")
	md.PlainText("`" + r.Summary + "`")
	md.PlainText("")

	if len(r.Errors) > 0 {
		md.Warningf("%d stage(s) degraded; scores use neutral values where data is missing.", len(r.Errors))
		md.PlainText("")
		md.BulletList(r.Errors...)
		md.PlainText("")
	}

	w.writeNotes(md, r.Notes)
	w.writeTelemetry(md, r.Telemetry)
}

func (w *MarkdownWriter) writeNotes(md *markdown.Markdown, notes []model.MatchNote) {
	md.H3("Course matches")
	md.PlainText("")

	if len(notes) == 0 {
		md.PlainText("No match notes.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(notes))
	for i, n := range notes {
		best := "-"
		if n.BestMatch != nil {
			best = truncateString(*n.BestMatch, 60)
		}
		verdict := "no"
		if n.Matched() {
			verdict = "yes"
		}
		confidence := "-"
		if n.ClassifierConfidence > 0 {
			confidence = fmt.Sprintf("%.2f", n.ClassifierConfidence)
		}
		rows[i] = []string{
			n.Course,
			best,
			strconv.Itoa(n.Score),
			verdict,
			string(n.Method),
			confidence,
			truncateString(n.Reason, 80),
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Course", "Best candidate", "Score", "Match", "Method", "Confidence", "Reason"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeTelemetry(md *markdown.Markdown, entries []model.FetchTelemetryEntry) {
	if len(entries) == 0 {
		return
	}

	failed := 0
	lines := make([]string, len(entries))
	for i, e := range entries {
		status := fmt.Sprintf("%d lines", e.Lines)
		if e.Failed() {
			failed++
			status = "failed: " + e.Error
		}
		lines[i] = fmt.Sprintf("[%s] %s (%s)", e.Kind, e.URL, status)
	}

	var body string
	for _, l := range lines {
		body += "- " + l + "\n"
	}
	summary := fmt.Sprintf("Fetch telemetry: %d source(s), %d failed", len(entries), failed)
	md.Details(summary, body)
	md.PlainText("")
}

func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by uniscout*")
}
