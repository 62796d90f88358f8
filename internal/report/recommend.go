package report

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/scoring"
)

// RecommendationTemperature leaves the advisor some room in phrasing.
const RecommendationTemperature = 0.25

// ErrNoRows is returned when there is nothing to recommend.
var ErrNoRows = errors.New("comparison has no rows")

const recommendationSystemPrompt = "You are a university academic advisor. " +
	"You answer clearly, directly and concisely."

// Completer sends a prompt to a language model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// Student is what the recommendation prompt knows about the user.
type Student struct {
	Name    string
	Degree  string
	Weights scoring.Weights
}

// Recommender writes the executive recommendation paragraph.
type Recommender struct {
	completer Completer
}

// NewRecommender creates a Recommender.
func NewRecommender(c Completer) *Recommender {
	return &Recommender{completer: c}
}

// Recommend asks the language model to recommend the top ranked row.
func (r *Recommender) Recommend(ctx context.Context, c *model.Comparison, s Student) (string, error) {
	if len(c.Rows) == 0 {
		return "", ErrNoRows
	}
	reply, err := r.completer.Complete(ctx, recommendationSystemPrompt, RecommendationPrompt(c, s))
	if err != nil {
		return "", fmt.Errorf("failed to generate recommendation: %w", err)
	}
	return strings.TrimSpace(reply), nil
}

// RecommendationPrompt builds the prompt for the top three rows.
func RecommendationPrompt(c *model.Comparison, s Student) string {
	name := s.Name
	if name == "" {
		name = "the student"
	}
	degree := s.Degree
	if degree == "" {
		degree = "the target degree"
	}

	var b strings.Builder
	b.WriteString("You are an academic advisor specialised in university transfers in Spain.\n\n")
	b.WriteString("CONTEXT\n")
	fmt.Fprintf(&b, "- Student: %s\n", name)
	fmt.Fprintf(&b, "- Target degree: %s\n", degree)
	b.WriteString("- The decision is based on credit recognition, prestige and cost of living.\n\n")

	b.WriteString("WEIGHTS\n")
	fmt.Fprintf(&b, "- Credit recognition: %.0f%%\n", s.Weights.Match*100)
	fmt.Fprintf(&b, "- Prestige: %.0f%%\n", s.Weights.Prestige*100)
	fmt.Fprintf(&b, "- Cost of living: %.0f%%\n\n", s.Weights.Cost*100)

	b.WriteString("RESULTS (SORTED BY FINAL SCORE)\n")
	best := c.Rows[0]
	fmt.Fprintf(&b, "1) %s (%s)\n", best.University, best.City)
	fmt.Fprintf(&b, "   - Credit recognition: %.2f%%\n", best.MatchPct)
	fmt.Fprintf(&b, "   - Prestige: %.0f\n", best.Prestige)
	fmt.Fprintf(&b, "   - Cost of living score: %.2f\n", best.CostScore)
	fmt.Fprintf(&b, "   - Final score: %.2f\n", best.FinalScore)
	for i := 1; i < 3; i++ {
		university := "-"
		if i < len(c.Rows) {
			university = c.Rows[i].University
		}
		fmt.Fprintf(&b, "%d) %s\n", i+1, university)
	}

	b.WriteString("\nINSTRUCTIONS\n")
	fmt.Fprintf(&b, "- Address %s directly.\n", name)
	b.WriteString("- Recommend ONE university (the #1).\n")
	b.WriteString("- Explain the main trade-off in 2-3 paragraphs.\n")
	b.WriteString("- Briefly mention why the others rank lower.\n")
	b.WriteString("- Include an ACTION PLAN section with 3 to 5 concrete steps.\n")
	b.WriteString("- Do NOT write a long report or repeat tables.\n")
	b.WriteString("- Do NOT use Markdown, only plain text with line breaks.\n")
	return b.String()
}
