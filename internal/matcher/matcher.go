package matcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/nao1215/uniscout/internal/model"
)

const (
	// DefaultSimilarityThreshold accepts a pair on similarity alone.
	DefaultSimilarityThreshold = 75
	// DefaultBandLow is the lowest similarity escalated to the classifier.
	DefaultBandLow = 55
	// DefaultBandHigh is the highest similarity escalated to the classifier.
	DefaultBandHigh = 74
	// DefaultConfidenceThreshold is the classifier confidence needed to accept.
	DefaultConfidenceThreshold = 0.70

	// ReasonSimilarity explains a similarity match.
	ReasonSimilarity = "high token-set similarity"
	// ReasonBelowThreshold explains a rejected pair.
	ReasonBelowThreshold = "below threshold"
	// ReasonNoCandidates explains a rejection when nothing was extracted.
	ReasonNoCandidates = "no candidate courses extracted"

	// rawExcerptLength bounds the raw classifier text quoted in reasons.
	rawExcerptLength = 120
)

// Thresholds configures the three-way decision.
type Thresholds struct {
	// SimilarityThreshold accepts pairs scoring at least this much.
	SimilarityThreshold float64
	// BandLow and BandHigh bound the inclusive escalation band.
	BandLow  float64
	BandHigh float64
	// ConfidenceThreshold is the minimum classifier confidence to accept.
	ConfidenceThreshold float64
}

// DefaultThresholds returns the default decision thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SimilarityThreshold: DefaultSimilarityThreshold,
		BandLow:             DefaultBandLow,
		BandHigh:            DefaultBandHigh,
		ConfidenceThreshold: DefaultConfidenceThreshold,
	}
}

// ThresholdsFrom converts per-institution settings, keeping defaults for zero fields.
func ThresholdsFrom(s model.MatchingSettings) Thresholds {
	t := DefaultThresholds()
	if s.SimilarityThreshold > 0 {
		t.SimilarityThreshold = float64(s.SimilarityThreshold)
	}
	if s.BandLow > 0 {
		t.BandLow = float64(s.BandLow)
	}
	if s.BandHigh > 0 {
		t.BandHigh = float64(s.BandHigh)
	}
	if s.ConfidenceThreshold > 0 {
		t.ConfidenceThreshold = s.ConfidenceThreshold
	}
	return t
}

// Matcher decides which of the user's courses have an equivalent candidate.
type Matcher struct {
	scorer     Scorer
	classifier Classifier
	thresholds Thresholds
	logger     *slog.Logger
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithScorer sets the similarity scorer. The default is TokenSetScorer.
func WithScorer(s Scorer) Option {
	return func(m *Matcher) {
		m.scorer = s
	}
}

// WithClassifier enables escalation of ambiguous pairs. A nil classifier
// means no classifier is available.
func WithClassifier(c Classifier) Option {
	return func(m *Matcher) {
		m.classifier = c
	}
}

// WithThresholds sets the decision thresholds.
func WithThresholds(t Thresholds) Option {
	return func(m *Matcher) {
		m.thresholds = t
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Matcher) {
		m.logger = logger
	}
}

// New creates a Matcher.
func New(opts ...Option) *Matcher {
	m := &Matcher{
		scorer:     TokenSetScorer{},
		thresholds: DefaultThresholds(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// HasClassifier reports whether ambiguous pairs are escalated.
func (m *Matcher) HasClassifier() bool {
	return m.classifier != nil
}

// Match returns the percentage of the user's courses that matched a
// candidate, rounded to two decimals, and one note per user course in input order.
func (m *Matcher) Match(ctx context.Context, mine, candidates []string) (float64, []model.MatchNote) {
	if len(mine) == 0 {
		return 0, []model.MatchNote{}
	}

	notes := make([]model.MatchNote, 0, len(mine))
	if len(candidates) == 0 {
		for _, course := range mine {
			notes = append(notes, model.MatchNote{
				Course: course,
				Method: model.MethodNone,
				Reason: ReasonNoCandidates,
			})
		}
		return 0, notes
	}

	hits := 0
	for _, course := range mine {
		note := m.matchOne(ctx, course, candidates)
		if note.Matched() {
			hits++
		}
		notes = append(notes, note)
	}

	pct := 100 * float64(hits) / float64(len(mine))
	return math.Round(pct*100) / 100, notes
}

func (m *Matcher) matchOne(ctx context.Context, course string, candidates []string) model.MatchNote {
	bestScore := -1.0
	var best string
	for _, cand := range candidates {
		if s := m.scorer.Score(course, cand); s > bestScore {
			bestScore = s
			best = cand
		}
	}

	note := model.MatchNote{
		Course:    course,
		BestMatch: &best,
		Score:     int(bestScore),
	}
	t := m.thresholds

	if bestScore >= t.SimilarityThreshold {
		note.Method = model.MethodSimilarity
		note.Reason = ReasonSimilarity
		return note
	}

	if m.classifier != nil && bestScore >= t.BandLow && bestScore <= t.BandHigh {
		m.adjudicate(ctx, &note, course, best)
		return note
	}

	note.Method = model.MethodNone
	note.Reason = ReasonBelowThreshold
	return note
}

func (m *Matcher) adjudicate(ctx context.Context, note *model.MatchNote, course, candidate string) {
	note.Method = model.MethodNone

	switch j := m.classifier.Classify(ctx, course, candidate).(type) {
	case Verdict:
		note.ClassifierConfidence = j.Confidence
		if j.Equivalent && j.Confidence >= m.thresholds.ConfidenceThreshold {
			note.Method = model.MethodClassifier
			note.Reason = j.Reason
			return
		}
		note.Reason = fmt.Sprintf("classifier says not equivalent (conf=%.2f): %s", j.Confidence, j.Reason)
	case ParseFailure:
		if j.Cause != "" {
			m.logger.Debug("classifier unavailable", "course", course, "error", j.Cause)
			note.Reason = "classifier error: " + j.Cause
			return
		}
		note.Reason = "classifier parse error: " + excerpt(j.Raw, rawExcerptLength)
	default:
		note.Reason = "classifier returned no verdict"
	}
}

// excerpt returns the first n runes of s.
func excerpt(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
