package pipeline

import (
	"log/slog"

	"github.com/nao1215/uniscout/internal/browser"
	"github.com/nao1215/uniscout/internal/cache"
	"github.com/nao1215/uniscout/internal/discovery"
	"github.com/nao1215/uniscout/internal/model"
)

// Refresh selects the artifacts that are recomputed even when cached.
type Refresh struct {
	All        bool
	Discovery  bool
	Extraction bool
	Matching   bool
	LivingCost bool
	Prestige   bool
}

// For reports whether artifacts of kind are refreshed.
func (r Refresh) For(kind model.ArtifactKind) bool {
	if r.All {
		return true
	}
	switch kind {
	case model.ArtifactDiscovery:
		return r.Discovery
	case model.ArtifactSources:
		return r.Extraction
	case model.ArtifactMatches:
		return r.Matching
	case model.ArtifactLivingCost:
		return r.LivingCost
	case model.ArtifactPrestige:
		return r.Prestige
	default:
		return false
	}
}

// Services are the collaborators of the standard pipeline. The browser
// dependent ones are built per worker from that worker's session.
type Services struct {
	Store   *cache.Store
	Refresh Refresh
	// MaxResults bounds each discovery query. Zero uses
	// discovery.DefaultMaxResults.
	MaxResults int

	NewDiscoverer func(b browser.Browser) Discoverer
	NewFetcher    func(b browser.Browser) ContentFetcher
	NewMatcher    MatcherFactory

	// Estimator enables the living cost stage when set.
	Estimator CostEstimator
	// Prestige enables the prestige stage when set.
	Prestige func(name string) model.PrestigeArtifact

	Logger *slog.Logger
}

// Factory returns a Factory building the standard stage sequence. Every
// pipeline continues past failed stages.
func (s Services) Factory() Factory {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	opts := func(kind model.ArtifactKind) []StepOption {
		return []StepOption{WithRefresh(s.Refresh.For(kind)), WithStepLogger(logger)}
	}

	return func(b browser.Browser) *Pipeline {
		p := New(WithLogger(logger), WithContinueOnError(true))
		p.AddSteps(
			NewDiscoveryStep(s.Store, s.NewDiscoverer(b), orDefault(s.MaxResults, discovery.DefaultMaxResults), opts(model.ArtifactDiscovery)...),
			NewExtractionStep(s.Store, s.NewFetcher(b), opts(model.ArtifactSources)...),
			NewMatchingStep(s.Store, s.NewMatcher, opts(model.ArtifactMatches)...),
		)
		if s.Estimator != nil {
			p.AddStep(NewLivingCostStep(s.Store, s.Estimator, opts(model.ArtifactLivingCost)...))
		}
		if s.Prestige != nil {
			p.AddStep(NewPrestigeStep(s.Store, s.Prestige, opts(model.ArtifactPrestige)...))
		}
		return p
	}
}

// NewReports creates one report per institution. settings resolves the
// effective settings of an institution; nil keeps its own overrides.
func NewReports(insts []model.Institution, mine []model.CourseName, settings func(model.Institution) model.Settings) []*model.InstitutionReport {
	reports := make([]*model.InstitutionReport, 0, len(insts))
	for _, inst := range insts {
		r := model.NewInstitutionReport(inst, cache.Slugify(inst.Name), mine)
		if settings != nil {
			r.Settings = settings(inst)
		}
		reports = append(reports, r)
	}
	return reports
}
