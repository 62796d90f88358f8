package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/nao1215/uniscout/internal/cache"
	"github.com/nao1215/uniscout/internal/livingcost"
	"github.com/nao1215/uniscout/internal/model"
	"github.com/nao1215/uniscout/internal/prestige"
	"github.com/nao1215/uniscout/internal/ranker"
)

const (
	// DefaultTopK is the number of ranked URLs discovery selects.
	DefaultTopK = 4
	// MaxLinks caps the selected links handed to extraction.
	MaxLinks = 5
	// DocumentQuerySuffix is appended to the second discovery query.
	DocumentQuerySuffix = "pdf"
)

// Step names, used in logs and in the performed stage list.
const (
	StepDiscovery  = "discovery"
	StepExtraction = "extraction"
	StepMatching   = "matching"
	StepLivingCost = "living_cost"
	StepPrestige   = "prestige"
)

// Discoverer finds candidate URLs for a query.
type Discoverer interface {
	Discover(ctx context.Context, query string, maxResults int, preferred []string) []string
}

// CourseMatcher compares the user's courses with candidate lines.
type CourseMatcher interface {
	Match(ctx context.Context, mine, candidates []string) (float64, []model.MatchNote)
}

// MatcherFactory builds the matcher of one institution from its thresholds.
type MatcherFactory func(model.MatchingSettings) CourseMatcher

// CostEstimator estimates the living cost of a city.
type CostEstimator interface {
	Estimate(ctx context.Context, city string) (model.LivingCostArtifact, error)
}

// StepOption configures the cache behaviour shared by every stage step.
type StepOption func(*stage)

// WithRefresh forces the step to recompute its artifact.
func WithRefresh(refresh bool) StepOption {
	return func(s *stage) {
		s.refresh = refresh
	}
}

// WithStepLogger sets the step logger.
func WithStepLogger(logger *slog.Logger) StepOption {
	return func(s *stage) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// stage holds what every cached step needs.
type stage struct {
	store   *cache.Store
	refresh bool
	logger  *slog.Logger
}

func newStage(store *cache.Store, opts []StepOption) stage {
	s := stage{store: store, logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// runStage is the cache-or-compute path of every stage. A panic in compute
// is turned into an error so the degraded artifact is still written.
// Nothing is written when ctx ends during compute.
func runStage[T any](
	ctx context.Context,
	s stage,
	step string,
	kind model.ArtifactKind,
	report *model.InstitutionReport,
	compute func(ctx context.Context) (T, error),
	degrade func(err error) T,
) (T, error) {
	guarded := func(ctx context.Context) (v T, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		return compute(ctx)
	}

	key := cache.Key{Slug: report.Slug, Kind: kind}
	value, source, err := cache.WithCache(ctx, s.store, key, s.refresh, guarded, degrade)
	if source == cache.SourceCache {
		report.CachedStages = append(report.CachedStages, step)
	}
	s.logger.Debug("stage artifact ready",
		"step", step,
		"university", report.Institution.Name,
		"source", source.String(),
		"path", s.store.Path(key),
	)
	return value, err
}

// DiscoveryStep finds and ranks candidate curriculum URLs.
type DiscoveryStep struct {
	stage
	discoverer Discoverer
	maxResults int
}

// NewDiscoveryStep creates a discovery step. maxResults bounds each of the
// two search queries.
func NewDiscoveryStep(store *cache.Store, d Discoverer, maxResults int, opts ...StepOption) *DiscoveryStep {
	return &DiscoveryStep{stage: newStage(store, opts), discoverer: d, maxResults: maxResults}
}

// Name returns the step name.
func (s *DiscoveryStep) Name() string {
	return StepDiscovery
}

// Queries returns the two search queries issued for inst.
func Queries(inst model.Institution) []string {
	base := strings.TrimSpace(inst.Name + " " + inst.ProgramQuery)
	return []string{base, base + " " + DocumentQuerySuffix}
}

// Do executes the discovery step.
func (s *DiscoveryStep) Do(ctx context.Context, report *model.InstitutionReport) error {
	inst := report.Institution
	queries := Queries(inst)
	preferred := nonNil(inst.PreferredDomains)

	artifact, err := runStage(ctx, s.stage, StepDiscovery, model.ArtifactDiscovery, report,
		func(ctx context.Context) (model.DiscoveryArtifact, error) {
			var found []string
			for _, q := range queries {
				found = append(found, s.discoverer.Discover(ctx, q, s.maxResults, preferred)...)
			}
			if err := ctx.Err(); err != nil {
				return model.DiscoveryArtifact{}, err
			}

			seeds := ranker.Seeds(ranker.Dedupe(inst.SeedURLs), queries[0], preferred)
			isSeed := make(map[string]bool, len(seeds))
			for _, c := range seeds {
				isSeed[c.URL] = true
			}
			var rest []string
			for _, u := range ranker.FilterOfficial(ranker.Dedupe(found)) {
				if !isSeed[u] {
					rest = append(rest, u)
				}
			}

			candidates := append(seeds, ranker.Rank(rest, queries[0], preferred)...)
			return model.DiscoveryArtifact{
				University:       inst.Name,
				Queries:          queries,
				PreferredDomains: preferred,
				Candidates:       nonNil(candidates),
				Selected:         nonNil(ranker.Select(candidates, orDefault(report.Settings.TopK, DefaultTopK))),
			}, nil
		},
		func(err error) model.DiscoveryArtifact {
			return model.DiscoveryArtifact{
				University:       inst.Name,
				Queries:          queries,
				PreferredDomains: preferred,
				Candidates:       []model.CandidateURL{},
				Selected:         []string{},
				Error:            err.Error(),
			}
		},
	)
	report.Discovery = &artifact
	return err
}

// ExtractionStep fetches the selected links and extracts candidate courses.
type ExtractionStep struct {
	stage
	fetcher ContentFetcher
}

// NewExtractionStep creates an extraction step.
func NewExtractionStep(store *cache.Store, f ContentFetcher, opts ...StepOption) *ExtractionStep {
	return &ExtractionStep{stage: newStage(store, opts), fetcher: f}
}

// Name returns the step name.
func (s *ExtractionStep) Name() string {
	return StepExtraction
}

// Do executes the extraction step.
func (s *ExtractionStep) Do(ctx context.Context, report *model.InstitutionReport) error {
	name := report.Settings.Strategy
	if name == "" {
		name = StrategyHTML
	}

	artifact, err := runStage(ctx, s.stage, StepExtraction, model.ArtifactSources, report,
		func(ctx context.Context) (model.SourcesArtifact, error) {
			strategy, err := LookupStrategy(name)
			if err != nil {
				return model.SourcesArtifact{}, err
			}
			courses, telemetry := strategy.Extract(ctx, s.fetcher, head(report.SelectedURLs(), MaxLinks), report.Settings)
			if err := ctx.Err(); err != nil {
				return model.SourcesArtifact{}, err
			}
			return model.SourcesArtifact{
				University: report.Institution.Name,
				Strategy:   strategy.Name(),
				Telemetry:  nonNil(telemetry),
				Courses:    nonNil(courses),
			}, nil
		},
		func(err error) model.SourcesArtifact {
			return model.SourcesArtifact{
				University: report.Institution.Name,
				Strategy:   name,
				Telemetry:  []model.FetchTelemetryEntry{},
				Courses:    []string{},
				Error:      err.Error(),
			}
		},
	)
	report.Sources = &artifact
	return err
}

// MatchingStep compares the user's courses with the extracted candidates.
type MatchingStep struct {
	stage
	newMatcher MatcherFactory
}

// NewMatchingStep creates a matching step.
func NewMatchingStep(store *cache.Store, newMatcher MatcherFactory, opts ...StepOption) *MatchingStep {
	return &MatchingStep{stage: newStage(store, opts), newMatcher: newMatcher}
}

// Name returns the step name.
func (s *MatchingStep) Name() string {
	return StepMatching
}

// Do executes the matching step.
func (s *MatchingStep) Do(ctx context.Context, report *model.InstitutionReport) error {
	mine := model.Strings(report.MyCourses)
	links := nonNil(head(report.SelectedURLs(), MaxLinks))

	artifact, err := runStage(ctx, s.stage, StepMatching, model.ArtifactMatches, report,
		func(ctx context.Context) (model.MatchArtifact, error) {
			candidates := report.CandidateCourses()
			pct, notes := s.newMatcher(report.Settings.Matching).Match(ctx, mine, candidates)
			return model.MatchArtifact{
				University:       report.Institution.Name,
				LinksUsed:        links,
				MyCourses:        len(mine),
				CandidateCourses: len(candidates),
				MatchPct:         pct,
				Notes:            nonNil(notes),
			}, nil
		},
		func(err error) model.MatchArtifact {
			return model.MatchArtifact{
				University: report.Institution.Name,
				LinksUsed:  links,
				MyCourses:  len(mine),
				Notes:      []model.MatchNote{},
				Error:      err.Error(),
			}
		},
	)
	report.Matches = &artifact
	return err
}

// LivingCostStep estimates the cost of living in the institution's city.
type LivingCostStep struct {
	stage
	estimator CostEstimator
}

// NewLivingCostStep creates a living cost step.
func NewLivingCostStep(store *cache.Store, e CostEstimator, opts ...StepOption) *LivingCostStep {
	return &LivingCostStep{stage: newStage(store, opts), estimator: e}
}

// Name returns the step name.
func (s *LivingCostStep) Name() string {
	return StepLivingCost
}

// Do executes the living cost step.
func (s *LivingCostStep) Do(ctx context.Context, report *model.InstitutionReport) error {
	city := report.Institution.City

	artifact, err := runStage(ctx, s.stage, StepLivingCost, model.ArtifactLivingCost, report,
		func(ctx context.Context) (model.LivingCostArtifact, error) {
			return s.estimator.Estimate(ctx, city)
		},
		func(err error) model.LivingCostArtifact {
			return model.LivingCostArtifact{
				City:       city,
				Currency:   livingcost.Currency,
				Confidence: model.ConfidenceLow,
				CostScore:  livingcost.NeutralScore,
				Error:      err.Error(),
			}
		},
	)
	report.LivingCost = &artifact
	return err
}

// PrestigeStep grades the institution's standing.
type PrestigeStep struct {
	stage
	lookup func(name string) model.PrestigeArtifact
}

// NewPrestigeStep creates a prestige step. A nil lookup uses prestige.Lookup.
func NewPrestigeStep(store *cache.Store, lookup func(name string) model.PrestigeArtifact, opts ...StepOption) *PrestigeStep {
	if lookup == nil {
		lookup = prestige.Lookup
	}
	return &PrestigeStep{stage: newStage(store, opts), lookup: lookup}
}

// Name returns the step name.
func (s *PrestigeStep) Name() string {
	return StepPrestige
}

// Do executes the prestige step.
func (s *PrestigeStep) Do(ctx context.Context, report *model.InstitutionReport) error {
	name := report.Institution.Name

	artifact, err := runStage(ctx, s.stage, StepPrestige, model.ArtifactPrestige, report,
		func(context.Context) (model.PrestigeArtifact, error) {
			return s.lookup(name), nil
		},
		func(err error) model.PrestigeArtifact {
			return prestige.Degraded(name, err)
		},
	)
	report.Prestige = &artifact
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
