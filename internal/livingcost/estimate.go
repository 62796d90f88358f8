package livingcost

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/nao1215/uniscout/internal/browser"
	"github.com/nao1215/uniscout/internal/model"
)

const (
	// DefaultBaseURL is the Numbeo city page prefix.
	DefaultBaseURL = "https://www.numbeo.com/cost-of-living/in/"
	// Currency of every estimate.
	Currency = "EUR"
	// FallbackSource names the built-in table as a source.
	FallbackSource = "fallback table"
	// NeutralScore is used when no estimate is available.
	NeutralScore = 50.0
)

// ErrNoCity is returned for an empty city name.
var ErrNoCity = errors.New("no city given")

// Estimator computes monthly living cost estimates.
type Estimator struct {
	pages   []browser.Browser
	baseURL string
	logger  *slog.Logger
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithPages sets the page loaders tried in order, for example a plain HTTP
// session followed by a rendering browser.
func WithPages(pages ...browser.Browser) Option {
	return func(e *Estimator) {
		for _, p := range pages {
			if p != nil {
				e.pages = append(e.pages, p)
			}
		}
	}
}

// WithBaseURL overrides the Numbeo page prefix.
func WithBaseURL(u string) Option {
	return func(e *Estimator) {
		if u != "" {
			e.baseURL = u
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Estimator) {
		e.logger = logger
	}
}

// New creates an Estimator. Without page loaders every estimate comes from
// the fallback table.
func New(opts ...Option) *Estimator {
	e := &Estimator{
		baseURL: DefaultBaseURL,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// PageURL returns the Numbeo page of city.
func (e *Estimator) PageURL(city string) string {
	return e.baseURL + strings.ReplaceAll(strings.TrimSpace(city), " ", "-")
}

// Estimate returns the monthly cost estimate for city.
//
// Confidence is HIGH when every price was scraped, MEDIUM when some gaps were
// filled from the fallback table and LOW when the table was used alone.
func (e *Estimator) Estimate(ctx context.Context, city string) (model.LivingCostArtifact, error) {
	if strings.TrimSpace(city) == "" {
		return model.LivingCostArtifact{}, ErrNoCity
	}
	source := e.PageURL(city)

	scraped := e.scrape(ctx, source)
	var (
		prices     Prices
		confidence model.Confidence
	)
	switch {
	case len(scraped) == 0:
		prices, confidence, source = FallbackPrices(city), model.ConfidenceLow, FallbackSource
	case scraped.Complete():
		prices, confidence = scraped, model.ConfidenceHigh
	default:
		prices, confidence = scraped.fill(FallbackPrices(city)), model.ConfidenceMedium
	}
	if err := ctx.Err(); err != nil {
		return model.LivingCostArtifact{}, err
	}

	breakdown := Breakdown(prices)
	monthly := Total(breakdown)
	return model.LivingCostArtifact{
		City:       city,
		Currency:   Currency,
		Monthly:    monthly,
		Breakdown:  breakdown,
		Source:     source,
		Confidence: confidence,
		CostScore:  Score(monthly.Mid),
	}, nil
}

func (e *Estimator) scrape(ctx context.Context, url string) Prices {
	for _, p := range e.pages {
		markup, err := p.Content(ctx, url)
		if err != nil {
			e.logger.Debug("numbeo page failed", "url", url, "error", err)
			continue
		}
		prices, err := ParseNumbeo(markup)
		if err != nil || len(prices) == 0 {
			e.logger.Debug("numbeo page has no prices", "url", url, "error", err)
			continue
		}
		return prices
	}
	return nil
}

// Breakdown splits prices into monthly categories for a student sharing a
// flat. Every category spans 0.85x to 1.15x of its central value.
func Breakdown(p Prices) model.CostBreakdown {
	return model.CostBreakdown{
		Housing:   spread(p[Rent] * 0.6),
		Food:      spread(p[Meal] * 30),
		Transport: spread(p[Transport]),
		Utilities: spread(p[Utilities]*0.5 + p[Internet]),
		Leisure:   spread(p[Gym] + 40),
	}
}

// Total sums the categories of b.
func Total(b model.CostBreakdown) model.CostRange {
	parts := []model.CostRange{b.Housing, b.Food, b.Transport, b.Utilities, b.Leisure}
	var total model.CostRange
	for _, p := range parts {
		total.Min += p.Min
		total.Max += p.Max
	}
	total.Min = round2(total.Min)
	total.Max = round2(total.Max)
	total.Mid = round2((total.Min + total.Max) / 2)
	return total
}

// Score maps a monthly cost to 0-100: 700 EUR or less scores 100 and
// 1500 EUR or more scores 0.
func Score(mid float64) float64 {
	s := 100 * (1500 - mid) / (1500 - 700)
	return round2(math.Max(0, math.Min(100, s)))
}

// Note summarizes an estimate for report rows.
func Note(a model.LivingCostArtifact) string {
	if a.Error != "" {
		return "unknown"
	}
	return fmt.Sprintf("%.0f-%.0f %s/month", a.Monthly.Min, a.Monthly.Max, a.Currency)
}

func spread(mid float64) model.CostRange {
	return model.CostRange{Min: round2(mid * 0.85), Mid: round2(mid), Max: round2(mid * 1.15)}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
