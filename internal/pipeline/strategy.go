package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/nao1215/uniscout/internal/document"
	"github.com/nao1215/uniscout/internal/extract"
	"github.com/nao1215/uniscout/internal/model"
)

const (
	// StrategyHTML fetches the first selected links whatever their type.
	StrategyHTML = "html"
	// StrategyDocumentFirst prefers structured documents and tops up with HTML.
	StrategyDocumentFirst = "document-first"

	// DefaultMaxFetch is the number of links the html strategy fetches.
	DefaultMaxFetch = 3
	// DefaultMinDocumentLines is the line count below which document-first tops up.
	DefaultMinDocumentLines = 40
	// DefaultMaxDocuments is the number of documents document-first fetches.
	DefaultMaxDocuments = 3
	// DefaultTopUpLinks is the number of HTML links document-first adds.
	DefaultTopUpLinks = 2
)

// ErrUnknownStrategy is returned for an unregistered strategy name.
var ErrUnknownStrategy = errors.New("unknown extraction strategy")

// ContentFetcher fetches a list of URLs into filtered candidate lines.
type ContentFetcher interface {
	FetchMany(ctx context.Context, urls []string) ([]string, []model.FetchTelemetryEntry)
}

// Strategy decides which selected links are fetched for one institution.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, f ContentFetcher, links []string, s model.Settings) ([]string, []model.FetchTelemetryEntry)
}

var strategies = map[string]Strategy{
	StrategyHTML:          HTMLStrategy{},
	StrategyDocumentFirst: DocumentFirstStrategy{},
}

// LookupStrategy returns the strategy registered under name.
// An empty name selects StrategyHTML.
func LookupStrategy(name string) (Strategy, error) {
	if name == "" {
		name = StrategyHTML
	}
	s, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownStrategy, name, StrategyNames())
	}
	return s, nil
}

// StrategyNames lists the registered strategies in sorted order.
func StrategyNames() []string {
	names := make([]string, 0, len(strategies))
	for n := range strategies {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// HTMLStrategy fetches the first MaxFetch links.
type HTMLStrategy struct{}

// Name implements Strategy.
func (HTMLStrategy) Name() string {
	return StrategyHTML
}

// Extract implements Strategy.
func (HTMLStrategy) Extract(ctx context.Context, f ContentFetcher, links []string, s model.Settings) ([]string, []model.FetchTelemetryEntry) {
	return f.FetchMany(ctx, head(links, orDefault(s.MaxFetch, DefaultMaxFetch)))
}

// DocumentFirstStrategy fetches structured documents first. When they yield
// too few lines the first HTML links are fetched as well and both sources
// are filtered together. Without any document link it behaves like
// HTMLStrategy.
type DocumentFirstStrategy struct {
	// MinLines defaults to DefaultMinDocumentLines.
	MinLines int
	// MaxDocuments defaults to DefaultMaxDocuments.
	MaxDocuments int
	// TopUp defaults to DefaultTopUpLinks.
	TopUp int
}

// Name implements Strategy.
func (DocumentFirstStrategy) Name() string {
	return StrategyDocumentFirst
}

// Extract implements Strategy.
func (d DocumentFirstStrategy) Extract(ctx context.Context, f ContentFetcher, links []string, s model.Settings) ([]string, []model.FetchTelemetryEntry) {
	var docs, pages []string
	for _, l := range links {
		if document.IsDocumentURL(l) {
			docs = append(docs, l)
		} else {
			pages = append(pages, l)
		}
	}
	if len(docs) == 0 {
		return HTMLStrategy{}.Extract(ctx, f, pages, s)
	}

	courses, telemetry := f.FetchMany(ctx, head(docs, orDefault(d.MaxDocuments, DefaultMaxDocuments)))
	if len(courses) >= orDefault(d.MinLines, DefaultMinDocumentLines) || len(pages) == 0 {
		return courses, telemetry
	}

	more, moreTelemetry := f.FetchMany(ctx, head(pages, orDefault(d.TopUp, DefaultTopUpLinks)))
	return extract.FinalFilter(append(courses, more...)), append(telemetry, moreTelemetry...)
}

func head(s []string, n int) []string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func orDefault(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}
