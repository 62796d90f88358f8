package discovery

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/uniscout/internal/ranker"
)

const (
	// DefaultMaxResults is the number of results requested per query.
	DefaultMaxResults = 12

	defaultSearchTimeout = 20 * time.Second
)

// BuildQuery restricts query to the given domains with OR-ed site: terms.
func BuildQuery(query string, domains []string) string {
	var sites []string
	for _, d := range domains {
		if d = strings.TrimSpace(d); d != "" {
			sites = append(sites, "site:"+d)
		}
	}
	if len(sites) == 0 {
		return query
	}
	return query + " (" + strings.Join(sites, " OR ") + ")"
}

// Discoverer searches with a primary provider and a fallback.
type Discoverer struct {
	primary  Provider
	fallback Provider
	logger   *slog.Logger
}

// Option configures a Discoverer.
type Option func(*Discoverer)

// WithFallback sets the provider used when the primary fails or is empty.
func WithFallback(p Provider) Option {
	return func(d *Discoverer) {
		d.fallback = p
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Discoverer) {
		d.logger = logger
	}
}

// New creates a Discoverer. primary may be nil when only a fallback is used.
func New(primary Provider, opts ...Option) *Discoverer {
	d := &Discoverer{
		primary: primary,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Discover returns at most maxResults distinct URLs for query, restricted to
// preferred domains when any are given. It never fails; provider errors are
// logged and yield fewer or no results. A non-positive maxResults returns
// no URLs without searching.
func (d *Discoverer) Discover(ctx context.Context, query string, maxResults int, preferred []string) []string {
	if maxResults <= 0 {
		return []string{}
	}
	q := BuildQuery(query, preferred)

	links := d.search(ctx, d.primary, q, maxResults)
	if len(links) == 0 {
		links = d.search(ctx, d.fallback, q, maxResults)
	}
	return truncate(ranker.Dedupe(links), maxResults)
}

func (d *Discoverer) search(ctx context.Context, p Provider, query string, n int) []string {
	if p == nil {
		return nil
	}
	links, err := p.Search(ctx, query, n)
	if err != nil {
		d.logger.Warn("search failed", "provider", p.Name(), "query", query, "error", err)
		return nil
	}
	d.logger.Debug("search done", "provider", p.Name(), "query", query, "results", len(links))
	return links
}

func truncate(urls []string, n int) []string {
	if len(urls) > n {
		return urls[:n]
	}
	return urls
}
