package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/nao1215/uniscout/internal/browser"
	"github.com/nao1215/uniscout/internal/document"
	"github.com/nao1215/uniscout/internal/extract"
	"github.com/nao1215/uniscout/internal/model"
)

const (
	// DefaultNavigationTimeout bounds one browser page load.
	DefaultNavigationTimeout = browser.DefaultNavigationTimeout
	// DefaultDocumentTimeout bounds one document download.
	DefaultDocumentTimeout = 60 * time.Second
)

// ErrNoBrowser is returned for HTML fetches when no browser is configured.
var ErrNoBrowser = errors.New("no browser session")

// Fetched is the content of one URL.
type Fetched struct {
	// URL is the fetched URL.
	URL string
	// Kind is the path that produced the content.
	Kind model.ContentKind
	// Text is the plain text the lines were taken from.
	Text string
	// Lines are the source's candidate lines before the cross-source filter.
	Lines []string
}

// Fetcher retrieves URLs through a browser session and a downloader.
type Fetcher struct {
	browser         browser.Browser
	downloader      Downloader
	cache           ContentCache
	logger          *slog.Logger
	navTimeout      time.Duration
	documentTimeout time.Duration
	documentText    func([]byte) (string, error)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache sets the content cache.
func WithCache(c ContentCache) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.cache = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithNavigationTimeout sets the hard per-page timeout.
func WithNavigationTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.navTimeout = d
		}
	}
}

// WithDocumentTimeout sets the per-document download timeout.
func WithDocumentTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		if d > 0 {
			f.documentTimeout = d
		}
	}
}

// WithDocumentReader replaces the document text extractor.
func WithDocumentReader(read func([]byte) (string, error)) Option {
	return func(f *Fetcher) {
		if read != nil {
			f.documentText = read
		}
	}
}

// New creates a Fetcher. b may be nil, in which case every HTML fetch falls
// back to the document path.
func New(b browser.Browser, d Downloader, opts ...Option) *Fetcher {
	f := &Fetcher{
		browser:         b,
		downloader:      d,
		cache:           nopCache{},
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		navTimeout:      DefaultNavigationTimeout,
		documentTimeout: DefaultDocumentTimeout,
		documentText:    document.Text,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves one URL and reports the attempt.
func (f *Fetcher) Fetch(ctx context.Context, url string) (Fetched, model.FetchTelemetryEntry) {
	if document.IsDocumentURL(url) {
		fetched, err := f.fetchDocument(ctx, url, model.KindDocument)
		return fetched, f.telemetry(fetched, err)
	}

	fetched, htmlErr := f.fetchHTML(ctx, url)
	if htmlErr == nil {
		return fetched, f.telemetry(fetched, nil)
	}
	f.logger.Debug("html fetch failed, trying document path", "url", url, "error", htmlErr)

	fetched, docErr := f.fetchDocument(ctx, url, model.KindDocumentFallback)
	if docErr != nil {
		return fetched, f.telemetry(fetched, fmt.Errorf("html: %w; document: %w", htmlErr, docErr))
	}
	return fetched, f.telemetry(fetched, nil)
}

// FetchMany fetches every URL in order and returns the candidate courses of
// all sources after the cross-source filter, with one telemetry entry per URL.
func (f *Fetcher) FetchMany(ctx context.Context, urls []string) ([]string, []model.FetchTelemetryEntry) {
	var lines []string
	entries := make([]model.FetchTelemetryEntry, 0, len(urls))
	for _, u := range urls {
		if ctx.Err() != nil {
			entries = append(entries, model.FetchTelemetryEntry{URL: u, Kind: kindFor(u), Error: ctx.Err().Error()})
			continue
		}
		fetched, entry := f.Fetch(ctx, u)
		lines = append(lines, fetched.Lines...)
		entries = append(entries, entry)
	}
	return extract.FinalFilter(lines), entries
}

func (f *Fetcher) telemetry(fetched Fetched, err error) model.FetchTelemetryEntry {
	entry := model.FetchTelemetryEntry{
		URL:   fetched.URL,
		Kind:  fetched.Kind,
		Lines: len(fetched.Lines),
	}
	if err != nil {
		entry.Error = err.Error()
		f.logger.Warn("fetch failed", "url", fetched.URL, "kind", fetched.Kind, "error", err)
	}
	return entry
}

func (f *Fetcher) fetchHTML(ctx context.Context, url string) (Fetched, error) {
	fetched := Fetched{URL: url, Kind: model.KindHTML}
	key := CacheKey(model.KindHTML, url)

	markup, ok := f.cached(ctx, key)
	if !ok {
		if f.browser == nil {
			return fetched, ErrNoBrowser
		}
		navCtx, cancel := context.WithTimeout(ctx, f.navTimeout)
		defer cancel()

		content, err := f.browser.Content(navCtx, url)
		if err != nil {
			return fetched, err
		}
		markup = []byte(content)
		f.store(ctx, key, url, model.KindHTML, markup)
	}

	text, err := extract.HTMLText(strings.NewReader(string(markup)))
	if err != nil {
		return fetched, fmt.Errorf("failed to parse html: %w", err)
	}
	fetched.Text = text
	fetched.Lines = extract.Lines(text)
	return fetched, nil
}

func (f *Fetcher) fetchDocument(ctx context.Context, url string, kind model.ContentKind) (Fetched, error) {
	fetched := Fetched{URL: url, Kind: kind}
	key := CacheKey(kind, url)

	data, ok := f.cached(ctx, key)
	if !ok {
		if f.downloader == nil {
			return fetched, errors.New("no downloader")
		}
		dlCtx, cancel := context.WithTimeout(ctx, f.documentTimeout)
		defer cancel()

		body, err := f.downloader.Download(dlCtx, url)
		if err != nil {
			return fetched, err
		}
		data = body
	}

	text, err := f.documentText(data)
	if err != nil {
		return fetched, err
	}
	if !ok {
		// Only parseable documents are cached.
		f.store(ctx, key, url, kind, data)
	}
	fetched.Text = text
	fetched.Lines = extract.Lines(text)
	return fetched, nil
}

func (f *Fetcher) cached(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := f.cache.GetContent(ctx, key)
	if err != nil {
		f.logger.Debug("content cache read failed", "error", err)
		return nil, false
	}
	return data, ok
}

func (f *Fetcher) store(ctx context.Context, key, url string, kind model.ContentKind, body []byte) {
	if err := f.cache.PutContent(ctx, key, url, kind, body); err != nil {
		f.logger.Debug("content cache write failed", "url", url, "error", err)
	}
}

func kindFor(url string) model.ContentKind {
	if document.IsDocumentURL(url) {
		return model.KindDocument
	}
	return model.KindHTML
}
