package discovery

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/nao1215/uniscout/internal/browser"
)

// DefaultDuckDuckGoURL is the JavaScript-free DuckDuckGo results page.
const DefaultDuckDuckGoURL = "https://html.duckduckgo.com/html/"

// DuckDuckGoProvider reads DuckDuckGo HTML results through a browser session.
type DuckDuckGoProvider struct {
	browser  browser.Browser
	endpoint string
}

// NewDuckDuckGoProvider creates a provider that loads result pages with b.
// An empty endpoint uses DefaultDuckDuckGoURL.
func NewDuckDuckGoProvider(b browser.Browser, endpoint string) *DuckDuckGoProvider {
	if endpoint == "" {
		endpoint = DefaultDuckDuckGoURL
	}
	return &DuckDuckGoProvider{browser: b, endpoint: endpoint}
}

// Name implements Provider.
func (p *DuckDuckGoProvider) Name() string {
	return "duckduckgo"
}

// Search implements Provider.
func (p *DuckDuckGoProvider) Search(ctx context.Context, query string, n int) ([]string, error) {
	if p.browser == nil {
		return nil, fmt.Errorf("%w: no browser session", ErrProviderUnavailable)
	}
	markup, err := p.browser.Content(ctx, p.endpoint+"?q="+url.QueryEscape(query))
	if err != nil {
		return nil, fmt.Errorf("failed to load duckduckgo results: %w", err)
	}
	links, err := ParseDuckDuckGo(markup)
	if err != nil {
		return nil, err
	}
	if n > 0 && len(links) > n {
		links = links[:n]
	}
	return links, nil
}

// ParseDuckDuckGo extracts the result links of a DuckDuckGo HTML page.
// Redirect links are resolved to their target. Only http(s) links are kept.
func ParseDuckDuckGo(markup string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse duckduckgo results: %w", err)
	}

	var links []string
	doc.Find("a.result__a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if target := resolveRedirect(href); target != "" {
			links = append(links, target)
		}
	})
	return links, nil
}

// resolveRedirect turns "//duckduckgo.com/l/?uddg=<target>" into the target.
func resolveRedirect(href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if strings.HasPrefix(u.Path, "/l/") {
		if target := u.Query().Get("uddg"); target != "" {
			return resolveRedirect(target)
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return u.String()
}
