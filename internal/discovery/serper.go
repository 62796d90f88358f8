package discovery

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/nao1215/uniscout/internal/httpclient"
)

// DefaultSerperURL is the Serper search endpoint.
const DefaultSerperURL = "https://google.serper.dev/search"

// SerperProvider searches Google through the Serper API.
type SerperProvider struct {
	client   *resty.Client
	apiKey   string
	endpoint string
}

// SerperOption configures a SerperProvider.
type SerperOption func(*SerperProvider)

// WithSerperEndpoint overrides the search endpoint.
func WithSerperEndpoint(u string) SerperOption {
	return func(p *SerperProvider) {
		if u != "" {
			p.endpoint = u
		}
	}
}

// WithSerperClient replaces the HTTP client.
func WithSerperClient(c *resty.Client) SerperOption {
	return func(p *SerperProvider) {
		if c != nil {
			p.client = c
		}
	}
}

// NewSerperProvider creates a provider. An empty apiKey makes every search
// return ErrProviderUnavailable.
func NewSerperProvider(apiKey string, opts ...SerperOption) *SerperProvider {
	p := &SerperProvider{
		client:   httpclient.New(httpclient.Options{Timeout: defaultSearchTimeout}),
		apiKey:   strings.TrimSpace(apiKey),
		endpoint: DefaultSerperURL,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name implements Provider.
func (p *SerperProvider) Name() string {
	return "serper"
}

type serperRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
}

type serperResponse struct {
	Organic []struct {
		Link string `json:"link"`
	} `json:"organic"`
}

// Search implements Provider.
func (p *SerperProvider) Search(ctx context.Context, query string, n int) ([]string, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%w: SERPER_API_KEY is not set", ErrProviderUnavailable)
	}

	var out serperResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("X-API-KEY", p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(serperRequest{Q: query, Num: n}).
		SetResult(&out).
		Post(p.endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to query serper: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to query serper: http %d", resp.StatusCode())
	}

	links := make([]string, 0, len(out.Organic))
	for _, r := range out.Organic {
		if r.Link != "" {
			links = append(links, r.Link)
		}
	}
	return links, nil
}
