package discovery

import (
	"context"
	"errors"
)

// ErrProviderUnavailable is returned by a provider that cannot be used,
// for example because it has no credentials.
var ErrProviderUnavailable = errors.New("search provider unavailable")

// Provider runs a web search and returns result URLs in rank order.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string
	// Search returns at most n result URLs for query.
	Search(ctx context.Context, query string, n int) ([]string, error)
}

// ProviderFunc adapts a function to a Provider.
type ProviderFunc func(ctx context.Context, query string, n int) ([]string, error)

// Name implements Provider.
func (ProviderFunc) Name() string {
	return "func"
}

// Search implements Provider.
func (f ProviderFunc) Search(ctx context.Context, query string, n int) ([]string, error) {
	return f(ctx, query, n)
}
