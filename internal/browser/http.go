package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/nao1215/uniscout/internal/httpclient"
	"golang.org/x/time/rate"
)

// HTTPLauncher starts sessions that fetch raw markup without rendering.
// Pages that build their content with JavaScript yield little text.
type HTTPLauncher struct {
	// UserAgent is sent with every request.
	UserAgent string

	// NavigationTimeout bounds each request.
	NavigationTimeout time.Duration

	// Limiter paces requests. Nil disables pacing.
	Limiter *rate.Limiter
}

// Launch implements Launcher.
func (l HTTPLauncher) Launch(context.Context) (Session, error) {
	timeout := l.NavigationTimeout
	if timeout <= 0 {
		timeout = DefaultNavigationTimeout
	}
	client := httpclient.New(httpclient.Options{
		UserAgent:        l.UserAgent,
		Timeout:          timeout,
		Limiter:          l.Limiter,
		BypassCloudflare: true,
	})
	return &httpSession{client: client}, nil
}

type httpSession struct {
	client *resty.Client
}

// Content implements Browser.
func (s *httpSession) Content(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to load %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("failed to load %s: http %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}

// Close implements Session.
func (s *httpSession) Close() error {
	return nil
}
