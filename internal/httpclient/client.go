// Package httpclient builds the resty clients shared by every scraper.
//
// All clients send a browser user agent through the Cloudflare bypass
// transport and, when configured, wait on a shared rate limiter before each
// request so that one run stays polite across all scrapers.
package httpclient

import (
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// DefaultUserAgent is a desktop Chrome user agent.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

// Options configures a client.
type Options struct {
	// UserAgent defaults to DefaultUserAgent.
	UserAgent string

	// Timeout bounds one request. Zero keeps resty's default.
	Timeout time.Duration

	// Limiter paces requests. Nil disables pacing.
	Limiter *rate.Limiter

	// BypassCloudflare wraps the transport with the Cloudflare bypass.
	BypassCloudflare bool
}

// NewLimiter creates a limiter allowing rps requests per second.
// A non-positive rps returns nil, which disables pacing.
func NewLimiter(rps float64, burst int) *rate.Limiter {
	if rps <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(rps), max(burst, 1))
}

// New creates a resty client.
func New(opts Options) *resty.Client {
	client := resty.New()
	if opts.BypassCloudflare {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	client.SetHeader("user-agent", ua)
	client.SetHeader("accept-language", "es-ES,es;q=0.9,en;q=0.8")
	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}

	if limiter := opts.Limiter; limiter != nil {
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}
	return client
}
