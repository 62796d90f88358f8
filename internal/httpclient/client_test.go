package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("sends the configured user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got = r.Header.Get("User-Agent")
		}))
		defer server.Close()

		client := New(Options{UserAgent: "uniscout-test", Timeout: 5 * time.Second})
		if _, err := client.R().Get(server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "uniscout-test" {
			t.Errorf("expected user agent uniscout-test, got %q", got)
		}
	})

	t.Run("limiter honours context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		defer server.Close()

		limiter := NewLimiter(0.001, 1)
		client := New(Options{Limiter: limiter})

		// The first request takes the only token.
		if _, err := client.R().Get(server.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		if _, err := client.R().SetContext(ctx).Get(server.URL); err == nil {
			t.Error("expected the paced request to fail once the context expires")
		}
	})
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	if NewLimiter(0, 5) != nil {
		t.Error("expected nil limiter for zero rate")
	}
	if l := NewLimiter(2, 0); l == nil || l.Burst() != 1 {
		t.Errorf("expected burst of at least 1, got %v", l)
	}
}
